package rankingdomain

import (
	"cmp"
	"slices"
)

// GroupFunc maps a player's region onto the region they are grouped under.
type GroupFunc func(regionID int32) (int32, bool)

// ComputeCountry ranks regions by the mean average finish of their players.
// Average finish is computed over the whole snapshot, then each player is
// assigned to group(player.RegionID); players without a group are skipped.
// Lower means rank first, ties go to the lower region id. limit <= 0 keeps
// every row.
func ComputeCountry(snap Snapshot, lap *bool, group GroupFunc, limit int) []CountryRankingEntry {
	players := Compute(AverageFinish, snap, lap)

	type agg struct {
		sum     float64
		players int
	}
	groups := make(map[int32]*agg)
	for _, p := range players {
		id, ok := group(p.RegionID)
		if !ok {
			continue
		}
		g := groups[id]
		if g == nil {
			g = &agg{}
			groups[id] = g
		}
		g.sum += p.Value
		g.players++
	}

	out := make([]CountryRankingEntry, 0, len(groups))
	for id, g := range groups {
		out = append(out, CountryRankingEntry{
			RegionID: id,
			Value:    g.sum / float64(g.players),
			Players:  g.players,
		})
	}

	slices.SortFunc(out, func(a, b CountryRankingEntry) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.RegionID, b.RegionID)
	})
	for i := range out {
		if i > 0 && out[i].Value == out[i-1].Value {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
