package rankingdomain

import (
	"cmp"
	"slices"
)

// tallyPoints are awarded for placements 1 through 10.
var tallyPoints = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// PointsForPlacement returns the tally points for a 1-based placement.
func PointsForPlacement(placement int) int {
	if placement < 1 || placement > len(tallyPoints) {
		return 0
	}
	return tallyPoints[placement-1]
}

// eventField is the sorted list of times in one event.
type eventField struct {
	times  []int32
	record int32
}

// placement is 1 plus the number of strictly faster times, so equal times
// share a placement.
func (f eventField) placement(v int32) int {
	i, _ := slices.BinarySearch(f.times, v)
	return i + 1
}

type accumulator struct {
	events    int
	totalTime int64
	placement int
	rating    float64
	prwr      float64
	tally     int
}

// Compute ranks every player in snap by rt. lap must be the filter the
// snapshot was loaded with.
func Compute(rt RankingType, snap Snapshot, lap *bool) []RankingEntry {
	events := Events(snap.TrackIDs, lap)
	inScope := make(map[Event]struct{}, len(events))
	for _, e := range events {
		inScope[e] = struct{}{}
	}

	bests := bestPerPlayerEvent(snap.Field, inScope)
	fields := buildFields(bests, snap.Records)

	acc := make(map[int32]*accumulator)
	for _, pb := range bests {
		a := acc[pb.PlayerID]
		if a == nil {
			a = &accumulator{}
			acc[pb.PlayerID] = a
		}
		f := fields[pb.Event]
		n := len(f.times)
		p := f.placement(pb.Value)

		a.events++
		a.totalTime += int64(pb.Value)
		a.placement += p
		a.rating += float64(n-p+1) / float64(n)
		a.prwr += float64(f.record) / float64(pb.Value)
		a.tally += PointsForPlacement(p)
	}

	entries := make([]RankingEntry, 0, len(acc))
	for playerID, a := range acc {
		value := rt.Seed()
		switch rt {
		case TotalTime:
			if a.events < len(events) {
				continue
			}
			value += float64(a.totalTime)
		case AverageFinish:
			value += float64(a.placement) / float64(a.events)
		case AverageRankRating:
			value += a.rating / float64(a.events)
		case PersonalRecordWorldRecord:
			value += a.prwr / float64(a.events)
		case TallyPoints:
			value += float64(a.tally)
		}

		player := snap.Players[playerID]
		entries = append(entries, RankingEntry{
			PlayerID:   playerID,
			PlayerName: player.Name,
			RegionID:   player.RegionID,
			Value:      value,
			Events:     a.events,
		})
	}

	sortEntries(entries, rt.Ascending())
	return entries
}

// bestPerPlayerEvent keeps the fastest positive time per player and event,
// dropping events outside the scope.
func bestPerPlayerEvent(field []PersonalBest, inScope map[Event]struct{}) []PersonalBest {
	type key struct {
		player int32
		event  Event
	}
	best := make(map[key]int32, len(field))
	for _, pb := range field {
		if pb.Value <= 0 {
			continue
		}
		if _, ok := inScope[pb.Event]; !ok {
			continue
		}
		k := key{pb.PlayerID, pb.Event}
		if cur, ok := best[k]; !ok || pb.Value < cur {
			best[k] = pb.Value
		}
	}

	out := make([]PersonalBest, 0, len(best))
	for k, v := range best {
		out = append(out, PersonalBest{PlayerID: k.player, Event: k.event, Value: v})
	}
	return out
}

func buildFields(bests []PersonalBest, records map[Event]int32) map[Event]eventField {
	fields := make(map[Event]eventField)
	for _, pb := range bests {
		f := fields[pb.Event]
		f.times = append(f.times, pb.Value)
		fields[pb.Event] = f
	}
	for e, f := range fields {
		slices.Sort(f.times)
		f.record = f.times[0]
		// a global record can only be faster than the scoped field's best
		if r, ok := records[e]; ok && r > 0 && r < f.record {
			f.record = r
		}
		fields[e] = f
	}
	return fields
}

// sortEntries orders by value and then player id, and assigns competition
// ranks: equal values share a rank and the next rank skips.
func sortEntries(entries []RankingEntry, ascending bool) {
	slices.SortFunc(entries, func(a, b RankingEntry) int {
		c := cmp.Compare(a.Value, b.Value)
		if !ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	for i := range entries {
		if i > 0 && entries[i].Value == entries[i-1].Value {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
}
