package authdomain

import (
	"net/netip"
	"slices"
	"time"
)

const (
	// AttemptWindow is how far back attempts are considered.
	AttemptWindow = 24 * time.Hour

	// cooldownThreshold is both the minimum combined attempt count before any
	// cooldown applies and the minimum per-ip / per-user count that adds to it.
	cooldownThreshold = 5

	ipPenaltySeconds   = 30
	userPenaltySeconds = 20
)

// LoginAttempt is one row of the append-only attempt log.
type LoginAttempt struct {
	ID        int64
	IP        netip.Addr
	UserID    int32
	Timestamp time.Time
}

// MergeAttempts concatenates the per-user and per-ip attempt sets, keeping
// the first occurrence of each row id.
func MergeAttempts(sets ...[]LoginAttempt) []LoginAttempt {
	seen := make(map[int64]struct{})
	var out []LoginAttempt
	for _, set := range sets {
		for _, a := range set {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// CooldownUntil returns the instant the cooldown for (ip, userID) lifts, or
// false when fewer than five attempts were made. Penalties are whole seconds
// past the most recent attempt: 30 per attempt from ip and 20 per attempt by
// userID, each counted only once it reaches five.
func CooldownUntil(attempts []LoginAttempt, ip netip.Addr, userID int32) (time.Time, bool) {
	if len(attempts) < cooldownThreshold {
		return time.Time{}, false
	}

	latest := slices.MaxFunc(attempts, func(a, b LoginAttempt) int {
		return a.Timestamp.Compare(b.Timestamp)
	}).Timestamp

	var equalIP, equalUser int64
	for _, a := range attempts {
		if a.IP == ip {
			equalIP++
		}
		if a.UserID == userID {
			equalUser++
		}
	}
	if equalIP < cooldownThreshold {
		equalIP = 0
	}
	if equalUser < cooldownThreshold {
		equalUser = 0
	}

	penalty := equalIP*ipPenaltySeconds + equalUser*userPenaltySeconds
	return time.Unix(latest.Unix()+penalty, 0).UTC(), true
}

// IsOnCooldown reports whether a login for (ip, userID) must be refused at now.
func IsOnCooldown(attempts []LoginAttempt, ip netip.Addr, userID int32, now time.Time) bool {
	until, ok := CooldownUntil(attempts, ip, userID)
	if !ok {
		return false
	}
	return until.Unix() > now.Unix()
}
