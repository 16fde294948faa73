package roster

import "time"

// Membership is the roster association between one team and one player.
// At most one row exists per (team, player) pair; its activity window is
// the half-open interval [AddedAt, RemovedAt). A nil RemovedAt means the
// membership is currently active.
type Membership struct {
	TeamID    int64
	PlayerID  int64
	IsCaptain bool
	AddedAt   time.Time
	RemovedAt *time.Time
}

// ActiveAt reports whether the membership covers instant t. The add
// boundary is inclusive and the remove boundary exclusive: a player
// removed exactly at a match's timestamp did not play that match, while
// a player added exactly at it is eligible.
func (m Membership) ActiveAt(t time.Time) bool {
	if m.AddedAt.After(t) {
		return false
	}

	return m.RemovedAt == nil || m.RemovedAt.After(t)
}

// ActiveRosterAt filters memberships down to those covering instant t.
func ActiveRosterAt(memberships []Membership, t time.Time) []Membership {
	active := make([]Membership, 0, len(memberships))
	for _, m := range memberships {
		if m.ActiveAt(t) {
			active = append(active, m)
		}
	}

	return active
}

// Action labels a roster transition in the audit history.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// HistoryEntry is one append-only record of a roster transition. It is an
// audit trail only; points recomputation reads membership intervals, never
// history rows.
type HistoryEntry struct {
	ID        int64
	TeamID    int64
	PlayerID  int64
	Action    Action
	ChangedAt time.Time
	MatchID   *int64
}
