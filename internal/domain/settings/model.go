package settings

import "time"

// Well-known setting keys.
const (
	KeyTeamUpdatesLocked = "team_updates_locked"
)

// Setting is one application-wide key/value pair stored in the database.
type Setting struct {
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}

// Enabled interprets the stored value as a boolean flag.
func (s Setting) Enabled() bool {
	switch s.Value {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
