package team

import "fmt"

// Team is one user's fantasy squad. TotalPoints is a derived value owned
// by the points recompute; nothing else may write it.
type Team struct {
	ID          int64
	UserID      int64
	Name        string
	Formation   string
	TotalPoints int
}

func (t Team) Validate() error {
	if t.UserID <= 0 {
		return fmt.Errorf("team user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
