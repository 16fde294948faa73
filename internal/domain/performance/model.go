package performance

import "fmt"

// Performance holds the recorded statistics for one player in one match,
// plus the points derived from them. At most one row exists per
// (player, match) pair.
type Performance struct {
	ID            int64
	PlayerID      int64
	MatchID       int64
	Goals         int
	Assists       int
	CleanSheet    bool
	GoalsConceded int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	BonusPoints   int
	Points        int
}

func (p Performance) Validate() error {
	if p.PlayerID <= 0 {
		return fmt.Errorf("performance player id is required")
	}
	if p.MatchID <= 0 {
		return fmt.Errorf("performance match id is required")
	}
	for name, v := range map[string]int{
		"goals":          p.Goals,
		"assists":        p.Assists,
		"goals_conceded": p.GoalsConceded,
		"yellow_cards":   p.YellowCards,
		"red_cards":      p.RedCards,
		"minutes_played": p.MinutesPlayed,
		"bonus_points":   p.BonusPoints,
	} {
		if v < 0 {
			return fmt.Errorf("performance stat %s must not be negative", name)
		}
	}

	return nil
}
