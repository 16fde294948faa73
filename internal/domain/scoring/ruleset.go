package scoring

import (
	"errors"
	"fmt"

	"github.com/dsfl/fantasy-league/internal/domain/performance"
	"github.com/dsfl/fantasy-league/internal/domain/player"
)

// ErrUnknownPosition is returned when a performance is scored against a
// position outside the fixed enum. The evaluator never defaults silently.
var ErrUnknownPosition = errors.New("scoring: unknown player position")

// Ruleset maps raw performance statistics to fantasy points per position.
// Evaluation is pure: the same stats and position always yield the same
// points value, which may be negative when penalties exceed credits.
type Ruleset struct {
	GoalPoints       map[player.Position]int
	AssistPoints     int
	CleanSheetPoints map[player.Position]int
	// CleanSheetMinMinutes gates the clean-sheet credit on playing time.
	CleanSheetMinMinutes int
	// ConcededPerPenalty is the number of goals conceded per one-point
	// deduction; applies only to positions listed in ConcededPositions.
	ConcededPerPenalty int
	ConcededPositions  map[player.Position]struct{}
	YellowCardPoints   int
	RedCardPoints      int
	AppearancePoints   int
	FullMatchMinutes   int
	FullMatchPoints    int
}

// DefaultRuleset returns the league's standard scoring table.
func DefaultRuleset() Ruleset {
	return Ruleset{
		GoalPoints: map[player.Position]int{
			player.PositionGoalkeeper: 6,
			player.PositionDefender:   6,
			player.PositionMidfielder: 5,
			player.PositionAttacker:   4,
		},
		AssistPoints: 3,
		CleanSheetPoints: map[player.Position]int{
			player.PositionGoalkeeper: 4,
			player.PositionDefender:   4,
			player.PositionMidfielder: 1,
		},
		CleanSheetMinMinutes: 60,
		ConcededPerPenalty:   2,
		ConcededPositions: map[player.Position]struct{}{
			player.PositionGoalkeeper: {},
			player.PositionDefender:   {},
		},
		YellowCardPoints: -1,
		RedCardPoints:    -3,
		AppearancePoints: 1,
		FullMatchMinutes: 60,
		FullMatchPoints:  2,
	}
}

// PlayerPoints computes the fantasy points for one performance under the
// ruleset. Bonus points are added verbatim on top of the derived value.
func (r Ruleset) PlayerPoints(perf performance.Performance, position player.Position) (int, error) {
	if _, ok := player.AllPositions[position]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPosition, position)
	}

	points := 0

	switch {
	case perf.MinutesPlayed >= r.FullMatchMinutes:
		points += r.FullMatchPoints
	case perf.MinutesPlayed > 0:
		points += r.AppearancePoints
	}

	points += perf.Goals * r.GoalPoints[position]
	points += perf.Assists * r.AssistPoints

	if perf.CleanSheet && perf.MinutesPlayed >= r.CleanSheetMinMinutes {
		points += r.CleanSheetPoints[position]
	}

	if _, ok := r.ConcededPositions[position]; ok && r.ConcededPerPenalty > 0 {
		points -= perf.GoalsConceded / r.ConcededPerPenalty
	}

	points += perf.YellowCards * r.YellowCardPoints
	points += perf.RedCards * r.RedCardPoints
	points += perf.BonusPoints

	return points, nil
}
