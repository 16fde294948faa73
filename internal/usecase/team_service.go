package usecase

import (
	"context"
	"fmt"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/domain/team"
)

// TeamService manages fantasy team lifecycle and read views. Each user owns
// at most one team; totals shown here are whatever the last recompute wrote.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
	}
}

// RosterEntry is one active roster slot in a team view.
type RosterEntry struct {
	Player    player.Player
	IsCaptain bool
}

// TeamView is a team with its currently active roster resolved to players.
type TeamView struct {
	Team    team.Team
	Roster  []RosterEntry
	History []roster.HistoryEntry
}

// CreateTeam registers the caller's single fantasy team.
func (s *TeamService) CreateTeam(ctx context.Context, userID int64, name, formation string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	candidate := team.Team{UserID: userID, Name: name, Formation: formation}
	if err := candidate.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.teamRepo.GetByUserID(ctx, userID); err != nil {
		return team.Team{}, fmt.Errorf("check existing team for user %d: %w", userID, err)
	} else if exists {
		return team.Team{}, fmt.Errorf("%w: user %d already has a team", ErrConflict, userID)
	}

	created, err := s.teamRepo.Create(ctx, candidate)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return created, nil
}

// GetTeamForUser resolves the caller's team with its active roster.
func (s *TeamService) GetTeamForUser(ctx context.Context, userID int64) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamForUser")
	defer span.End()

	t, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return TeamView{}, fmt.Errorf("get team for user %d: %w", userID, err)
	}
	if !exists {
		return TeamView{}, fmt.Errorf("%w: user %d has no team", ErrNotFound, userID)
	}

	return s.buildView(ctx, t, false)
}

// InspectTeamForUser is the admin view of any user's team, including the
// roster change history.
func (s *TeamService) InspectTeamForUser(ctx context.Context, userID int64) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.InspectTeamForUser")
	defer span.End()

	t, exists, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		return TeamView{}, fmt.Errorf("get team for user %d: %w", userID, err)
	}
	if !exists {
		return TeamView{}, fmt.Errorf("%w: user %d has no team", ErrNotFound, userID)
	}

	return s.buildView(ctx, t, true)
}

func (s *TeamService) buildView(ctx context.Context, t team.Team, withHistory bool) (TeamView, error) {
	memberships, err := s.rosterRepo.ListActiveByTeam(ctx, t.ID)
	if err != nil {
		return TeamView{}, fmt.Errorf("list active roster for team %d: %w", t.ID, err)
	}

	playerIDs := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		playerIDs = append(playerIDs, m.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return TeamView{}, fmt.Errorf("load roster players for team %d: %w", t.ID, err)
	}
	playerByID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	entries := make([]RosterEntry, 0, len(memberships))
	for _, m := range memberships {
		p, ok := playerByID[m.PlayerID]
		if !ok {
			continue
		}
		entries = append(entries, RosterEntry{Player: p, IsCaptain: m.IsCaptain})
	}

	view := TeamView{Team: t, Roster: entries}
	if withHistory {
		history, err := s.rosterRepo.ListHistoryByTeam(ctx, t.ID)
		if err != nil {
			return TeamView{}, fmt.Errorf("list roster history for team %d: %w", t.ID, err)
		}
		view.History = history
	}

	return view, nil
}
