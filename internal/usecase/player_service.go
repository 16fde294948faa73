package usecase

import (
	"context"
	"fmt"

	"github.com/dsfl/fantasy-league/internal/domain/player"
	"github.com/dsfl/fantasy-league/internal/domain/roster"
	"github.com/dsfl/fantasy-league/internal/platform/cache"
)

const playerCatalogCacheKey = "players:catalog"

// PlayerService serves the player catalog and admin edits to it. The catalog
// list is read on nearly every page, so it is served through a short-TTL
// cache that edits invalidate.
type PlayerService struct {
	playerRepo player.Repository
	perfRepo   performanceDeleter
	rosterRepo roster.Repository
	points     *PointsService
	cache      *cache.Store
}

type performanceDeleter interface {
	DeleteByPlayer(ctx context.Context, playerID int64) error
}

func NewPlayerService(
	playerRepo player.Repository,
	perfRepo performanceDeleter,
	rosterRepo roster.Repository,
	points *PointsService,
	store *cache.Store,
) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		perfRepo:   perfRepo,
		rosterRepo: rosterRepo,
		points:     points,
		cache:      store,
	}
}

// ListPlayers returns the full catalog, served from cache when warm.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if s.cache == nil {
		return s.playerRepo.List(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, playerCatalogCacheKey, func(ctx context.Context) (any, error) {
		return s.playerRepo.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]player.Player)
	if !ok {
		return s.playerRepo.List(ctx)
	}
	return players, nil
}

// GetPlayer resolves one catalog entry.
func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	p, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %d: %w", id, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %d", ErrNotFound, id)
	}
	return p, nil
}

// CreatePlayer adds a catalog entry.
func (s *PlayerService) CreatePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.playerRepo.Create(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	s.invalidateCatalog(ctx)
	return created, nil
}

// UpdatePlayer applies admin edits to price, position, name, or house.
// Identity is immutable.
func (s *PlayerService) UpdatePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	if p.ID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, p.ID); err != nil {
		return player.Player{}, fmt.Errorf("get player %d: %w", p.ID, err)
	} else if !exists {
		return player.Player{}, fmt.Errorf("%w: player %d", ErrNotFound, p.ID)
	}

	if err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player %d: %w", p.ID, err)
	}
	s.invalidateCatalog(ctx)
	return p, nil
}

// DeletePlayer removes a catalog entry along with its performances and
// roster memberships, then recomputes team totals.
func (s *PlayerService) DeletePlayer(ctx context.Context, id int64) (map[int64]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	if _, exists, err := s.playerRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player %d", ErrNotFound, id)
	}

	if err := s.perfRepo.DeleteByPlayer(ctx, id); err != nil {
		return nil, fmt.Errorf("delete performances for player %d: %w", id, err)
	}
	if err := s.rosterRepo.DeleteByPlayer(ctx, id); err != nil {
		return nil, fmt.Errorf("delete memberships for player %d: %w", id, err)
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete player %d: %w", id, err)
	}
	s.invalidateCatalog(ctx)

	return s.points.RecomputeAllTeamPoints(ctx)
}

func (s *PlayerService) invalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, playerCatalogCacheKey)
	}
}
