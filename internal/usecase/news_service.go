package usecase

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/dsfl/fantasy-league/internal/domain/news"
)

// NewsService stores and serves the league news blob. The body is an opaque
// JSON document; only its well-formedness is checked here.
type NewsService struct {
	newsRepo news.Repository
}

func NewNewsService(newsRepo news.Repository) *NewsService {
	return &NewsService{newsRepo: newsRepo}
}

// GetLatest returns the current news document, if any.
func (s *NewsService) GetLatest(ctx context.Context) (news.Content, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.GetLatest")
	defer span.End()

	return s.newsRepo.GetLatest(ctx)
}

// SetLatest replaces the news document wholesale.
func (s *NewsService) SetLatest(ctx context.Context, body string) (news.Content, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.SetLatest")
	defer span.End()

	if body == "" {
		return news.Content{}, fmt.Errorf("%w: news content is required", ErrInvalidInput)
	}
	if !sonic.Valid([]byte(body)) {
		return news.Content{}, fmt.Errorf("%w: news content must be valid JSON", ErrInvalidInput)
	}

	updated, err := s.newsRepo.SetLatest(ctx, body)
	if err != nil {
		return news.Content{}, fmt.Errorf("set news content: %w", err)
	}
	return updated, nil
}
