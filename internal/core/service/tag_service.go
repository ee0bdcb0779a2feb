package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// TagService implements tag management. Deletion is refused while any
// recipe still references the tag, so recipes never point at a gone tag.
type TagService struct {
	tags   ports.TagRepository
	logger zerolog.Logger
}

func NewTagService(tags ports.TagRepository, logger zerolog.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	return s.tags.Create(ctx, &domain.Tag{
		Name:      name,
		Recipes:   []string{},
		CreatedAt: time.Now().UTC(),
	})
}

func (s *TagService) Get(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.FindByID(ctx, id)
}

func (s *TagService) List(ctx context.Context, input ports.ListInput) ([]*domain.Tag, error) {
	return s.tags.List(ctx, paginate.FromQuery(input.Page, input.Results))
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if len(tag.Recipes) > 0 {
		return fmt.Errorf("cannot delete tags that are used in recipes: %w", domain.ErrInUse)
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("tag_id", id).Str("name", tag.Name).Msg("tag deleted")
	return nil
}
