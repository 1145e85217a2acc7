// Package training provides read access to trainings with client-side filters.
package training

import (
	"context"

	"mini-admin/internal/domain"
	"mini-admin/internal/querycache"
)

// CachePrefix is the cache namespace for training reads.
const CachePrefix = "trainings"

// Service provides business logic for the training list.
type Service struct {
	repo  domain.TrainingRepository
	cache *querycache.Cache
}

// NewService creates a new training Service.
func NewService(repo domain.TrainingRepository, cache *querycache.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// All returns every training in server order.
func (s *Service) All(ctx context.Context) ([]domain.Training, error) {
	return querycache.Fetch(ctx, s.cache, querycache.Key{CachePrefix}, s.repo.ListAll)
}

// List returns the trainings matching f, preserving server order.
func (s *Service) List(ctx context.Context, f domain.TrainingFilter) ([]domain.Training, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Training, 0, len(all))
	for i := range all {
		if f.Match(all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
