package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

// hospitalCacheKey holds the hospital listing maintained by the hospital
// management surface; ward mutations bust it because that listing embeds
// ward summaries.
const hospitalCacheKey = "hospital"

type wardService struct {
	repo  ports.WardRepository
	cache ports.Cache
	log   zerolog.Logger
}

func NewWardService(repo ports.WardRepository, cache ports.Cache, log zerolog.Logger) ports.WardService {
	return &wardService{repo: repo, cache: cache, log: log}
}

func (s *wardService) Create(ctx context.Context, in ports.CreateWardInput) (*domain.Ward, error) {
	now := time.Now().UTC()
	ward := &domain.Ward{
		ID:         "WID-" + uuid.NewString(),
		Name:       in.Name,
		Type:       in.Type,
		HospitalID: in.HospitalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.repo.Create(ctx, ward)
	if err != nil {
		return nil, err
	}
	if err := s.purge(ctx); err != nil {
		return nil, err
	}
	s.log.Info().Str("ward_id", created.ID).Str("hospital_id", created.HospitalID).Msg("ward created")
	return created, nil
}

func (s *wardService) FindAll(ctx context.Context) ([]domain.Ward, error) {
	return s.repo.FindAll(ctx)
}

func (s *wardService) FindByID(ctx context.Context, id string) (*domain.Ward, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *wardService) Update(ctx context.Context, id string, in ports.UpdateWardInput) (*domain.Ward, error) {
	ward, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		ward.Name = *in.Name
	}
	if in.Type != nil {
		ward.Type = *in.Type
	}
	ward.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, ward)
	if err != nil {
		return nil, err
	}
	if err := s.purge(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *wardService) Remove(ctx context.Context, id string) (*domain.Ward, error) {
	ward, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.purge(ctx); err != nil {
		return nil, err
	}
	return ward, nil
}

func (s *wardService) purge(ctx context.Context) error {
	if err := s.cache.Del(ctx, hospitalCacheKey); err != nil {
		return fmt.Errorf("cache purge %s: %w", hospitalCacheKey, err)
	}
	return nil
}
