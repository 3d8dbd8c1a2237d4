package service

import (
	"context"
	"fmt"

	"focuslock/internal/modules/profile/domain"
	profileout "focuslock/internal/modules/profile/port/out"
	"focuslock/internal/platform/clock"
)

type ProfileService struct {
	clock clock.Clock
	store profileout.ProfileStore
}

func NewProfileService(clock clock.Clock, store profileout.ProfileStore) *ProfileService {
	return &ProfileService{clock: clock, store: store}
}

func (s *ProfileService) Create(ctx context.Context, owner string) (domain.Profile, error) {
	if owner == "" {
		return domain.Profile{}, fmt.Errorf("owner is required")
	}
	profile := domain.Profile{Owner: owner, LastActiveDay: s.clock.Now()}
	if err := s.store.Create(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}
