package service

import (
	"context"
	"fmt"

	"focuslock/internal/modules/registry/domain"
	registryout "focuslock/internal/modules/registry/port/out"
	"focuslock/internal/platform/clock"
)

type RegistryService struct {
	clock clock.Clock
	store registryout.RegistryStore
}

func NewRegistryService(clock clock.Clock, store registryout.RegistryStore) *RegistryService {
	return &RegistryService{clock: clock, store: store}
}

func (s *RegistryService) Init(ctx context.Context, authority, assetID string, rewardRatePercent uint64) (domain.Registry, error) {
	if authority == "" {
		return domain.Registry{}, fmt.Errorf("authority is required")
	}
	if assetID == "" {
		return domain.Registry{}, fmt.Errorf("asset id is required")
	}
	registry := domain.Registry{
		Authority:         authority,
		AssetID:           assetID,
		RewardRatePercent: rewardRatePercent,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.store.Create(ctx, registry); err != nil {
		return domain.Registry{}, err
	}
	return registry, nil
}
