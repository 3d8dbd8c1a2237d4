package usecase

import (
	"context"

	"focuslock/internal/modules/registry/domain"
	"focuslock/internal/modules/registry/dto"
	registryin "focuslock/internal/modules/registry/port/in"
	registryout "focuslock/internal/modules/registry/port/out"
	"focuslock/internal/modules/registry/service"
	"focuslock/internal/platform/tx"
)

type Interactor struct {
	svc   *service.RegistryService
	store registryout.RegistryStore
	mgr   tx.Manager
}

func NewInteractor(svc *service.RegistryService, store registryout.RegistryStore, mgr tx.Manager) registryin.Usecase {
	return &Interactor{svc: svc, store: store, mgr: mgr}
}

func (i *Interactor) Init(ctx context.Context, input dto.InitInput) (dto.RegistryOutput, error) {
	var out dto.RegistryOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		registry, err := i.svc.Init(ctx, input.Authority, input.AssetID, input.RewardRatePercent)
		if err != nil {
			return err
		}
		out = toOutput(registry)
		return nil
	})
	if err != nil {
		return dto.RegistryOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context) (dto.RegistryOutput, error) {
	registry, err := i.store.Get(ctx)
	if err != nil {
		return dto.RegistryOutput{}, err
	}
	return toOutput(registry), nil
}

func (i *Interactor) AddParticipant(ctx context.Context) error {
	return i.mgr.Within(ctx, func(ctx context.Context) error {
		registry, err := i.store.Get(ctx)
		if err != nil {
			return err
		}
		registry.TotalParticipants++
		return i.store.Update(ctx, registry)
	})
}

func (i *Interactor) AddStake(ctx context.Context, amount uint64) error {
	return i.mgr.Within(ctx, func(ctx context.Context) error {
		registry, err := i.store.Get(ctx)
		if err != nil {
			return err
		}
		registry.TotalValueStaked += amount
		return i.store.Update(ctx, registry)
	})
}

func (i *Interactor) ReleaseStake(ctx context.Context, amount uint64) error {
	return i.mgr.Within(ctx, func(ctx context.Context) error {
		registry, err := i.store.Get(ctx)
		if err != nil {
			return err
		}
		if amount > registry.TotalValueStaked {
			registry.TotalValueStaked = 0
		} else {
			registry.TotalValueStaked -= amount
		}
		return i.store.Update(ctx, registry)
	})
}

func toOutput(registry domain.Registry) dto.RegistryOutput {
	return dto.RegistryOutput{
		Authority:         registry.Authority,
		AssetID:           registry.AssetID,
		RewardRatePercent: registry.RewardRatePercent,
		TotalParticipants: registry.TotalParticipants,
		TotalValueStaked:  registry.TotalValueStaked,
		CreatedAt:         registry.CreatedAt,
	}
}
