package usecase

import (
	"context"
	"time"

	"focuslock/internal/modules/profile/domain"
	"focuslock/internal/modules/profile/dto"
	profilein "focuslock/internal/modules/profile/port/in"
	profileout "focuslock/internal/modules/profile/port/out"
	"focuslock/internal/modules/profile/service"
	registryin "focuslock/internal/modules/registry/port/in"
	"focuslock/internal/platform/tx"
)

type Interactor struct {
	svc      *service.ProfileService
	store    profileout.ProfileStore
	registry registryin.Usecase
	mgr      tx.Manager
}

func NewInteractor(svc *service.ProfileService, store profileout.ProfileStore, registry registryin.Usecase, mgr tx.Manager) profilein.Usecase {
	return &Interactor{svc: svc, store: store, registry: registry, mgr: mgr}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error) {
	var out dto.ProfileOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		profile, err := i.svc.Create(ctx, input.Owner)
		if err != nil {
			return err
		}
		if err := i.registry.AddParticipant(ctx); err != nil {
			return err
		}
		out = toOutput(profile)
		return nil
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, owner string) (dto.ProfileOutput, error) {
	profile, err := i.store.Get(ctx, owner)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) RecordCompletion(ctx context.Context, owner string, now time.Time) (dto.StreakOutput, error) {
	var out dto.StreakOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		profile, err := i.store.Get(ctx, owner)
		if err != nil {
			return err
		}
		profile.RecordCompletion(now)
		if err := i.store.Update(ctx, profile); err != nil {
			return err
		}
		out = dto.StreakOutput{
			CurrentStreak:          profile.CurrentStreak,
			BestStreak:             profile.BestStreak,
			TotalSessionsCompleted: profile.TotalSessionsCompleted,
		}
		return nil
	})
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return out, nil
}

func (i *Interactor) AddRewards(ctx context.Context, owner string, amount uint64) error {
	return i.mgr.Within(ctx, func(ctx context.Context) error {
		profile, err := i.store.Get(ctx, owner)
		if err != nil {
			return err
		}
		profile.TotalRewardsEarned += amount
		return i.store.Update(ctx, profile)
	})
}

func toOutput(profile domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		Owner:                  profile.Owner,
		TotalSessionsCompleted: profile.TotalSessionsCompleted,
		TotalRewardsEarned:     profile.TotalRewardsEarned,
		CurrentStreak:          profile.CurrentStreak,
		BestStreak:             profile.BestStreak,
		LastActiveDay:          profile.LastActiveDay,
	}
}
