package usecase

import (
	"context"
	"fmt"

	"focuslock/internal/modules/commitment/domain"
	"focuslock/internal/modules/commitment/dto"
	commitmentin "focuslock/internal/modules/commitment/port/in"
	commitmentout "focuslock/internal/modules/commitment/port/out"
	"focuslock/internal/modules/commitment/service"
	profilein "focuslock/internal/modules/profile/port/in"
	registryin "focuslock/internal/modules/registry/port/in"
	treasurydto "focuslock/internal/modules/treasury/dto"
	treasuryin "focuslock/internal/modules/treasury/port/in"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"
)

type Interactor struct {
	svc      *service.CommitmentService
	store    commitmentout.CommitmentStore
	treasury treasuryin.Usecase
	registry registryin.Usecase
	profile  profilein.Usecase
	mgr      tx.Manager
}

func NewInteractor(
	svc *service.CommitmentService,
	store commitmentout.CommitmentStore,
	treasury treasuryin.Usecase,
	registry registryin.Usecase,
	profile profilein.Usecase,
	mgr tx.Manager,
) commitmentin.Usecase {
	return &Interactor{svc: svc, store: store, treasury: treasury, registry: registry, profile: profile, mgr: mgr}
}

func (i *Interactor) Open(ctx context.Context, input dto.OpenInput) (dto.CommitmentOutput, error) {
	var out dto.CommitmentOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		// Commitments belong to enrolled users; no value moves for an
		// owner without a profile.
		if _, err := i.profile.Get(ctx, input.Owner); err != nil {
			return fmt.Errorf("owner profile: %w", err)
		}
		commitment, err := i.svc.Prepare(ctx, input.Owner, input.CommitmentID, input.Amount, input.SessionsPerDay, input.TotalDays)
		if err != nil {
			return err
		}
		vault := keys.Vault(input.Owner, input.CommitmentID)
		err = i.treasury.Transfer(ctx, treasurydto.TransferInput{
			From:      input.Owner,
			To:        vault,
			ToOwner:   keys.VaultAuthority(),
			Amount:    input.Amount,
			Authority: input.Owner,
		})
		if err != nil {
			return err
		}
		if err := i.store.Create(ctx, commitment); err != nil {
			return err
		}
		if err := i.registry.AddStake(ctx, input.Amount); err != nil {
			return err
		}
		out = toOutput(commitment)
		return nil
	})
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, owner string, commitmentID uint64) (dto.CommitmentOutput, error) {
	commitment, err := i.store.Get(ctx, owner, commitmentID)
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return toOutput(commitment), nil
}

func (i *Interactor) List(ctx context.Context, owner string) ([]dto.CommitmentOutput, error) {
	commitments, err := i.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommitmentOutput, 0, len(commitments))
	for _, commitment := range commitments {
		out = append(out, toOutput(commitment))
	}
	return out, nil
}

func (i *Interactor) Claim(ctx context.Context, input dto.ClaimInput) (dto.ClaimOutput, error) {
	var out dto.ClaimOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		commitment, err := i.store.Get(ctx, input.Owner, input.CommitmentID)
		if err != nil {
			return err
		}
		if err := i.svc.CheckClaimable(commitment, input.Caller); err != nil {
			return err
		}
		registry, err := i.registry.Get(ctx)
		if err != nil {
			return err
		}
		settlement := domain.Settle(commitment, registry.RewardRatePercent)

		// The vault holds exactly the stake; the bonus on top of it is
		// minted by the protocol rather than drawn from escrow.
		vault := keys.Vault(commitment.Owner, commitment.CommitmentID)
		fromVault := settlement.Payout
		if fromVault > commitment.AmountStaked {
			fromVault = commitment.AmountStaked
		}
		err = i.treasury.Transfer(ctx, treasurydto.TransferInput{
			From:      vault,
			To:        commitment.Owner,
			ToOwner:   commitment.Owner,
			Amount:    fromVault,
			Authority: keys.VaultAuthority(),
		})
		if err != nil {
			return err
		}
		if bonus := settlement.Payout - fromVault; bonus > 0 {
			if _, err := i.treasury.Fund(ctx, commitment.Owner, bonus); err != nil {
				return err
			}
		}

		commitment.IsActive = false
		if err := i.store.Update(ctx, commitment); err != nil {
			return err
		}
		if err := i.registry.ReleaseStake(ctx, commitment.AmountStaked); err != nil {
			return err
		}
		if err := i.profile.AddRewards(ctx, commitment.Owner, settlement.Payout); err != nil {
			return err
		}
		out = dto.ClaimOutput{
			Owner:        commitment.Owner,
			CommitmentID: commitment.CommitmentID,
			Required:     settlement.Required,
			Completed:    settlement.Completed,
			Tier:         string(settlement.Tier),
			Payout:       settlement.Payout,
			Retained:     settlement.Retained,
		}
		return nil
	})
	if err != nil {
		return dto.ClaimOutput{}, err
	}
	return out, nil
}

func (i *Interactor) BeginSession(ctx context.Context, input dto.BeginSessionInput) (dto.CommitmentOutput, error) {
	var out dto.CommitmentOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		commitment, err := i.store.Get(ctx, input.Owner, input.CommitmentID)
		if err != nil {
			return err
		}
		before := commitment.SessionsCompletedToday
		if err := commitment.BeginSession(input.Caller, input.Now); err != nil {
			return err
		}
		// The day-rollover reset is part of this operation, not a
		// separate step.
		if commitment.SessionsCompletedToday != before {
			if err := i.store.Update(ctx, commitment); err != nil {
				return err
			}
		}
		out = toOutput(commitment)
		return nil
	})
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return out, nil
}

func (i *Interactor) RecordSessionCompletion(ctx context.Context, input dto.SessionCompletionInput) (dto.CommitmentOutput, error) {
	var out dto.CommitmentOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		commitment, err := i.store.Get(ctx, input.Owner, input.CommitmentID)
		if err != nil {
			return err
		}
		commitment.RecordSessionCompletion(input.Now)
		if err := i.store.Update(ctx, commitment); err != nil {
			return err
		}
		out = toOutput(commitment)
		return nil
	})
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return out, nil
}

func toOutput(commitment domain.Commitment) dto.CommitmentOutput {
	return dto.CommitmentOutput{
		Owner:                  commitment.Owner,
		CommitmentID:           commitment.CommitmentID,
		AmountStaked:           commitment.AmountStaked,
		SessionsPerDay:         commitment.SessionsPerDay,
		TotalDays:              commitment.TotalDays,
		StartTimestamp:         commitment.StartTimestamp,
		EndTimestamp:           commitment.EndTimestamp(),
		IsActive:               commitment.IsActive,
		DaysCompleted:          commitment.DaysCompleted,
		SessionsCompletedToday: commitment.SessionsCompletedToday,
		TotalSessionsCompleted: commitment.TotalSessionsCompleted,
		LastSessionTimestamp:   commitment.LastSessionTimestamp,
		VaultAddress:           keys.Vault(commitment.Owner, commitment.CommitmentID),
	}
}
