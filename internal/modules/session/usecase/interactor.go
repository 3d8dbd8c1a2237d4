package usecase

import (
	"context"
	"fmt"

	attestdto "focuslock/internal/modules/attest/dto"
	attestin "focuslock/internal/modules/attest/port/in"
	commitmentdto "focuslock/internal/modules/commitment/dto"
	commitmentin "focuslock/internal/modules/commitment/port/in"
	profilein "focuslock/internal/modules/profile/port/in"
	"focuslock/internal/modules/session/domain"
	"focuslock/internal/modules/session/dto"
	sessionin "focuslock/internal/modules/session/port/in"
	sessionout "focuslock/internal/modules/session/port/out"
	"focuslock/internal/modules/session/service"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"
)

type Interactor struct {
	svc        *service.SessionService
	store      sessionout.SessionStore
	commitment commitmentin.Usecase
	profile    profilein.Usecase
	attest     attestin.Usecase
	mgr        tx.Manager
}

// NewInteractor wires the session lifecycle. attest may be nil, in which
// case completion skips external attestation.
func NewInteractor(
	svc *service.SessionService,
	store sessionout.SessionStore,
	commitment commitmentin.Usecase,
	profile profilein.Usecase,
	attest attestin.Usecase,
	mgr tx.Manager,
) sessionin.Usecase {
	return &Interactor{svc: svc, store: store, commitment: commitment, profile: profile, attest: attest, mgr: mgr}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	var out dto.StartOutput
	now := i.svc.Now()
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		_, err := i.commitment.BeginSession(ctx, commitmentdto.BeginSessionInput{
			Owner:        input.Owner,
			CommitmentID: input.CommitmentID,
			Caller:       input.Caller,
			Now:          now,
		})
		if err != nil {
			return err
		}
		record, err := i.svc.Start(ctx, input.Owner, input.CommitmentID, input.SessionID, now)
		if err != nil {
			return err
		}
		out = dto.StartOutput{
			Owner:            input.Owner,
			CommitmentID:     input.CommitmentID,
			SessionID:        record.SessionNumber,
			StartedAt:        record.StartTimestamp,
			VerificationSlot: record.VerificationSlot,
		}
		return nil
	})
	if err != nil {
		return dto.StartOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Complete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error) {
	var out dto.CompleteOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		record, err := i.svc.Complete(ctx, input.Owner, input.CommitmentID, input.SessionID, input.Caller)
		if err != nil {
			return err
		}
		if i.attest != nil {
			verdict, err := i.attest.VerifySession(ctx, attestdto.VerifySessionInput{
				Owner:         record.User,
				CommitmentID:  record.CommitmentID,
				SessionNumber: record.SessionNumber,
				StartedAt:     record.StartTimestamp,
				EndedAt:       record.EndTimestamp,
				WallMinutes:   int(record.EndTimestamp.Sub(record.StartTimestamp).Minutes()),
			})
			if err != nil {
				return err
			}
			if !verdict.Approved {
				return fmt.Errorf("%w: attestor %s rejected the session: %s", apperrors.ErrSessionNotComplete, verdict.Attestor, verdict.Reason)
			}
		}
		commitment, err := i.commitment.RecordSessionCompletion(ctx, commitmentdto.SessionCompletionInput{
			Owner:        input.Owner,
			CommitmentID: input.CommitmentID,
			Now:          record.EndTimestamp,
		})
		if err != nil {
			return err
		}
		streak, err := i.profile.RecordCompletion(ctx, input.Owner, record.EndTimestamp)
		if err != nil {
			return err
		}
		out = dto.CompleteOutput{
			Owner:                  input.Owner,
			CommitmentID:           input.CommitmentID,
			SessionID:              record.SessionNumber,
			StartedAt:              record.StartTimestamp,
			EndedAt:                record.EndTimestamp,
			SessionsCompletedToday: commitment.SessionsCompletedToday,
			DaysCompleted:          commitment.DaysCompleted,
			TotalSessionsCompleted: commitment.TotalSessionsCompleted,
			CurrentStreak:          streak.CurrentStreak,
			BestStreak:             streak.BestStreak,
		}
		return nil
	})
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, owner string, commitmentID, sessionID uint64) (dto.SessionOutput, error) {
	record, err := i.store.Get(ctx, keys.Commitment(owner, commitmentID), sessionID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) List(ctx context.Context, owner string, commitmentID uint64) ([]dto.SessionOutput, error) {
	records, err := i.store.ListByCommitment(ctx, keys.Commitment(owner, commitmentID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toOutput(record))
	}
	return out, nil
}

func toOutput(record domain.Record) dto.SessionOutput {
	return dto.SessionOutput{
		Owner:            record.User,
		CommitmentID:     record.CommitmentID,
		SessionID:        record.SessionNumber,
		StartedAt:        record.StartTimestamp,
		EndedAt:          record.EndTimestamp,
		Completed:        record.Completed,
		VerificationSlot: record.VerificationSlot,
	}
}
