package service

import (
	"context"
	"errors"
	"fmt"

	"focuslock/internal/modules/commitment/domain"
	commitmentout "focuslock/internal/modules/commitment/port/out"
	"focuslock/internal/platform/clock"
	apperrors "focuslock/internal/platform/errors"
)

type CommitmentService struct {
	clock clock.Clock
	store commitmentout.CommitmentStore
}

func NewCommitmentService(clock clock.Clock, store commitmentout.CommitmentStore) *CommitmentService {
	return &CommitmentService{clock: clock, store: store}
}

// Prepare validates an open request up to, but not including, the stake
// transfer. Schedule bounds are checked before any value moves.
func (s *CommitmentService) Prepare(ctx context.Context, owner string, commitmentID, amount uint64, sessionsPerDay, totalDays uint8) (domain.Commitment, error) {
	if owner == "" {
		return domain.Commitment{}, fmt.Errorf("owner is required")
	}
	if err := domain.ValidateSchedule(sessionsPerDay, totalDays); err != nil {
		return domain.Commitment{}, err
	}
	if amount == 0 {
		return domain.Commitment{}, fmt.Errorf("stake amount must be positive")
	}
	_, err := s.store.Get(ctx, owner, commitmentID)
	if err == nil {
		return domain.Commitment{}, apperrors.ErrDuplicateCommitment
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Commitment{}, err
	}
	return domain.Commitment{
		Owner:          owner,
		CommitmentID:   commitmentID,
		AmountStaked:   amount,
		SessionsPerDay: sessionsPerDay,
		TotalDays:      totalDays,
		StartTimestamp: s.clock.Now(),
		IsActive:       true,
	}, nil
}

// CheckClaimable runs the claim gates in order against the current time.
func (s *CommitmentService) CheckClaimable(c domain.Commitment, caller string) error {
	if caller != c.Owner {
		return apperrors.ErrInvalidAuthority
	}
	if !c.IsActive {
		return apperrors.ErrCommitmentInactive
	}
	if s.clock.Now().Before(c.EndTimestamp()) {
		return apperrors.ErrCommitmentNotEnded
	}
	return nil
}
