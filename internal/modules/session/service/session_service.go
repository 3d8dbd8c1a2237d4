package service

import (
	"context"
	"errors"
	"time"

	"focuslock/internal/modules/session/domain"
	sessionout "focuslock/internal/modules/session/port/out"
	"focuslock/internal/platform/clock"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
)

type SessionService struct {
	clock clock.Clock
	slots clock.SlotSource
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, slots clock.SlotSource, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, slots: slots, store: store}
}

// Now exposes the injected clock so the usecase evaluates every gate of one
// operation against a single timestamp source.
func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

// Start creates the session record stamped with the caller-supplied now, so
// one operation observes one timestamp across gates and record. Counters stay
// untouched until completion, so an abandoned session leaves no partial
// credit.
func (s *SessionService) Start(ctx context.Context, owner string, commitmentID, sessionID uint64, now time.Time) (domain.Record, error) {
	commitmentKey := keys.Commitment(owner, commitmentID)
	_, err := s.store.Get(ctx, commitmentKey, sessionID)
	if err == nil {
		return domain.Record{}, apperrors.ErrDuplicateSession
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Record{}, err
	}
	record := domain.Record{
		User:             owner,
		CommitmentKey:    commitmentKey,
		CommitmentID:     commitmentID,
		SessionNumber:    sessionID,
		StartTimestamp:   now,
		VerificationSlot: s.slots.Slot(),
	}
	if err := s.store.Create(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

// Complete stamps the record after the dual duration check.
func (s *SessionService) Complete(ctx context.Context, owner string, commitmentID, sessionID uint64, caller string) (domain.Record, error) {
	record, err := s.store.Get(ctx, keys.Commitment(owner, commitmentID), sessionID)
	if err != nil {
		return domain.Record{}, err
	}
	if err := record.Complete(caller, s.clock.Now(), s.slots.Slot()); err != nil {
		return domain.Record{}, err
	}
	if err := s.store.Update(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}
