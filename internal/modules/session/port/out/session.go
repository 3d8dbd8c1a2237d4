package out

import (
	"context"

	"focuslock/internal/modules/session/domain"
)

type SessionStore interface {
	Create(ctx context.Context, record domain.Record) error
	Get(ctx context.Context, commitmentKey string, sessionID uint64) (domain.Record, error)
	Update(ctx context.Context, record domain.Record) error
	ListByCommitment(ctx context.Context, commitmentKey string) ([]domain.Record, error)
}
