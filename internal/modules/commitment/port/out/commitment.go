package out

import (
	"context"

	"focuslock/internal/modules/commitment/domain"
)

type CommitmentStore interface {
	Create(ctx context.Context, commitment domain.Commitment) error
	Get(ctx context.Context, owner string, commitmentID uint64) (domain.Commitment, error)
	Update(ctx context.Context, commitment domain.Commitment) error
	ListByOwner(ctx context.Context, owner string) ([]domain.Commitment, error)
}
