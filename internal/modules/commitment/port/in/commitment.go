package in

import (
	"context"

	"focuslock/internal/modules/commitment/dto"
)

type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput) (dto.CommitmentOutput, error)
	Get(ctx context.Context, owner string, commitmentID uint64) (dto.CommitmentOutput, error)
	List(ctx context.Context, owner string) ([]dto.CommitmentOutput, error)
	Claim(ctx context.Context, input dto.ClaimInput) (dto.ClaimOutput, error)

	// Session-lifecycle hooks invoked by the session module inside one
	// transaction. BeginSession runs the start gates and persists the
	// day-rollover reset; RecordSessionCompletion credits the counters.
	BeginSession(ctx context.Context, input dto.BeginSessionInput) (dto.CommitmentOutput, error)
	RecordSessionCompletion(ctx context.Context, input dto.SessionCompletionInput) (dto.CommitmentOutput, error)
}
