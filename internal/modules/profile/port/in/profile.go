package in

import (
	"context"
	"time"

	"focuslock/internal/modules/profile/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error)
	Get(ctx context.Context, owner string) (dto.ProfileOutput, error)

	// RecordCompletion and AddRewards are invoked by the session and
	// commitment modules inside their own transactions.
	RecordCompletion(ctx context.Context, owner string, now time.Time) (dto.StreakOutput, error)
	AddRewards(ctx context.Context, owner string, amount uint64) error
}
