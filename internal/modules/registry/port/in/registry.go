package in

import (
	"context"

	"focuslock/internal/modules/registry/dto"
)

type Usecase interface {
	Init(ctx context.Context, input dto.InitInput) (dto.RegistryOutput, error)
	Get(ctx context.Context) (dto.RegistryOutput, error)

	// Counter mutations invoked by sibling modules inside the same
	// transaction as their own writes.
	AddParticipant(ctx context.Context) error
	AddStake(ctx context.Context, amount uint64) error
	ReleaseStake(ctx context.Context, amount uint64) error
}
