package in

import (
	"context"

	"focuslock/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Complete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error)
	Get(ctx context.Context, owner string, commitmentID, sessionID uint64) (dto.SessionOutput, error)
	List(ctx context.Context, owner string, commitmentID uint64) ([]dto.SessionOutput, error)
}
