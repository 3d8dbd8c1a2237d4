package in

import (
	"context"

	"focuslock/internal/modules/attest/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.AttestorInfo, error)
	Check(ctx context.Context) ([]dto.CheckResult, error)
	VerifySession(ctx context.Context, input dto.VerifySessionInput) (dto.VerdictOutput, error)
}
