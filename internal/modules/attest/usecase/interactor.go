package usecase

import (
	"context"

	"focuslock/internal/modules/attest/dto"
	attestin "focuslock/internal/modules/attest/port/in"
	"focuslock/internal/modules/attest/service"
)

type Interactor struct {
	svc *service.AttestService
}

func NewInteractor(svc *service.AttestService) attestin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.AttestorInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return i.svc.Check(ctx)
}

func (i *Interactor) VerifySession(ctx context.Context, input dto.VerifySessionInput) (dto.VerdictOutput, error) {
	return i.svc.VerifySession(ctx, input)
}
