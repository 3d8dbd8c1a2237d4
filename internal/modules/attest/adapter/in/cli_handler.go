package in

import (
	"context"

	"focuslock/internal/modules/attest/dto"
	attestin "focuslock/internal/modules/attest/port/in"
)

type CLIHandler struct {
	usecase attestin.Usecase
}

func NewCLIHandler(usecase attestin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.AttestorInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return h.usecase.Check(ctx)
}
