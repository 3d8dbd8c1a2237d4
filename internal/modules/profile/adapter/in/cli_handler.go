package in

import (
	"context"

	"focuslock/internal/modules/profile/dto"
	profilein "focuslock/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, owner string) (dto.ProfileOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Owner: owner})
}

func (h CLIHandler) Get(ctx context.Context, owner string) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx, owner)
}
