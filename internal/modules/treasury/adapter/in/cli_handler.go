package in

import (
	"context"

	"focuslock/internal/modules/treasury/dto"
	treasuryin "focuslock/internal/modules/treasury/port/in"
)

type CLIHandler struct {
	usecase treasuryin.Usecase
}

func NewCLIHandler(usecase treasuryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Balance(ctx context.Context, address string) (dto.BalanceOutput, error) {
	return h.usecase.Balance(ctx, address)
}

func (h CLIHandler) Fund(ctx context.Context, address string, amount uint64) (dto.BalanceOutput, error) {
	return h.usecase.Fund(ctx, address, amount)
}
