package in

import (
	"context"

	"focuslock/internal/modules/treasury/dto"
)

type Usecase interface {
	Balance(ctx context.Context, address string) (dto.BalanceOutput, error)
	Transfer(ctx context.Context, input dto.TransferInput) error

	// Fund credits freshly minted value to a user balance. Development
	// faucet, mirrors the airdrop bootstrap of the host chain.
	Fund(ctx context.Context, address string, amount uint64) (dto.BalanceOutput, error)
}
