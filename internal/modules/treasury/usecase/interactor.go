package usecase

import (
	"context"

	"focuslock/internal/modules/treasury/dto"
	treasuryin "focuslock/internal/modules/treasury/port/in"
	treasuryout "focuslock/internal/modules/treasury/port/out"
	"focuslock/internal/modules/treasury/service"
	"focuslock/internal/platform/tx"
)

type Interactor struct {
	svc   *service.TreasuryService
	store treasuryout.AccountStore
	mgr   tx.Manager
}

func NewInteractor(svc *service.TreasuryService, store treasuryout.AccountStore, mgr tx.Manager) treasuryin.Usecase {
	return &Interactor{svc: svc, store: store, mgr: mgr}
}

func (i *Interactor) Balance(ctx context.Context, address string) (dto.BalanceOutput, error) {
	account, err := i.store.Get(ctx, address)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return dto.BalanceOutput{Address: account.Address, Balance: account.Balance}, nil
}

func (i *Interactor) Transfer(ctx context.Context, input dto.TransferInput) error {
	return i.mgr.Within(ctx, func(ctx context.Context) error {
		return i.svc.Transfer(ctx, input.From, input.To, input.ToOwner, input.Amount, input.Authority)
	})
}

func (i *Interactor) Fund(ctx context.Context, address string, amount uint64) (dto.BalanceOutput, error) {
	var out dto.BalanceOutput
	err := i.mgr.Within(ctx, func(ctx context.Context) error {
		account, err := i.svc.Fund(ctx, address, amount)
		if err != nil {
			return err
		}
		out = dto.BalanceOutput{Address: account.Address, Balance: account.Balance}
		return nil
	})
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return out, nil
}
