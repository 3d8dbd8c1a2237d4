package service

import (
	"context"
	"fmt"

	"focuslock/internal/modules/treasury/domain"
	treasuryout "focuslock/internal/modules/treasury/port/out"
	apperrors "focuslock/internal/platform/errors"
)

type TreasuryService struct {
	store treasuryout.AccountStore
}

func NewTreasuryService(store treasuryout.AccountStore) *TreasuryService {
	return &TreasuryService{store: store}
}

// Transfer moves value between two custodial balances. The debit side only
// moves under its owner-of-record; an underfunded debit fails before any
// write happens.
func (s *TreasuryService) Transfer(ctx context.Context, from, to, toOwner string, amount uint64, authority string) error {
	if amount == 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	if from == to {
		return fmt.Errorf("transfer endpoints must differ")
	}
	source, err := s.store.Get(ctx, from)
	if err != nil {
		return err
	}
	if authority != source.Owner {
		return apperrors.ErrInvalidAuthority
	}
	if source.Balance < amount {
		return apperrors.ErrInsufficientFunds
	}
	dest, err := s.store.Get(ctx, to)
	if err != nil {
		return err
	}
	if dest.Balance == 0 && toOwner != "" {
		dest.Owner = toOwner
	}
	source.Balance -= amount
	dest.Balance += amount
	if err := s.store.Put(ctx, source); err != nil {
		return err
	}
	return s.store.Put(ctx, dest)
}

func (s *TreasuryService) Fund(ctx context.Context, address string, amount uint64) (domain.Account, error) {
	if address == "" {
		return domain.Account{}, fmt.Errorf("address is required")
	}
	if amount == 0 {
		return domain.Account{}, fmt.Errorf("fund amount must be positive")
	}
	account, err := s.store.Get(ctx, address)
	if err != nil {
		return domain.Account{}, err
	}
	account.Balance += amount
	if err := s.store.Put(ctx, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}
