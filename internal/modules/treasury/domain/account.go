package domain

// Account is a custodial balance in the registry asset. Owner is the
// identity allowed to move value out of it: user balances are owned by
// themselves, commitment vaults by the protocol vault authority.
type Account struct {
	Address string
	Owner   string
	Balance uint64
}
