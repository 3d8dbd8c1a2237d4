package dto

type TransferInput struct {
	From      string
	To        string
	ToOwner   string
	Amount    uint64
	Authority string
}

type BalanceOutput struct {
	Address string
	Balance uint64
}
