package in

import (
	"context"

	"focuslock/internal/modules/commitment/dto"
	commitmentin "focuslock/internal/modules/commitment/port/in"
)

type CLIHandler struct {
	usecase commitmentin.Usecase
}

func NewCLIHandler(usecase commitmentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, owner string, commitmentID, amount uint64, sessionsPerDay, totalDays uint8) (dto.CommitmentOutput, error) {
	return h.usecase.Open(ctx, dto.OpenInput{
		Owner:          owner,
		CommitmentID:   commitmentID,
		Amount:         amount,
		SessionsPerDay: sessionsPerDay,
		TotalDays:      totalDays,
	})
}

func (h CLIHandler) Get(ctx context.Context, owner string, commitmentID uint64) (dto.CommitmentOutput, error) {
	return h.usecase.Get(ctx, owner, commitmentID)
}

func (h CLIHandler) List(ctx context.Context, owner string) ([]dto.CommitmentOutput, error) {
	return h.usecase.List(ctx, owner)
}

func (h CLIHandler) Claim(ctx context.Context, owner string, commitmentID uint64, caller string) (dto.ClaimOutput, error) {
	return h.usecase.Claim(ctx, dto.ClaimInput{Owner: owner, CommitmentID: commitmentID, Caller: caller})
}
