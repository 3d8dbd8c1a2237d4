package in

import (
	"context"

	"focuslock/internal/modules/session/dto"
	sessionin "focuslock/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, owner string, commitmentID, sessionID uint64, caller string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Owner: owner, CommitmentID: commitmentID, SessionID: sessionID, Caller: caller})
}

func (h CLIHandler) Complete(ctx context.Context, owner string, commitmentID, sessionID uint64, caller string) (dto.CompleteOutput, error) {
	return h.usecase.Complete(ctx, dto.CompleteInput{Owner: owner, CommitmentID: commitmentID, SessionID: sessionID, Caller: caller})
}

func (h CLIHandler) Get(ctx context.Context, owner string, commitmentID, sessionID uint64) (dto.SessionOutput, error) {
	return h.usecase.Get(ctx, owner, commitmentID, sessionID)
}

func (h CLIHandler) List(ctx context.Context, owner string, commitmentID uint64) ([]dto.SessionOutput, error) {
	return h.usecase.List(ctx, owner, commitmentID)
}
