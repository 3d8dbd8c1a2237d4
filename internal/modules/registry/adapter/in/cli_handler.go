package in

import (
	"context"

	"focuslock/internal/modules/registry/dto"
	registryin "focuslock/internal/modules/registry/port/in"
)

type CLIHandler struct {
	usecase registryin.Usecase
}

func NewCLIHandler(usecase registryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context, authority, assetID string, rewardRatePercent uint64) (dto.RegistryOutput, error) {
	return h.usecase.Init(ctx, dto.InitInput{Authority: authority, AssetID: assetID, RewardRatePercent: rewardRatePercent})
}

func (h CLIHandler) Get(ctx context.Context) (dto.RegistryOutput, error) {
	return h.usecase.Get(ctx)
}
