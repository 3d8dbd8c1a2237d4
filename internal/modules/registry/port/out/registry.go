package out

import (
	"context"

	"focuslock/internal/modules/registry/domain"
)

type RegistryStore interface {
	Create(ctx context.Context, registry domain.Registry) error
	Get(ctx context.Context) (domain.Registry, error)
	Update(ctx context.Context, registry domain.Registry) error
}
