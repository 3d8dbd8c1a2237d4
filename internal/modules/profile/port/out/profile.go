package out

import (
	"context"

	"focuslock/internal/modules/profile/domain"
)

type ProfileStore interface {
	Create(ctx context.Context, profile domain.Profile) error
	Get(ctx context.Context, owner string) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) error
}
