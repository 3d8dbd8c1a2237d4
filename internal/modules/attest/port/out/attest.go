package out

import (
	"context"

	"focuslock/internal/modules/attest/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	VerifySession(ctx context.Context, manifest domain.Manifest, evidence domain.Evidence) (domain.Verdict, error)
}
