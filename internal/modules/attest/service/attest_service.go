package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"focuslock/internal/modules/attest/domain"
	"focuslock/internal/modules/attest/dto"
	attestout "focuslock/internal/modules/attest/port/out"
)

type AttestService struct {
	store attestout.ManifestStore
	host  attestout.Host
}

func NewAttestService(store attestout.ManifestStore, host attestout.Host) *AttestService {
	return &AttestService{store: store, host: host}
}

func (s *AttestService) List(ctx context.Context) ([]dto.AttestorInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttestorInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.AttestorInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

// Check probes every configured attestor without requiring it to be
// enabled: manifest validity, binary presence, checksum, and a metadata
// round trip for the ones that could actually run.
func (s *AttestService) Check(ctx context.Context) ([]dto.CheckResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.CheckResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.CheckResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// VerifySession asks every enabled attestor for a verdict. The first
// rejection wins; a setup with no enabled attestors approves everything.
func (s *AttestService) VerifySession(ctx context.Context, input dto.VerifySessionInput) (dto.VerdictOutput, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.VerdictOutput{}, err
	}
	evidence := domain.Evidence{
		Owner:         input.Owner,
		CommitmentID:  input.CommitmentID,
		SessionNumber: input.SessionNumber,
		StartedAt:     input.StartedAt,
		EndedAt:       input.EndedAt,
		WallMinutes:   input.WallMinutes,
	}
	if err := evidence.Validate(); err != nil {
		return dto.VerdictOutput{}, err
	}
	out := dto.VerdictOutput{Approved: true}
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			return dto.VerdictOutput{}, err
		}
		verdict, err := s.host.VerifySession(ctx, m, evidence)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return dto.VerdictOutput{}, fmt.Errorf("%w: %s", domain.ErrAttestorTimeout, m.Name)
			}
			return dto.VerdictOutput{}, err
		}
		if !verdict.Approved {
			return dto.VerdictOutput{Approved: false, Attestor: m.Name, Reason: verdict.Reason}, nil
		}
		out.Attestor = m.Name
	}
	return out, nil
}

func (s *AttestService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate attestor name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read attestor binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
