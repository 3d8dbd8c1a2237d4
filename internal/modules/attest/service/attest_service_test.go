package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focuslock/internal/modules/attest/domain"
	"focuslock/internal/modules/attest/dto"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
	err       error
}

func (s *fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	verdicts  map[string]domain.Verdict
	verifyErr error
	calls     []string
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error {
	return nil
}

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version}, nil
}

func (h *fakeHost) VerifySession(_ context.Context, m domain.Manifest, _ domain.Evidence) (domain.Verdict, error) {
	h.calls = append(h.calls, m.Name)
	if h.verifyErr != nil {
		return domain.Verdict{}, h.verifyErr
	}
	return h.verdicts[m.Name], nil
}

func writeBinary(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\nexit 0\n" + name)
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func evidenceInput() dto.VerifySessionInput {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return dto.VerifySessionInput{
		Owner:         "alice",
		CommitmentID:  1,
		SessionNumber: 1,
		StartedAt:     start,
		EndedAt:       start.Add(time.Hour),
		WallMinutes:   60,
	}
}

func TestVerifySessionNoEnabledAttestorsApproves(t *testing.T) {
	t.Parallel()

	binary, sum := writeBinary(t, t.TempDir(), "tracker")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "tracker", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: false},
	}}
	host := &fakeHost{}
	svc := NewAttestService(store, host)

	verdict, err := svc.VerifySession(context.Background(), evidenceInput())
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if !verdict.Approved {
		t.Fatal("expected approval with no enabled attestors")
	}
	if len(host.calls) != 0 {
		t.Fatalf("disabled attestor was consulted: %v", host.calls)
	}
}

func TestVerifySessionFirstRejectionWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trackerBin, trackerSum := writeBinary(t, dir, "tracker")
	screenBin, screenSum := writeBinary(t, dir, "screen")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "tracker", Version: "1.0.0", Binary: trackerBin, SHA256: trackerSum, Enabled: true},
		{Name: "screen", Version: "1.0.0", Binary: screenBin, SHA256: screenSum, Enabled: true},
	}}
	host := &fakeHost{verdicts: map[string]domain.Verdict{
		"tracker": {Approved: false, Reason: "idle for 20 minutes"},
		"screen":  {Approved: true},
	}}
	svc := NewAttestService(store, host)

	verdict, err := svc.VerifySession(context.Background(), evidenceInput())
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if verdict.Approved {
		t.Fatal("expected rejection")
	}
	if verdict.Attestor != "tracker" {
		t.Fatalf("attestor = %q, want tracker", verdict.Attestor)
	}
	if verdict.Reason != "idle for 20 minutes" {
		t.Fatalf("reason = %q", verdict.Reason)
	}
	if len(host.calls) != 1 {
		t.Fatalf("expected verification to stop at first rejection, calls = %v", host.calls)
	}
}

func TestVerifySessionAllApprove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trackerBin, trackerSum := writeBinary(t, dir, "tracker")
	screenBin, screenSum := writeBinary(t, dir, "screen")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "tracker", Version: "1.0.0", Binary: trackerBin, SHA256: trackerSum, Enabled: true},
		{Name: "screen", Version: "1.0.0", Binary: screenBin, SHA256: screenSum, Enabled: true},
	}}
	host := &fakeHost{verdicts: map[string]domain.Verdict{
		"tracker": {Approved: true},
		"screen":  {Approved: true},
	}}
	svc := NewAttestService(store, host)

	verdict, err := svc.VerifySession(context.Background(), evidenceInput())
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if !verdict.Approved {
		t.Fatal("expected approval")
	}
	if len(host.calls) != 2 {
		t.Fatalf("expected both attestors consulted, calls = %v", host.calls)
	}
}

func TestVerifySessionChecksumMismatchBlocks(t *testing.T) {
	t.Parallel()

	binary, _ := writeBinary(t, t.TempDir(), "tracker")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "tracker", Version: "1.0.0", Binary: binary, SHA256: strings.Repeat("ab", 32), Enabled: true},
	}}
	host := &fakeHost{}
	svc := NewAttestService(store, host)

	_, err := svc.VerifySession(context.Background(), evidenceInput())
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
	if len(host.calls) != 0 {
		t.Fatal("tampered attestor must not be consulted")
	}
}

func TestVerifySessionRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	binary, sum := writeBinary(t, t.TempDir(), "tracker")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "tracker", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true},
		{Name: "tracker", Version: "2.0.0", Binary: binary, SHA256: sum, Enabled: true},
	}}
	svc := NewAttestService(store, &fakeHost{})

	if _, err := svc.VerifySession(context.Background(), evidenceInput()); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestCheckReportsBinaryAndChecksumState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	goodBin, goodSum := writeBinary(t, dir, "good")
	tamperedBin, _ := writeBinary(t, dir, "tampered")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "good", Version: "1.0.0", Binary: goodBin, SHA256: goodSum, Enabled: true},
		{Name: "tampered", Version: "1.0.0", Binary: tamperedBin, SHA256: strings.Repeat("cd", 32), Enabled: true},
		{Name: "missing", Version: "1.0.0", Binary: filepath.Join(dir, "absent"), SHA256: goodSum, Enabled: true},
		{Name: "", Version: "", Binary: "", SHA256: "", Enabled: false},
	}}
	svc := NewAttestService(store, &fakeHost{})

	results, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	byName := map[string]dto.CheckResult{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if r := byName["good"]; !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK || r.Error != "" {
		t.Fatalf("good attestor flagged: %+v", r)
	}
	if r := byName["tampered"]; !r.BinaryReachable || r.ChecksumValid || r.Error != "checksum mismatch" {
		t.Fatalf("tampered attestor not flagged: %+v", r)
	}
	if r := byName["missing"]; r.BinaryReachable || r.Error == "" {
		t.Fatalf("missing binary not flagged: %+v", r)
	}
	if r := byName[""]; r.Error == "" {
		t.Fatalf("invalid manifest not flagged: %+v", r)
	}
}

func TestListValidatesManifests(t *testing.T) {
	t.Parallel()

	store := &fakeManifestStore{manifests: []domain.Manifest{{Name: "broken"}}}
	svc := NewAttestService(store, &fakeHost{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}
