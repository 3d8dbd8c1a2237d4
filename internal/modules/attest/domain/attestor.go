package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrAttestorDisabled = errors.New("attestor is disabled")
	ErrChecksumMismatch = errors.New("attestor checksum mismatch")
	ErrAttestorTimeout  = errors.New("attestor timeout")
	ErrAttestorNotFound = errors.New("attestor not found")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one out-of-process attestor binary. Attestors get a
// veto over session completion: every enabled attestor must approve before
// a session counts toward a commitment.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	SHA256  string `yaml:"sha256"`
	Enabled bool   `yaml:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("attestor name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("attestor version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("attestor binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("attestor sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// Evidence is the completed-session summary handed to each attestor.
type Evidence struct {
	Owner         string
	CommitmentID  uint64
	SessionNumber uint64
	StartedAt     time.Time
	EndedAt       time.Time
	WallMinutes   int
}

func (e Evidence) Validate() error {
	if e.Owner == "" {
		return fmt.Errorf("evidence owner is required")
	}
	if e.EndedAt.Before(e.StartedAt) {
		return fmt.Errorf("evidence ends before it starts")
	}
	return nil
}

type Verdict struct {
	Approved bool
	Reason   string
}
