package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	attestrpc "focuslock/internal/modules/attest/adapter/out/rpc"
	"focuslock/internal/modules/attest/domain"
	attestout "focuslock/internal/modules/attest/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() attestout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version}, nil
}

func (h *GRPCHost) VerifySession(ctx context.Context, manifest domain.Manifest, evidence domain.Evidence) (domain.Verdict, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Verdict{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.VerifySession(callCtx, &attestrpc.VerifySessionRequest{
		Owner:            evidence.Owner,
		CommitmentID:     evidence.CommitmentID,
		SessionNumber:    evidence.SessionNumber,
		StartedAtUnix:    evidence.StartedAt.Unix(),
		EndedAtUnix:      evidence.EndedAt.Unix(),
		WallClockMinutes: int32(evidence.WallMinutes),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Verdict{}, fmt.Errorf("%w: %s", domain.ErrAttestorTimeout, manifest.Name)
		}
		return domain.Verdict{}, fmt.Errorf("verify session: %w", err)
	}
	return domain.Verdict{Approved: response.Approved, Reason: response.Reason}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (attestrpc.AttestorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  attestrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          attestrpc.AttestorMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start attestor client: %w", err)
	}
	raw, err := rpcClient.Dispense(attestrpc.AttestorMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense attestor: %w", err)
	}
	typed, ok := raw.(attestrpc.AttestorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("attestor rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
