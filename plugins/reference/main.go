// Reference attestor. Approves any session that ran at least the minimum
// focus duration on the wall clock; useful as a template for attestors
// that consult real activity sources.
package main

import (
	"context"
	"fmt"

	attestrpc "focuslock/internal/modules/attest/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const minWallMinutes = 55

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *attestrpc.Empty) (*attestrpc.Metadata, error) {
	return &attestrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
	}, nil
}

func (s *server) VerifySession(_ context.Context, in *attestrpc.VerifySessionRequest) (*attestrpc.VerifySessionResponse, error) {
	if in.EndedAtUnix < in.StartedAtUnix {
		return &attestrpc.VerifySessionResponse{
			Approved: false,
			Reason:   "session ends before it starts",
		}, nil
	}
	if in.WallClockMinutes < minWallMinutes {
		return &attestrpc.VerifySessionResponse{
			Approved: false,
			Reason:   fmt.Sprintf("only %d of %d required minutes elapsed", in.WallClockMinutes, minWallMinutes),
		}, nil
	}
	return &attestrpc.VerifySessionResponse{Approved: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: attestrpc.HandshakeConfig,
		Plugins:         attestrpc.AttestorMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
