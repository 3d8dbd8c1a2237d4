package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	AttestorMapKey      = "focuslock"
	serviceName         = "focuslock.attestor.v1.Attestor"
	jsonCodecName       = "json"
	methodGetMetadata   = "/" + serviceName + "/GetMetadata"
	methodVerifySession = "/" + serviceName + "/VerifySession"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FOCUSLOCK_ATTESTOR",
	MagicCookieValue: "focuslock",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type VerifySessionRequest struct {
	Owner            string `json:"owner"`
	CommitmentID     uint64 `json:"commitment_id"`
	SessionNumber    uint64 `json:"session_number"`
	StartedAtUnix    int64  `json:"started_at_unix"`
	EndedAtUnix      int64  `json:"ended_at_unix"`
	WallClockMinutes int32  `json:"wall_clock_minutes"`
}

type VerifySessionResponse struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

type AttestorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	VerifySession(ctx context.Context, in *VerifySessionRequest) (*VerifySessionResponse, error)
}

type AttestorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	VerifySession(ctx context.Context, in *VerifySessionRequest) (*VerifySessionResponse, error)
}

type attestorClient struct {
	conn *grpc.ClientConn
}

func NewAttestorClient(conn *grpc.ClientConn) AttestorClient {
	return &attestorClient{conn: conn}
}

func (c *attestorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *attestorClient) VerifySession(ctx context.Context, in *VerifySessionRequest) (*VerifySessionResponse, error) {
	out := &VerifySessionResponse{}
	if err := c.conn.Invoke(ctx, methodVerifySession, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterAttestorServer(server grpc.ServiceRegistrar, impl AttestorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AttestorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "VerifySession",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &VerifySessionRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.VerifySession(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodVerifySession}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*VerifySessionRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.VerifySession(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/attestor-rpc-v1.proto",
	}, impl)
}

type GRPCAttestor struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AttestorServer
}

func (p *GRPCAttestor) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAttestorServer(server, p.Impl)
	return nil
}

func (p *GRPCAttestor) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAttestorClient(conn), nil
}

func AttestorMap(impl AttestorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		AttestorMapKey: &GRPCAttestor{Impl: impl},
	}
}
