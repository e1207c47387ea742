package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"os"
	"runtime"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"phoneticwalk/align"
)

// jsonCodec lets gRPC carry JSON payloads instead of protobuf, so the
// unary Align RPC can reuse align.Track/align.Config/align.Result
// directly without a generated codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// AlignRequest/AlignReply are the unary RPC's JSON-over-gRPC payloads.
type AlignRequest struct {
	Track1 align.Track  `json:"track1"`
	Track2 align.Track  `json:"track2"`
	Config align.Config `json:"config"`
}

type AlignReply struct {
	JobID  string       `json:"jobId"`
	Result align.Result `json:"result"`
	Error  string       `json:"error,omitempty"`
}

// AlignServer is the hand-rolled gRPC service interface for unary
// alignment requests.
type AlignServer interface {
	Align(context.Context, *AlignRequest) (*AlignReply, error)
}

type UnimplementedAlignServer struct{}

func (UnimplementedAlignServer) Align(context.Context, *AlignRequest) (*AlignReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Align not implemented")
}

func _Align_Align_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(AlignRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AlignServer).Align(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/phoneticwalk.Align/Align"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AlignServer).Align(ctx, req.(*AlignRequest))
	}
	return interceptor(ctx, req, info, handler)
}

var _Align_serviceDesc = grpc.ServiceDesc{
	ServiceName: "phoneticwalk.Align",
	HandlerType: (*AlignServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Align",
			Handler:    _Align_Align_Handler,
		},
	},
	Metadata: "internal/api/align.proto",
}

func RegisterAlignServer(s *grpc.Server, srv AlignServer) {
	s.RegisterService(&_Align_serviceDesc, srv)
}

// Align implements AlignServer by delegating to the same AlignService
// the HTTP handler uses, so both record into the same history.Store and
// trigger the same /ws completion broadcast.
func (s *Server) Align(ctx context.Context, req *AlignRequest) (*AlignReply, error) {
	entry := s.AlignSvc.Submit(req.Track1, req.Track2, req.Config)
	return &AlignReply{JobID: entry.ID, Result: entry.Result, Error: entry.Err}, nil
}

func (s *Server) startGRPCServer() {
	addr := s.Config.GRPCAddr
	if addr == "" {
		if runtime.GOOS == "windows" {
			addr = "npipe:\\\\.\\pipe\\phoneticwalk-grpc"
		} else {
			addr = "unix:///tmp/phoneticwalk-grpc.sock"
		}
	}

	lis, err := listenGRPC(addr)
	if err != nil {
		log.Printf("Failed to start gRPC listener (%s): %v", addr, err)
		return
	}

	server := grpc.NewServer(
		grpc.Creds(insecure.NewCredentials()),
		grpc.ForceServerCodec(jsonCodec{}),
	)
	RegisterAlignServer(server, s)

	log.Printf("gRPC listening on %s", addr)
	if err := server.Serve(lis); err != nil {
		log.Printf("gRPC server stopped: %v", err)
	}
}

func listenGRPC(addr string) (net.Listener, error) {
	switch {
	case strings.HasPrefix(addr, "unix:"):
		socketPath := strings.TrimPrefix(addr, "unix:")
		if err := removeIfExists(socketPath); err != nil {
			return nil, err
		}
		return net.Listen("unix", socketPath)
	case strings.HasPrefix(addr, "npipe:"):
		return nil, status.Errorf(codes.Unimplemented, "named pipe transport requires a platform-specific listener")
	default:
		return net.Listen("tcp", addr)
	}
}

func removeIfExists(path string) error {
	if path == "" {
		return status.Errorf(codes.InvalidArgument, "empty socket path")
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
