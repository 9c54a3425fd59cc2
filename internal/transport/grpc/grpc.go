// Package grpc implements the gRPC transport for playcue.
//
// The server exposes playcue.v1.Dispatch/Dispatch, taking a message.Message
// and returning a message.DispatchResult. Executors reached through Send
// implement playcue.v1.Executor/Execute, which receives the dispatch result
// as its request. Both services use a JSON codec, so any gRPC client that
// forces the "json" content subtype can talk to them.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	// DispatchMethod is the full method name served by Listen.
	DispatchMethod = "/playcue.v1.Dispatch/Dispatch"

	// ExecuteMethod is the full method name invoked by Send.
	ExecuteMethod = "/playcue.v1.Executor/Execute"
)

// DispatchServer is the server API for the playcue.v1.Dispatch service.
type DispatchServer interface {
	Dispatch(ctx context.Context, msg *message.Message) (*message.DispatchResult, error)
}

// handlerServer adapts a transport.Handler to DispatchServer.
type handlerServer struct {
	handler transport.Handler
}

func (s handlerServer) Dispatch(ctx context.Context, msg *message.Message) (*message.DispatchResult, error) {
	return s.handler(ctx, msg)
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.Message)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DispatchServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DispatchMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DispatchServer).Dispatch(ctx, req.(*message.Message))
	}
	return interceptor(ctx, in, info, handler)
}

var dispatchServiceDesc = grpc.ServiceDesc{
	ServiceName: "playcue.v1.Dispatch",
	HandlerType: (*DispatchServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Dispatch", Handler: dispatchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "playcue/v1/dispatch.json",
}

// RegisterDispatchServer registers srv on s.
func RegisterDispatchServer(s grpc.ServiceRegistrar, srv DispatchServer) {
	s.RegisterService(&dispatchServiceDesc, srv)
}

// NewServer returns a gRPC server that speaks the JSON codec.
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	return grpc.NewServer(append([]grpc.ServerOption{grpc.ForceServerCodec(jsonCodec{})}, opts...)...)
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port     int
	dialOpts []grpc.DialOption
	server   *grpc.Server

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// New creates a new gRPC transport on the given port. Extra dial options
// apply to connections opened by Send.
func New(port int, dialOpts ...grpc.DialOption) *Transport {
	return &Transport{
		port:     port,
		dialOpts: dialOpts,
		server:   NewServer(),
		conns:    make(map[string]*grpc.ClientConn),
	}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	slog.Info("grpc transport listening", "port", t.port)
	return t.serve(ctx, lis, handler)
}

func (t *Transport) serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	RegisterDispatchServer(t.server, handlerServer{handler: handler})

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.server.GracefulStop()
	}()

	// Close may stop the server before Serve starts.
	if err := t.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Send delivers a payload to a gRPC executor at target.Endpoint.
func (t *Transport) Send(ctx context.Context, target message.Target, payload []byte) error {
	conn, err := t.conn(target.Endpoint)
	if err != nil {
		return fmt.Errorf("grpc send: %w", err)
	}

	req := json.RawMessage(payload)
	var reply json.RawMessage
	if err := conn.Invoke(ctx, ExecuteMethod, &req, &reply, grpc.ForceCodec(jsonCodec{})); err != nil {
		return fmt.Errorf("grpc send to %s: %w", target.Endpoint, err)
	}

	slog.Debug("grpc send success", "target", target.Endpoint, "bytes", len(payload))
	return nil
}

// conn returns a cached client connection for endpoint.
func (t *Transport) conn(endpoint string) (*grpc.ClientConn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.conns[endpoint]; ok {
		return c, nil
	}
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, t.dialOpts...)
	c, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	t.conns[endpoint] = c
	return c, nil
}

// Close gracefully stops the gRPC server and closes client connections.
func (t *Transport) Close() error {
	t.server.GracefulStop()
	t.mu.Lock()
	defer t.mu.Unlock()
	for endpoint, c := range t.conns {
		_ = c.Close()
		delete(t.conns, endpoint)
	}
	return nil
}
