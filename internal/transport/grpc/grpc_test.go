package grpc

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nadzzz/playcue/internal/message"
	"github.com/nadzzz/playcue/internal/playback"
)

const bufSize = 1 << 20

func dialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	b, err := c.Marshal(&message.Message{Text: "pause"})
	require.NoError(t, err)

	var msg message.Message
	require.NoError(t, c.Unmarshal(b, &msg))
	assert.Equal(t, "pause", msg.Text)

	raw := json.RawMessage(`{"a":1}`)
	b, err = c.Marshal(&raw)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))

	var out json.RawMessage
	require.NoError(t, c.Unmarshal([]byte(`{"b":2}`), &out))
	assert.Equal(t, `{"b":2}`, string(out))

	assert.Error(t, c.Unmarshal([]byte(`{`), &msg))
}

func TestListen_Dispatch(t *testing.T) {
	lis := bufconn.Listen(bufSize)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(_ context.Context, msg *message.Message) (*message.DispatchResult, error) {
		return &message.DispatchResult{
			MessageID:    "m-1",
			Transcript:   msg.Text,
			Action:       &playback.Action{Intent: playback.IntentPause},
			ResponseText: "Playback paused",
			RoutedTo:     []string{},
		}, nil
	}

	tr := New(0)
	done := make(chan error, 1)
	go func() { done <- tr.serve(ctx, lis, handler) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()), dialer(lis))
	require.NoError(t, err)
	defer conn.Close()

	var res message.DispatchResult
	err = conn.Invoke(ctx, DispatchMethod, &message.Message{Source: "robot", Text: "pause"}, &res,
		grpc.ForceCodec(jsonCodec{}))
	require.NoError(t, err)
	assert.Equal(t, "m-1", res.MessageID)
	assert.Equal(t, "pause", res.Transcript)
	require.NotNil(t, res.Action)
	assert.Equal(t, playback.IntentPause, res.Action.Intent)

	cancel()
	assert.NoError(t, <-done)
}

// executorServer implements playcue.v1.Executor for Send tests.
type executorServer struct {
	got chan json.RawMessage
}

type executor interface {
	execute(ctx context.Context, payload json.RawMessage) error
}

func (e *executorServer) execute(_ context.Context, payload json.RawMessage) error {
	e.got <- payload
	return nil
}

var executorDesc = grpc.ServiceDesc{
	ServiceName: "playcue.v1.Executor",
	HandlerType: (*executor)(nil),
	Methods: []grpc.MethodDesc{{
		MethodName: "Execute",
		Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
			var in json.RawMessage
			if err := dec(&in); err != nil {
				return nil, err
			}
			if err := srv.(executor).execute(ctx, in); err != nil {
				return nil, err
			}
			out := json.RawMessage(`{}`)
			return &out, nil
		},
	}},
}

func TestSend(t *testing.T) {
	lis := bufconn.Listen(bufSize)
	srv := NewServer()
	exec := &executorServer{got: make(chan json.RawMessage, 1)}
	srv.RegisterService(&executorDesc, exec)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	tr := New(0, dialer(lis))
	defer tr.Close()

	payload := []byte(`{"message_id":"m-1","action":{"intent":"pause"}}`)
	err := tr.Send(context.Background(), message.Target{Endpoint: "passthrough:///executor"}, payload)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(<-exec.got))

	// The connection is reused for the same endpoint.
	require.NoError(t, tr.Send(context.Background(), message.Target{Endpoint: "passthrough:///executor"}, payload))
	<-exec.got
	assert.Len(t, tr.conns, 1)
}

func TestSend_Unreachable(t *testing.T) {
	lis := bufconn.Listen(bufSize)
	require.NoError(t, lis.Close())

	tr := New(0, dialer(lis))
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	err := tr.Send(ctx, message.Target{Endpoint: "passthrough:///gone"}, []byte(`{}`))
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "grpc", New(0).Name())
}

func TestClose_BeforeServe(t *testing.T) {
	lis := bufconn.Listen(bufSize)
	tr := New(0)
	require.NoError(t, tr.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := tr.serve(ctx, lis, func(context.Context, *message.Message) (*message.DispatchResult, error) {
		return &message.DispatchResult{}, nil
	})
	assert.NoError(t, err)
}

func TestClose_ConcurrentWithListen(t *testing.T) {
	tr := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- tr.Listen(ctx, func(context.Context, *message.Message) (*message.DispatchResult, error) {
			return &message.DispatchResult{}, nil
		})
	}()

	assert.NoError(t, tr.Close())
	cancel()
	assert.NoError(t, <-done)
}
