package interceptor

import (
	"context"
	"errors"
	"testing"

	"toolrental-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

func TestRecovery(t *testing.T) {
	_, err := Recovery()(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLogging_PassesThrough(t *testing.T) {
	resp, err := Logging()(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	wantErr := errors.New("nope")
	_, err = Logging()(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestLogging_ScopesHandlerLogger(t *testing.T) {
	_, err := Logging()(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		assert.NotSame(t, logger.Get(), logger.FromContext(ctx))
		return nil, nil
	})
	assert.NoError(t, err)
}
