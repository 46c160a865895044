package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/auth"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

var analyzeInfo = &grpc.UnaryServerInfo{FullMethod: rpc.MethodAnalyze}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newService(t, 10, 10)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, analyzeInfo, h)
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newService(t, 10, 10)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, analyzeInfo, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrInvalidToken.Error(), status.Convert(err).Message())
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newService(t, 10, 10)

	tok, err := auth.GenerateToken("phone-1", testSecret, -time.Minute)
	require.NoError(t, err)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for expired token")
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(withToken(tok), nil, analyzeInfo, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrTokenExpired.Error(), status.Convert(err).Message())
}

func TestInterceptor_ValidToken_SetsDeviceID(t *testing.T) {
	s := newService(t, 10, 10)

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = deviceID(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(withToken(validToken(t)), nil, analyzeInfo, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "phone-1", got)
}

func TestRateLimitInterceptor(t *testing.T) {
	s := newService(t, 0.001, 1)

	calls := 0
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		calls++
		return nil, nil
	}

	_, err := s.rateLimitInterceptor(context.Background(), nil, analyzeInfo, h)
	require.NoError(t, err)

	_, err = s.rateLimitInterceptor(context.Background(), nil, analyzeInfo, h)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, 1, calls)
}
