package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+s.Addr()+"/3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, 3, client.Options().DB)
	require.NoError(t, HealthCheck(client)(context.Background()))
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	require.ErrorContains(t, err, "parse redis url")

	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err = NewClient(context.Background(), "redis://"+addr)
	require.ErrorContains(t, err, "ping redis")
}

func TestHealthCheck_ServerGone(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := HealthCheck(client)
	require.NoError(t, check(context.Background()))

	s.Close()
	assert.Error(t, check(context.Background()))
}
