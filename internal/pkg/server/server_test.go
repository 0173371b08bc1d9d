package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"momentum/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	srv := New(config.ServerConfig{Port: "8081", ReadTimeout: 15, WriteTimeout: 120, IdleTimeout: 60}, http.NotFoundHandler())
	require.Equal(t, ":8081", srv.Addr)
	require.Equal(t, 15*time.Second, srv.ReadTimeout)
	require.Equal(t, 120*time.Second, srv.WriteTimeout)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, zap.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = Run(context.Background(), srv, zap.NewNop())
	require.ErrorContains(t, err, "listen on")
}
