package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/triplingo-backend/internal/config"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/seed"
)

func TestSeedNames(t *testing.T) {
	t.Parallel()
	catalog, err := seed.Default()
	require.NoError(t, err)

	names, err := seedNames(catalog, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.Names(), names)

	names, err = seedNames(catalog, []string{"paris_seed_v1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"paris_seed_v1"}, names)

	_, err = seedNames(catalog, []string{"paris_seed_v1", "tokyo_seed_v1"})
	assert.ErrorIs(t, err, domain.ErrUnknownSeed)
}

func TestLoadCatalog_MissingDir(t *testing.T) {
	t.Parallel()
	_, err := loadCatalog(config.SeedConfig{CatalogDir: t.TempDir() + "/missing"})
	assert.Error(t, err)

	c, err := loadCatalog(config.SeedConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, c.Names())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{Addr: addr, Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, log) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenErrorIsReturned(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = serve(context.Background(), srv, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr))
}
