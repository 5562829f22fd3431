package serve

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/store"
	"tableflip.dev/folio/pkg/web"
)

func TestServeStopsWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cat, err := project.Default()
	require.NoError(t, err)
	v, err := auth.NewVerifier(auth.DefaultDigest)
	require.NoError(t, err)

	s := &Serve{
		Options: web.Options{Catalog: cat, Verifier: v, Lockout: lockout.New(store.NewMemory(), nil)},
		Addr:    "127.0.0.1:0",
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Do(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
