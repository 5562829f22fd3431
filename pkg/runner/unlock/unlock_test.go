package unlock

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/store"
)

func TestUnlockClearsRecord(t *testing.T) {
	color.NoColor = true
	kv := store.NewMemory()
	tr := lockout.New(kv, nil)
	_, err := tr.Lock(lockout.Duration)
	require.NoError(t, err)

	bus := events.New()
	published := 0
	defer bus.Subscribe(events.TopicLockoutChanged, func() { published++ })()

	var out bytes.Buffer
	require.NoError(t, (&Unlock{Lockout: tr, Bus: bus, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "terminal unlocked (10 minute(s) were left)")
	assert.Equal(t, 1, published)

	_, locked := tr.Remaining()
	assert.False(t, locked)
	_, err = kv.Get(lockout.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnlockWhenOpen(t *testing.T) {
	tr := lockout.New(store.NewMemory(), nil)
	var out bytes.Buffer
	require.NoError(t, (&Unlock{Lockout: tr, Out: &out}).Do(context.Background()))
	assert.Equal(t, "terminal was not locked\n", out.String())
}
