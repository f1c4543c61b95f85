package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeaconRegistryStartsEmpty(t *testing.T) {
	r := newBeaconRegistry()
	assert.True(t, r.isEmpty())
}

func TestBeaconRetireTwiceFails(t *testing.T) {
	r := newBeaconRegistry()
	b, err := r.create(nil)
	require.NoError(t, err)

	require.NoError(t, b.Die())
	assert.ErrorIs(t, b.Die(), ErrBeaconAlreadyRetired)
}

func TestBeaconRegistryFinalizeRejectsCreate(t *testing.T) {
	r := newBeaconRegistry()
	r.finalize()

	_, err := r.create("diagnostic")
	assert.ErrorIs(t, err, ErrLifecycleFinalized)
}

func TestBeaconRegistryAwaitEmptyReturnsImmediatelyWhenEmpty(t *testing.T) {
	r := newBeaconRegistry()

	done := make(chan struct{})
	go func() {
		r.awaitEmpty(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("awaitEmpty blocked on an already-empty registry")
	}
}

func TestBeaconRegistryAwaitEmptyBlocksUntilRetired(t *testing.T) {
	r := newBeaconRegistry()
	b, err := r.create(nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		r.awaitEmpty(context.Background())
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("awaitEmpty returned before the beacon was retired")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, b.Die())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("awaitEmpty did not unblock after beacon retirement")
	}
}

func TestBeaconContext(t *testing.T) {
	r := newBeaconRegistry()
	b, err := r.create("request-42")
	require.NoError(t, err)
	assert.Equal(t, "request-42", b.Context())
}
