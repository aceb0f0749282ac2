package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathFor(t *testing.T) {
	assert.Equal(t, "notes/post.md.lock", PathFor("notes/post.md"))
}

func TestAcquireRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.md")

	l, err := Acquire(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, target+".lock", l.Path())

	_, err = os.Stat(l.Path())
	require.NoError(t, err, "lock file should exist")

	require.NoError(t, l.Release())
	require.NoError(t, l.Release(), "second release is a no-op")

	// Lock file is kept after release.
	_, err = os.Stat(l.Path())
	assert.NoError(t, err)
}

func TestAcquire_HeldTimesOut(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.md")

	held, err := Acquire(context.Background(), target)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.Release() })

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err = Acquire(ctx, target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked), "got %v", err)
}

func TestWith(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.md")

	ran := false
	err := With(context.Background(), target, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	err = With(context.Background(), target, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// The lock is free again after With returns.
	l, err := Acquire(context.Background(), target)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}
