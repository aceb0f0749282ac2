// Package lock serializes cooperating fmf processes that mutate the same
// file. It takes an advisory lock on a sibling "<file>.lock" file.
//
// The lock file is left in place after release. Removing it would let a
// waiter lock an unlinked inode while a newcomer locks a fresh file.
package lock

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
)

// Suffix is appended to the target path to form the lock file path.
const Suffix = ".lock"

// DefaultRetry is the polling interval while waiting for a held lock.
const DefaultRetry = 50 * time.Millisecond

// ErrLocked is returned when the lock could not be taken before ctx ended.
var ErrLocked = errors.New("file is locked by another process")

// Lock is a held advisory lock.
type Lock struct {
	f    *flock.Flock
	path string
}

// PathFor returns the lock file path for target.
func PathFor(target string) string {
	return target + Suffix
}

// Acquire blocks until the lock for target is held or ctx is done.
func Acquire(ctx context.Context, target string) (*Lock, error) {
	path := PathFor(target)
	f := flock.New(path)

	ok, err := f.TryLockContext(ctx, DefaultRetry)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Mark(errors.Wrapf(ctx.Err(), "waiting for %s", path), ErrLocked)
		}
		return nil, errors.Wrapf(err, "acquiring %s", path)
	}
	if !ok {
		return nil, errors.Wrapf(ErrLocked, "%s", path)
	}
	return &Lock{f: f, path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || !l.f.Locked() {
		return nil
	}
	if err := l.f.Unlock(); err != nil {
		return errors.Wrapf(err, "releasing %s", l.path)
	}
	return nil
}

// With runs fn while holding the lock for target.
func With(ctx context.Context, target string, fn func() error) (err error) {
	l, err := Acquire(ctx, target)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := l.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}
