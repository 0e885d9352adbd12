// Package optimistic applies a change to shared state before the operation
// backing it has finished, and restores the previous value if it fails.
package optimistic

import (
	"errors"
	"sync"
)

// ErrFinished is returned when a transaction is used after Commit or Rollback.
var ErrFinished = errors.New("optimistic transaction already finished")

// Tx guards one optimistic update of *target.
type Tx[T any] struct {
	mu       sync.Locker
	target   *T
	previous T
	done     bool
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// Begin captures the current value of *target. lock, when non-nil, is held
// while the target is read or written.
func Begin[T any](target *T, lock sync.Locker) *Tx[T] {
	if lock == nil {
		lock = noopLocker{}
	}
	lock.Lock()
	defer lock.Unlock()
	return &Tx[T]{mu: lock, target: target, previous: *target}
}

// Previous returns the value captured by Begin.
func (t *Tx[T]) Previous() T {
	return t.previous
}

// Apply publishes the optimistic value.
func (t *Tx[T]) Apply(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrFinished
	}
	*t.target = v
	return nil
}

// Commit keeps the applied value.
func (t *Tx[T]) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrFinished
	}
	t.done = true
	return nil
}

// Rollback restores the value captured by Begin.
func (t *Tx[T]) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrFinished
	}
	*t.target = t.previous
	t.done = true
	return nil
}

// Run applies v, calls fn, and commits when fn succeeds or rolls back otherwise.
// fn's error is returned unchanged.
func Run[T any](target *T, lock sync.Locker, v T, fn func(previous T) error) error {
	tx := Begin(target, lock)
	if err := tx.Apply(v); err != nil {
		return err
	}
	if err := fn(tx.Previous()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
