package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==================== Fakes ====================

type countingPurger struct {
	mu    sync.Mutex
	calls int
	ttls  []time.Duration
}

func (p *countingPurger) PurgeIdle(ctx context.Context, ttl time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.ttls = append(p.ttls, ttl)
	return 1
}

func (p *countingPurger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type countingReloader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.err
}

func (r *countingReloader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// ==================== Session cleanup ====================

func TestSessionCleanupTask_Defaults(t *testing.T) {
	task := NewSessionCleanupTask(&countingPurger{}, "", 0, nil)
	assert.Equal(t, "0 */5 * * * *", task.spec)
	assert.Equal(t, 2*time.Hour, task.idleTTL)
}

func TestSessionCleanupTask_RunOncePassesTTL(t *testing.T) {
	purger := &countingPurger{}
	task := NewSessionCleanupTask(purger, "", 45*time.Minute, zaptest.NewLogger(t))

	task.runOnce()

	require.Equal(t, 1, purger.count())
	assert.Equal(t, 45*time.Minute, purger.ttls[0])
}

func TestSessionCleanupTask_Schedule(t *testing.T) {
	purger := &countingPurger{}
	task := NewSessionCleanupTask(purger, "* * * * * *", time.Minute, zaptest.NewLogger(t))

	require.NoError(t, task.Start())
	defer task.Stop()

	assert.Eventually(t, func() bool { return purger.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSessionCleanupTask_InvalidSpec(t *testing.T) {
	task := NewSessionCleanupTask(&countingPurger{}, "not a spec", time.Minute, nil)
	assert.Error(t, task.Start())
}

// ==================== Report board ====================

func TestReportBoardTask_LoadsOnStart(t *testing.T) {
	reloader := &countingReloader{}
	task := NewReportBoardTask(reloader, "0 0 0 1 1 *", zaptest.NewLogger(t))

	require.NoError(t, task.Start())
	defer task.Stop()

	assert.Eventually(t, func() bool { return reloader.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestReportBoardTask_ReloadErrorIsLogged(t *testing.T) {
	reloader := &countingReloader{err: errors.New("db down")}
	task := NewReportBoardTask(reloader, "", zaptest.NewLogger(t))

	assert.NotPanics(t, task.runOnce)
	assert.Equal(t, 1, reloader.count())
}
