package session

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_CreatesIdleSession(t *testing.T) {
	r := NewRegistry()
	s := r.Get("g1")

	assert.Equal(t, "g1", s.RoomID)
	assert.Equal(t, Idle, s.Status)
	assert.False(t, s.TeardownRequested)
}

func TestTrySetRunning_OnlyOnce(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.TrySetRunning("g1"))
	assert.False(t, r.TrySetRunning("g1"))
	assert.Equal(t, Running, r.Get("g1").Status)

	// otros rooms no se ven afectados
	assert.True(t, r.TrySetRunning("g2"))
}

func TestRequestTeardown(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.RequestTeardown("g1"))
	assert.False(t, r.RequestTeardown("g1"))
	assert.False(t, r.Get("g1").TeardownRequested)

	require.True(t, r.TrySetRunning("g1"))
	assert.True(t, r.RequestTeardown("g1"))
	assert.True(t, r.RequestTeardown("g1"))
	s := r.Get("g1")
	assert.True(t, s.TeardownRequested)
	assert.Equal(t, Running, s.Status)
}

func TestClear_ResetsFlags(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.TrySetRunning("g1"))
	require.True(t, r.RequestTeardown("g1"))

	r.Clear("g1")

	s := r.Get("g1")
	assert.Equal(t, Idle, s.Status)
	assert.False(t, s.TeardownRequested)
	assert.True(t, r.TrySetRunning("g1"))
}

func TestTrySetRunning_ConcurrentStarts(t *testing.T) {
	r := NewRegistry()
	var wins atomic.Int32
	var wg sync.WaitGroup

	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TrySetRunning("g1") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestRunning(t *testing.T) {
	r := NewRegistry()
	r.Get("idle")
	require.True(t, r.TrySetRunning("b"))
	require.True(t, r.TrySetRunning("a"))

	assert.Equal(t, []string{"a", "b"}, r.Running())
}

func TestRoomSessionJSON(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.TrySetRunning("g1"))

	b, err := json.Marshal(r.Get("g1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"room_id":"g1","status":"running","teardown_requested":false}`, string(b))
}
