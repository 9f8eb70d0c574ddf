package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RoundRobin(t *testing.T) {
	p := New("a", "b", "c")
	now := time.Now()

	got := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		lease, ok := p.Acquire(now)
		require.True(t, ok)
		got = append(got, lease.Value)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, got)
}

func TestPool_SuspendSkipsResource(t *testing.T) {
	p := New("a", "b")
	now := time.Now()

	lease, ok := p.Acquire(now)
	require.True(t, ok)
	assert.Equal(t, "a", lease.Value)
	lease.Suspend(now.Add(time.Hour))

	// only "b" remains usable
	for i := 0; i < 3; i++ {
		l, ok := p.Acquire(now)
		require.True(t, ok)
		assert.Equal(t, "b", l.Value)
	}
	assert.Equal(t, 1, p.Active(now))
}

func TestPool_CooldownExpires(t *testing.T) {
	p := New("a")
	now := time.Now()

	lease, ok := p.Acquire(now)
	require.True(t, ok)
	lease.Suspend(now.Add(time.Minute))

	_, ok = p.Acquire(now)
	assert.False(t, ok, "resource in cooldown should not be acquirable")

	l, ok := p.Acquire(now.Add(2 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, "a", l.Value)
}

func TestPool_Empty(t *testing.T) {
	p := New[string]()
	_, ok := p.Acquire(time.Now())
	assert.False(t, ok)
	assert.Equal(t, 0, p.Active(time.Now()))
	assert.Equal(t, 0, p.Size())
}
