package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryHAppendListField(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// Missing key
	st, err := m.HAppendListField(ctx, "k", "connected", "a", 2)
	require.NoError(t, err)
	require.Equal(t, AppendMissing, st)

	require.NoError(t, m.HSet(ctx, "k", map[string]string{"connected": "[]"}))

	st, err = m.HAppendListField(ctx, "k", "connected", "a", 2)
	require.NoError(t, err)
	require.Equal(t, AppendOK, st)

	// Duplicate value
	st, err = m.HAppendListField(ctx, "k", "connected", "a", 2)
	require.NoError(t, err)
	require.Equal(t, AppendAlreadyMember, st)

	st, err = m.HAppendListField(ctx, "k", "connected", "b", 2)
	require.NoError(t, err)
	require.Equal(t, AppendOK, st)

	// At capacity
	st, err = m.HAppendListField(ctx, "k", "connected", "c", 2)
	require.NoError(t, err)
	require.Equal(t, AppendFull, st)

	raw, ok, err := m.HGet(ctx, "k", "connected")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `["a","b"]`, raw)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.HSet(ctx, "k", map[string]string{"f": "v"}))
	require.NoError(t, m.Expire(ctx, "k", 30*time.Millisecond))

	ttl, err := m.TTL(ctx, "k")
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	time.Sleep(60 * time.Millisecond)

	ttl, err = m.TTL(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), ttl)

	fields, err := m.HGetAll(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, fields)

	ok, err := m.Exists(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryTTLWithoutDeadline(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.RPush(ctx, "l", "x"))
	ttl, err := m.TTL(ctx, "l")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), ttl)
}

func TestMemoryLRange(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, m.RPush(ctx, "l", v))
	}

	all, err := m.LRange(ctx, "l", 0, -1)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, all)

	mid, err := m.LRange(ctx, "l", 1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, mid)

	none, err := m.LRange(ctx, "missing", 0, -1)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryDel(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.HSet(ctx, "a", map[string]string{"f": "v"}))
	require.NoError(t, m.RPush(ctx, "b", "x"))
	require.NoError(t, m.Del(ctx, "a", "b", "c"))

	for _, k := range []string{"a", "b"} {
		ok, err := m.Exists(ctx, k)
		require.NoError(t, err)
		require.False(t, ok)
	}
}
