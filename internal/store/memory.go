package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	hash     map[string]string
	list     []string
	deadline time.Time // zero = no expiry
}

func (e *entry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && !now.Before(e.deadline)
}

// Memory is a mutex-guarded KV with per-key deadlines. It backs dev mode
// (no redis configured) and the package tests; HAppendListField holds the
// lock across read-check-append, matching the redis script's atomicity.
type Memory struct {
	mu   sync.Mutex
	data map[string]*entry
}

func NewMemory() *Memory {
	return &Memory{data: map[string]*entry{}}
}

// live returns the entry for key, dropping it first if its deadline passed.
// Callers must hold m.mu.
func (m *Memory) live(key string) *entry {
	e := m.data[key]
	if e == nil {
		return nil
	}
	if e.expired(time.Now()) {
		delete(m.data, key)
		return nil
	}
	return e
}

func (m *Memory) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil {
		e = &entry{hash: map[string]string{}}
		m.data[key] = e
	}
	if e.hash == nil {
		e.hash = map[string]string{}
	}
	for k, v := range fields {
		e.hash[k] = v
	}
	return nil
}

func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || len(e.hash) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(e.hash))
	for k, v := range e.hash {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) HGet(_ context.Context, key, field string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil {
		return "", false, nil
	}
	v, ok := e.hash[field]
	return v, ok, nil
}

func (m *Memory) HAppendListField(_ context.Context, key, field, value string, max int) (AppendStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil {
		return AppendMissing, nil
	}
	raw, ok := e.hash[field]
	if !ok {
		return AppendMissing, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return AppendMissing, fmt.Errorf("decode list field %q: %w", field, err)
	}
	for _, v := range list {
		if v == value {
			return AppendAlreadyMember, nil
		}
	}
	if len(list) >= max {
		return AppendFull, nil
	}
	list = append(list, value)
	enc, err := json.Marshal(list)
	if err != nil {
		return AppendMissing, err
	}
	e.hash[field] = string(enc)
	return AppendOK, nil
}

func (m *Memory) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.live(key); e != nil {
		e.deadline = time.Now().Add(ttl)
	}
	return nil
}

func (m *Memory) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil || e.deadline.IsZero() {
		return 0, nil
	}
	d := time.Until(e.deadline)
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) RPush(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil {
		e = &entry{}
		m.data[key] = e
	}
	e.list = append(e.list, value)
	return nil
}

func (m *Memory) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.live(key)
	if e == nil {
		return nil, nil
	}
	n := int64(len(e.list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return nil, nil
	}
	out := make([]string, stop-start+1)
	copy(out, e.list[start:stop+1])
	return out, nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live(key) != nil, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
