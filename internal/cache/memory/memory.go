// Package memory implements the cache.Cache contract in process, on an
// expiring LRU (hashicorp/golang-lru). It exists for single-node
// deployments and local development, where running a Redis server buys
// nothing — main picks it automatically when no cache address is
// configured.
package memory

import (
	"context"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// capacity is far beyond the two list keys the application uses; the
// LRU bound is a safety net, not a tuning knob.
const capacity = 128

// Memory is the in-process cache.Cache implementation.
//
// expirable.LRU fixes one TTL for the whole cache at construction, so
// the per-call ttl argument of Set is accepted for interface
// compatibility but the constructor's TTL is what expires entries. The
// application only ever uses a single TTL, so nothing is lost.
type Memory struct {
	lru *expirable.LRU[string, string]
}

var _ cache.Cache = (*Memory)(nil)

// New builds an in-process cache whose entries expire after ttl.
func New(ttl time.Duration) *Memory {
	return &Memory{
		lru: expirable.NewLRU[string, string](capacity, nil, ttl),
	}
}

// Get returns the cached value, or cache.ErrMiss if the key is absent
// or has expired. There is no transport, so no other error can occur.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	value, ok := m.lru.Get(key)
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

// Set stores the value, overwriting any previous entry for the key.
func (m *Memory) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

// Del removes the given keys; absent keys are ignored.
func (m *Memory) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.lru.Remove(key)
	}
	return nil
}

// Close is a no-op; the LRU holds no external resources.
func (m *Memory) Close() error {
	return nil
}
