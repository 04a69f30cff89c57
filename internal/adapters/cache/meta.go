package cache

import (
	"fmt"
	"time"
)

// Meta is a point-in-time record of when a cache entry was created, read and overwritten.
// LastUpdatedAt is the zero time until the entry's value is first replaced.
type Meta[K comparable] struct {
	Key            K
	CreatedAt      time.Time
	LastAccessedAt time.Time
	LastUpdatedAt  time.Time
}

func newMeta[K comparable](key K, now time.Time) Meta[K] {
	return Meta[K]{
		Key:            key,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// WithAccess returns a copy of m read at now
func (m Meta[K]) WithAccess(now time.Time) Meta[K] {
	m.LastAccessedAt = now
	return m
}

// WithUpdate returns a copy of m overwritten at now
func (m Meta[K]) WithUpdate(now time.Time) Meta[K] {
	m.LastUpdatedAt = now
	return m
}

// IsUpdated reports whether the entry's value has been replaced since creation
func (m Meta[K]) IsUpdated() bool {
	return !m.LastUpdatedAt.IsZero()
}

// StaleFor returns how long the entry has gone unread at now
func (m Meta[K]) StaleFor(now time.Time) time.Duration {
	return now.Sub(m.LastAccessedAt)
}

func (m Meta[K]) String() string {
	updated := "never"
	if m.IsUpdated() {
		updated = m.LastUpdatedAt.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf(
		"Meta(key=%v createdAt=%s lastAccessedAt=%s lastUpdatedAt=%s)",
		m.Key,
		m.CreatedAt.Format(time.RFC3339Nano),
		m.LastAccessedAt.Format(time.RFC3339Nano),
		updated,
	)
}
