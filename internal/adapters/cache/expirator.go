package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTickInterval is how often stale entries are looked for when no interval is given
	DefaultTickInterval = 100 * time.Millisecond

	// Eternal disables expiry: entries may stay unread forever
	Eternal time.Duration = 0
)

// Store is the part of a cache the expirator needs
type Store[K comparable] interface {
	Now() time.Time
	MetaData() []Meta[K]
	RemoveIfNotAccessedSince(meta Meta[K]) bool
}

// ExpiryObserver is told how many entries a tick expired
type ExpiryObserver func(expired int)

// Expirator periodically removes cache entries that have not been read for longer than
// the maximum stale lifetime
type Expirator[K comparable] struct {
	store            Store[K]
	logger           *zap.Logger
	tickInterval     time.Duration
	maxStaleLifetime time.Duration
	observer         ExpiryObserver

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewExpirator creates a stopped expirator for store. A non-positive tickInterval uses
// DefaultTickInterval; a non-positive maxStaleLifetime means Eternal.
func NewExpirator[K comparable](
	store Store[K],
	logger *zap.Logger,
	tickInterval time.Duration,
	maxStaleLifetime time.Duration,
	observer ExpiryObserver,
) *Expirator[K] {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	if maxStaleLifetime < 0 {
		maxStaleLifetime = Eternal
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Expirator[K]{
		store:            store,
		logger:           logger,
		tickInterval:     tickInterval,
		maxStaleLifetime: maxStaleLifetime,
		observer:         observer,
	}
}

// IsEternal reports whether the expirator never expires anything
func (e *Expirator[K]) IsEternal() bool {
	return e.maxStaleLifetime == Eternal
}

// Running reports whether Start has been called without a matching Stop
func (e *Expirator[K]) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start begins ticking. Starting a running expirator does nothing, and an eternal
// expirator is marked running without scheduling any ticks.
func (e *Expirator[K]) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return
	}
	e.running = true

	if e.IsEternal() {
		e.logger.Debug("Expirator is eternal, no ticks scheduled")
		return
	}

	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	go e.run(e.stopCh, e.doneCh)

	e.logger.Debug("Expirator started",
		zap.Duration("tick_interval", e.tickInterval),
		zap.Duration("max_stale_lifetime", e.maxStaleLifetime))
}

// Stop cancels future ticks and waits for a tick in progress to finish. Stopping a
// stopped expirator does nothing.
func (e *Expirator[K]) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	stopCh, doneCh := e.stopCh, e.doneCh
	e.stopCh, e.doneCh = nil, nil
	e.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}
	e.logger.Debug("Expirator stopped")
}

// ExpireStaleEntries removes every entry unread for longer than the maximum stale
// lifetime and returns how many were removed
func (e *Expirator[K]) ExpireStaleEntries() int {
	if e.IsEternal() {
		return 0
	}

	now := e.store.Now()
	expired := 0
	for _, meta := range e.store.MetaData() {
		staleFor := meta.StaleFor(now)
		if staleFor <= e.maxStaleLifetime {
			continue
		}
		if e.store.RemoveIfNotAccessedSince(meta) {
			expired++
			e.logger.Debug("Expired key", zap.Any("key", meta.Key), zap.Duration("stale_for", staleFor))
		}
	}

	if expired > 0 && e.observer != nil {
		e.observer(expired)
	}
	return expired
}

func (e *Expirator[K]) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.ExpireStaleEntries()
		case <-stopCh:
			return
		}
	}
}
