package circuitbreaker

import (
	"log"
	"sync"
	"time"
)

// Breaker trips after a burst of failures and stays open for a cooldown
// period. It guards the settlement RPC so a dead node fails fast instead of
// stacking up timed-out transactions.
type Breaker struct {
	threshold int
	window    time.Duration
	cooldown  time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	openedAt    time.Time
	open        bool
}

func New(threshold int, window, cooldown time.Duration) *Breaker {
	return &Breaker{
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
	}
}

// RecordFailure counts a failure and reports whether the circuit is open
// afterwards. Failures older than the window do not count toward the
// threshold.
func (b *Breaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if b.open {
		if now.Sub(b.openedAt) <= b.cooldown {
			return true
		}
		log.Printf("[settlement][breaker] cooldown elapsed, closing circuit")
		b.open = false
		b.failures = 0
	}

	if now.Sub(b.lastFailure) > b.window {
		b.failures = 0
	}
	b.failures++
	b.lastFailure = now

	if b.failures >= b.threshold {
		b.open = true
		b.openedAt = now
		log.Printf("[settlement][breaker] circuit opened after %d failures", b.failures)
		return true
	}
	return false
}

// RecordSuccess closes the circuit and clears the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.failures = 0
}

// IsOpen reports whether calls should be rejected right now. An open circuit
// closes by itself once the cooldown has elapsed.
func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open && time.Since(b.openedAt) > b.cooldown {
		b.open = false
		b.failures = 0
	}
	return b.open
}

// Reset force-closes the circuit.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.failures = 0
}
