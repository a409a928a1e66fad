// Package stream defines the live slot feed contract. A publisher receives
// every simulated slot record so external consumers (dashboards, animation
// front-ends) can follow a run as it executes.
package stream

import (
	"sync"

	"github.com/kilianp07/fleetsim/core/sim"
)

// Publisher pushes slot records to an external channel.
type Publisher interface {
	// PublishSlot emits one slot record. Implementations must not block the
	// simulation loop on a slow consumer.
	PublishSlot(rec sim.SlotRecord) error

	// Close releases the underlying connection.
	Close()
}

// NopPublisher discards every record. Used when streaming is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishSlot(sim.SlotRecord) error { return nil }
func (NopPublisher) Close()                           {}

// RecordingPublisher keeps every published record in memory. It stands in
// for a broker-backed publisher in tests.
type RecordingPublisher struct {
	mu      sync.Mutex
	records []sim.SlotRecord
}

func (p *RecordingPublisher) PublishSlot(rec sim.SlotRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, rec)
	return nil
}

func (p *RecordingPublisher) Close() {}

// Records returns a copy of everything published so far.
func (p *RecordingPublisher) Records() []sim.SlotRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]sim.SlotRecord, len(p.records))
	copy(out, p.records)
	return out
}
