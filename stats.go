package headerkit

import (
	"sync"
	"sync/atomic"
)

const (
	// headerBlocksRead is the name of the metric that tracks the total header blocks parsed.
	headerBlocksRead     string = "header_blocks_read_total"
	headerBlocksReadHelp string = "Total header blocks parsed"

	// headerFieldsRead is the name of the metric that tracks the total header fields parsed.
	headerFieldsRead     string = "header_fields_read_total"
	headerFieldsReadHelp string = "Total header fields parsed"

	// headerFieldsFolded is the name of the metric that tracks fields whose name collided
	// case-insensitively with an earlier field of the same block.
	headerFieldsFolded     string = "header_fields_folded_total"
	headerFieldsFoldedHelp string = "Total header fields merged into an existing case-insensitive slot"

	// malformedFields is the name of the metric that tracks rejected header lines.
	malformedFields     string = "malformed_fields_total"
	malformedFieldsHelp string = "Total header lines rejected as malformed"
)

// Counter represents a monotonically increasing metric.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()
	// Add adds the given value to the counter.
	Add(value int64)
	// Get returns the current value of the counter.
	// This is used to support unit-testing of the metrics.
	Get() int64
}

// StatsRegistry provides a registry for callers to collect the parser's metrics.
// Implementations are expected to be thread-safe so that headerkit can safely
// update metrics from multiple goroutines.
type StatsRegistry interface {
	// RegisterCounter registers a new counter metric.
	// Returns an existing counter if one with the same name was already registered.
	RegisterCounter(name, help string) Counter
}

// Nil-safe implementation for when no StatsRegistry is provided.
type localCounter struct {
	v atomic.Int64
}

func (n *localCounter) Inc()            { n.v.Add(1) }
func (n *localCounter) Add(value int64) { n.v.Add(value) }
func (n *localCounter) Get() int64      { return n.v.Load() }

type localRegistry struct {
	sync.Mutex
	counters map[string]*localCounter
}

func newLocalRegistry() *localRegistry {
	return &localRegistry{}
}

func (n *localRegistry) RegisterCounter(name, _ string) Counter {
	n.Lock()
	defer n.Unlock()
	if n.counters == nil {
		n.counters = make(map[string]*localCounter)
	}
	if c, ok := n.counters[name]; ok {
		return c
	}
	c := &localCounter{}
	n.counters[name] = c
	return c
}
