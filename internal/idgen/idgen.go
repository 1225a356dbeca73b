// Package idgen produces snowflake-style identifiers whose numeric order
// matches creation order, so the same value serves as primary key and as
// keyset-pagination cursor.
package idgen

import (
	"fmt"
	"sync"
	"time"
)

const (
	// Custom epoch: 2024-01-01T00:00:00Z in milliseconds.
	epochMs = int64(1704067200000)

	nodeBits = 10
	seqBits  = 12

	maxNode = int64(-1) ^ (int64(-1) << nodeBits)
	maxSeq  = int64(-1) ^ (int64(-1) << seqBits)

	timeShift = nodeBits + seqBits
	nodeShift = seqBits
)

// Generator hands out strictly increasing int64 ids. Safe for concurrent
// use; a single instance is shared by the whole process.
type Generator struct {
	mu     sync.Mutex
	node   int64
	lastMs int64
	seq    int64
}

// New creates a generator for the given node id (0..1023).
func New(node int64) (*Generator, error) {
	if node < 0 || node > maxNode {
		return nil, fmt.Errorf("idgen: node %d out of range [0, %d]", node, maxNode)
	}
	return &Generator{node: node}, nil
}

// Next returns an id strictly greater than every id this generator has
// returned before, even under concurrent calls. When the wall clock runs
// backwards the generator keeps counting against the last observed
// millisecond instead of going back in time.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now < g.lastMs {
		now = g.lastMs
	}

	if now == g.lastMs {
		g.seq = (g.seq + 1) & maxSeq
		if g.seq == 0 {
			// sequence exhausted within this millisecond
			for now <= g.lastMs {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		g.seq = 0
	}
	g.lastMs = now

	return (now-epochMs)<<timeShift | g.node<<nodeShift | g.seq
}

// Timestamp extracts the creation time encoded in an id.
func Timestamp(id int64) time.Time {
	return time.UnixMilli(id>>timeShift + epochMs)
}
