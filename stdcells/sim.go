package stdcells

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

const defaultMaxSettleIterations = 10000

// Sim owns a heterogeneous graph of nodes, a monotone cycle counter, and
// a seeded deterministic PRNG. Construct one with NewSim or SimBuilder,
// register nodes with AddNode, wire their ports by hand, then drive time
// forward one clock at a time with Cycle.
type Sim struct {
	graph   []bucket
	scratch []bucket

	cycle    uint64
	rng      *rand.Rand
	rngState uint64

	maxSettleIterations int
	log                 *logrus.Logger
}

// SimBuilder builds a Sim using With*-methods on a value receiver,
// terminated by Build.
type SimBuilder struct {
	seed                uint64
	maxSettleIterations int
	log                 *logrus.Logger
}

// NewSimBuilder starts a SimBuilder seeded deterministically from seed.
// Two builders with the same seed and the same sequence of AddNode calls
// produce Sims with identical future cycles.
func NewSimBuilder(seed uint64) SimBuilder {
	return SimBuilder{
		seed:                seed,
		maxSettleIterations: defaultMaxSettleIterations,
		log:                 defaultLogger(),
	}
}

// WithMaxSettleIterations overrides the combinational settling iteration
// cap. Exceeding it aborts the cycle with a NonConvergenceError.
func (b SimBuilder) WithMaxSettleIterations(n int) SimBuilder {
	b.maxSettleIterations = n
	return b
}

// WithLogger overrides the logger Sim uses for cycle and fault events.
func (b SimBuilder) WithLogger(log *logrus.Logger) SimBuilder {
	b.log = log
	return b
}

// Build constructs the Sim.
func (b SimBuilder) Build() *Sim {
	rng := rand.New(rand.NewSource(int64(b.seed))) //nolint:gosec // deterministic by design
	s := &Sim{
		rng:                 rng,
		maxSettleIterations: b.maxSettleIterations,
		log:                 b.log,
	}
	s.rngState = rng.Uint64()
	return s
}

func defaultLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	return log
}

// NewSim is sugar for NewSimBuilder(seed).Build(), the common case where
// no settling-cap or logger override is needed.
func NewSim(seed uint64) *Sim {
	return NewSimBuilder(seed).Build()
}

// Cycle advances the simulator by one clock: combinational settling to a
// fixed point, then a single edge phase. It returns a *NonConvergenceError
// (wrapping ErrNonConvergence) if settling exceeds the configured
// iteration cap.
func (s *Sim) Cycle() error {
	s.rngState = s.rng.Uint64()

	dirty := s.allDirty()
	iterations := 0

	for !allEmpty(dirty) {
		iterations++
		if iterations > s.maxSettleIterations {
			fault := &NonConvergenceError{Iterations: iterations - 1, Dirty: dirtyNodeIDs(dirty)}
			s.log.WithFields(logrus.Fields{
				"cycle":      s.cycle,
				"iterations": fault.Iterations,
				"dirty":      len(fault.Dirty),
			}).Warn("settling did not converge")
			return fault
		}

		s.cloneGraphIntoScratch()
		next := s.emptyDirtySets()

		for b, idx := range dirty {
			if idx == nil || idx.None() {
				continue
			}
			for i, ok := idx.NextSet(0); ok; i, ok = idx.NextSet(i + 1) {
				ctx := &Ctx{sim: s, graph: s.graph, id: NodeID{Bucket: b, Index: int(i)}}
				if !s.scratch[b].csimAt(int(i), ctx) {
					continue
				}
				next[b].Set(i)
				for _, addr := range s.scratch[b].portAddressesAt(int(i)) {
					if addr.Kind == AddrWire && addr.Node.Bucket < len(next) {
						next[addr.Node.Bucket].Set(uint(addr.Node.Index))
					}
				}
			}
		}

		s.graph, s.scratch = s.scratch, s.graph
		dirty = next
	}

	s.cycle++

	s.cloneGraphIntoScratch()
	settled := s.graph
	for b := range s.scratch {
		for i := 0; i < s.scratch[b].len(); i++ {
			ctx := &Ctx{sim: s, graph: settled, id: NodeID{Bucket: b, Index: i}}
			s.scratch[b].edgeAt(i, ctx)
		}
	}
	s.graph, s.scratch = s.scratch, s.graph

	s.log.WithFields(logrus.Fields{
		"cycle":      s.cycle,
		"iterations": iterations,
	}).Debug("cycle complete")

	return nil
}

// Cycles runs Cycle n times, stopping early and returning the first
// fault encountered.
func (s *Sim) Cycles(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// CycleCount returns the number of cycles completed so far.
func (s *Sim) CycleCount() uint64 { return s.cycle }

func (s *Sim) allDirty() []*bitset.BitSet {
	sets := make([]*bitset.BitSet, len(s.graph))
	for i, b := range s.graph {
		bs := bitset.New(uint(b.len()))
		for j := uint(0); j < uint(b.len()); j++ {
			bs.Set(j)
		}
		sets[i] = bs
	}
	return sets
}

func (s *Sim) emptyDirtySets() []*bitset.BitSet {
	sets := make([]*bitset.BitSet, len(s.graph))
	for i, b := range s.graph {
		sets[i] = bitset.New(uint(b.len()))
	}
	return sets
}

func (s *Sim) cloneGraphIntoScratch() {
	for len(s.scratch) < len(s.graph) {
		s.scratch = append(s.scratch, nil)
	}
	s.scratch = s.scratch[:len(s.graph)]
	for i, b := range s.graph {
		s.scratch[i] = b.cloneInto(s.scratch[i])
	}
}

func allEmpty(sets []*bitset.BitSet) bool {
	for _, bs := range sets {
		if bs != nil && !bs.None() {
			return false
		}
	}
	return true
}

func dirtyNodeIDs(sets []*bitset.BitSet) []NodeID {
	var ids []NodeID
	for b, bs := range sets {
		if bs == nil {
			continue
		}
		for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
			ids = append(ids, NodeID{Bucket: b, Index: int(i)})
		}
	}
	return ids
}
