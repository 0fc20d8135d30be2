package stdcells

import "math/rand"

// Node is the contract every cell implements. Implementations should use
// pointer receivers: the kernel stores nodes as the concrete pointer type
// they were registered with, and mutates them in place during CSim and
// Edge.
//
// Contractual rules for the settling algorithm in Sim.Cycle to terminate:
//
//  1. Monotonicity within a cycle: across repeated CSim evaluations in one
//     cycle, a node's outputs are a deterministic function of its inputs.
//     Unchanged inputs must yield unchanged outputs.
//  2. No edge effects from CSim: CSim may read peer ports and mutate only
//     its own port records; it must never touch state that survives past
//     the cycle (buffers, counters, ...).
//  3. Edge effects only in Edge: sequential state updates happen
//     exclusively in Edge, using the settled values of peer ports.
type Node interface {
	// PortAddresses returns the Peer field of every port this node owns,
	// in the same order as GetPort expects local indices. The kernel
	// uses it to compute fan-out for dirty propagation.
	PortAddresses() []PortAddress

	// GetPort returns the port record at the given local index. The
	// caller downcasts the result to the expected ReqPort[T] or
	// RspPort[T]. An out-of-range localPort is a programming error and
	// implementations should panic.
	GetPort(localPort int) any

	// CSim performs one combinational evaluation and reports whether any
	// observable port field changed relative to the start of this
	// settling iteration.
	CSim(ctx *Ctx) bool

	// Edge applies this node's sequential state transition for the
	// cycle that just settled.
	Edge(ctx *Ctx)

	// Clone returns a deep copy of this node, independent of any slice
	// or map the original holds. The kernel clones the whole graph once
	// per settling iteration and once per edge phase to give every node
	// a consistent, isolated view of its peers.
	Clone() Node
}

// Ctx is the per-node, per-phase context passed to CSim and Edge. It
// exposes the node's own pre-phase snapshot, type-checked reads of peer
// ports, the current cycle number, and a seeded deterministic generator.
type Ctx struct {
	sim   *Sim
	graph []bucket
	id    NodeID
}

// Cycle returns the simulator's monotonically increasing cycle counter.
// During CSim it equals the cycle currently settling (about to
// complete); during Edge it equals the cycle that just completed.
func (c *Ctx) Cycle() uint64 {
	return c.sim.cycle
}

// PreviousState returns this node's value as of the start of the current
// phase (the pre-snapshot version), independent of any mutation CSim or
// Edge has made so far this phase. Callers downcast to their own
// concrete node type.
func (c *Ctx) PreviousState() any {
	return c.graph[c.id.Bucket].nodeAt(c.id.Index)
}

// Rand returns a PRNG seeded deterministically from this node's identity
// and the cycle's shared rng_state word. Two nodes never share a stream,
// and the same (bucket, index, rng_state) triple always reproduces the
// same stream.
func (c *Ctx) Rand() *rand.Rand {
	salt := uint64(c.id.Bucket)<<32 ^ uint64(uint32(c.id.Index))
	seed := salt ^ c.sim.rngState
	return rand.New(rand.NewSource(int64(seed))) //nolint:gosec // deterministic by design
}

// PeerPort performs a type-checked read of the peer port record named by
// addr, as observed through ctx's pre-phase graph snapshot. It returns
// (zero, false) when addr is Unconnected or when the peer's concrete
// port record is not a P — both cases are treated identically by cells:
// no transfer is possible.
func PeerPort[P any](ctx *Ctx, addr PortAddress) (P, bool) {
	var zero P
	if addr.Kind != AddrWire {
		return zero, false
	}
	if addr.Node.Bucket < 0 || addr.Node.Bucket >= len(ctx.graph) {
		return zero, false
	}
	raw := ctx.graph[addr.Node.Bucket].portAt(addr.Node.Index, addr.Port)
	p, ok := raw.(P)
	if !ok {
		return zero, false
	}
	return p, true
}
