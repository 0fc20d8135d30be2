package stdcells

import "reflect"

// bucket hides the concrete node type behind a uniform per-type-vector
// interface, so the kernel can drive a heterogeneous graph without
// hashing or reflection on the hot path. Each bucket holds every node
// that was registered with the same concrete Node type, in a dense,
// index-addressable slice.
type bucket interface {
	len() int
	cloneInto(dst bucket) bucket
	portAt(index, port int) any
	nodeAt(index int) any
	portAddressesAt(index int) []PortAddress
	csimAt(index int, ctx *Ctx) bool
	edgeAt(index int, ctx *Ctx)
	concreteType() reflect.Type
}

// typedBucket is the dense per-type vector backing one bucket. T is
// always a pointer-to-struct Node implementation; nodes are mutated in
// place through that pointer.
type typedBucket[T Node] struct {
	items []T
	typ   reflect.Type
}

func (b *typedBucket[T]) len() int { return len(b.items) }

func (b *typedBucket[T]) portAt(index, port int) any {
	return b.items[index].GetPort(port)
}

func (b *typedBucket[T]) nodeAt(index int) any {
	return b.items[index]
}

func (b *typedBucket[T]) portAddressesAt(index int) []PortAddress {
	return b.items[index].PortAddresses()
}

func (b *typedBucket[T]) csimAt(index int, ctx *Ctx) bool {
	return b.items[index].CSim(ctx)
}

func (b *typedBucket[T]) edgeAt(index int, ctx *Ctx) {
	b.items[index].Edge(ctx)
}

func (b *typedBucket[T]) concreteType() reflect.Type { return b.typ }

// cloneInto deep-clones every item in b into dst, reusing dst's backing
// array when dst is already a *typedBucket[T] with enough capacity. This
// is the "reuse two alternating snapshot buffers" optimization: the
// kernel calls cloneInto once per settling iteration and once per edge
// phase, alternating source and destination rather than allocating a
// fresh graph every time.
func (b *typedBucket[T]) cloneInto(dst bucket) bucket {
	d, ok := dst.(*typedBucket[T])
	if !ok || d == nil {
		d = &typedBucket[T]{typ: b.typ}
	}
	if cap(d.items) < len(b.items) {
		d.items = make([]T, len(b.items))
	} else {
		d.items = d.items[:len(b.items)]
	}
	for i, n := range b.items {
		d.items[i] = n.Clone().(T) //nolint:forcetypeassert // Clone always returns the same concrete type
	}
	return d
}

// AddNode registers a node of concrete type T, finding the bucket for T
// or creating a fresh one at the end of the graph, and returns the
// stable NodeID the caller uses to wire peers and look the node back up.
func AddNode[T Node](s *Sim, n T) NodeID {
	t := reflect.TypeOf(n)
	for i, b := range s.graph {
		if tb, ok := b.(*typedBucket[T]); ok {
			tb.items = append(tb.items, n)
			return NodeID{Bucket: i, Index: len(tb.items) - 1}
		}
	}
	nb := &typedBucket[T]{items: []T{n}, typ: t}
	s.graph = append(s.graph, nb)
	return NodeID{Bucket: len(s.graph) - 1, Index: 0}
}

// GetNode returns the node at id, type-checked against T. It returns
// (zero, false) rather than panicking when id is out of range or the
// bucket's concrete type is not T.
func GetNode[T Node](s *Sim, id NodeID) (T, bool) {
	var zero T
	if id.Bucket < 0 || id.Bucket >= len(s.graph) {
		return zero, false
	}
	tb, ok := s.graph[id.Bucket].(*typedBucket[T])
	if !ok {
		return zero, false
	}
	if id.Index < 0 || id.Index >= len(tb.items) {
		return zero, false
	}
	return tb.items[id.Index], true
}

// SetNode overwrites the node at id with n, type-checked against T. It
// reports whether the write happened.
func SetNode[T Node](s *Sim, id NodeID, n T) bool {
	if id.Bucket < 0 || id.Bucket >= len(s.graph) {
		return false
	}
	tb, ok := s.graph[id.Bucket].(*typedBucket[T])
	if !ok {
		return false
	}
	if id.Index < 0 || id.Index >= len(tb.items) {
		return false
	}
	tb.items[id.Index] = n
	return true
}
