package stdcells

// AddrKind distinguishes a live wire endpoint from the unconnected sentinel.
type AddrKind int

const (
	// AddrUnconnected marks a port that is not wired to any peer. A
	// transfer can never occur on an unconnected endpoint.
	AddrUnconnected AddrKind = iota
	// AddrWire marks a port that targets a concrete peer endpoint.
	AddrWire
)

// NodeID names a node's position in the graph: the bucket holding every
// node of its concrete type, and its index within that bucket. NodeIDs are
// stable for the lifetime of the Sim that produced them; nodes are never
// removed or renumbered.
type NodeID struct {
	Bucket int
	Index  int
}

// Endpoint builds the PortAddress that targets local port localPort on
// this node. Circuit assemblers use it to wire one cell's port record to
// another.
func (id NodeID) Endpoint(localPort int) PortAddress {
	return PortAddress{Kind: AddrWire, Node: id, Port: localPort}
}

// PortAddress names the endpoint of a directed wire: either a concrete
// (node, port) pair, or the Unconnected sentinel. The zero value is
// Unconnected.
type PortAddress struct {
	Kind AddrKind
	Node NodeID
	Port int
}

// Unconnected is the sentinel PortAddress meaning "no peer". It is the
// zero value of PortAddress, so a ReqPort or RspPort that is never wired
// is unconnected by default.
var Unconnected = PortAddress{Kind: AddrUnconnected}

// ReqPort is the producer side of a ready/valid wire. It carries Valid
// and Data; Peer names the RspPort on the other end. T must be comparable
// so the kernel can detect, after an evaluation, whether this port's
// observable state actually changed.
//
// Data is always written, even when Valid is false, defaulting to T's
// zero value — consumers must gate on Valid, never infer anything from
// Data alone.
type ReqPort[T comparable] struct {
	Valid bool
	Data  T
	Peer  PortAddress
}

// RspPort is the consumer side of a ready/valid wire. It carries Ready;
// Peer names the ReqPort on the other end. The type parameter pins which
// ReqPort[T] this RspPort may legally pair with; mismatched pairings are
// caught at the peer boundary by PeerPort's type-checked downcast, not by
// the Go compiler, since wiring happens through the untyped GetPort
// escape hatch.
type RspPort[T any] struct {
	Ready bool
	Peer  PortAddress
}
