package stdcells

// Fork broadcasts a single upstream item to every one of its outputs,
// one item at a time: each output must transfer the current item exactly
// once before the fork acknowledges (accepts) the next upstream item.
//
// This resolves the broadcast-with-individual-ack design left open by
// the original draft, which defined the combinational half but left
// Edge unimplemented.
type Fork[T comparable] struct {
	// waiting[i] is true while output i has not yet transferred the item
	// currently being broadcast. A fresh Fork, or one between rounds,
	// has every entry true.
	waiting []bool

	Rsp RspPort[T]
	Req []ReqPort[T]
}

// NewFork returns a Fork with the given number of output ports, all
// unconnected.
func NewFork[T comparable](numOutputs int) *Fork[T] {
	waiting := make([]bool, numOutputs)
	for i := range waiting {
		waiting[i] = true
	}
	return &Fork[T]{
		waiting: waiting,
		Req:     make([]ReqPort[T], numOutputs),
	}
}

// NumOutputs reports how many producer ports this fork has.
func (f *Fork[T]) NumOutputs() int { return len(f.Req) }

// PortAddresses implements Node. Port 0 is Rsp; ports 1..N are Req[0..N).
func (f *Fork[T]) PortAddresses() []PortAddress {
	addrs := make([]PortAddress, 0, len(f.Req)+1)
	addrs = append(addrs, f.Rsp.Peer)
	for _, r := range f.Req {
		addrs = append(addrs, r.Peer)
	}
	return addrs
}

// GetPort implements Node.
func (f *Fork[T]) GetPort(port int) any {
	if port == 0 {
		return f.Rsp
	}
	i := port - 1
	if i < 0 || i >= len(f.Req) {
		panicPortOutOfRange("Fork", port)
	}
	return f.Req[i]
}

// CSim implements Node.
func (f *Fork[T]) CSim(ctx *Ctx) bool {
	prevRsp := f.Rsp
	prevReq := append([]ReqPort[T](nil), f.Req...)

	upstream, _ := PeerPort[ReqPort[T]](ctx, f.Rsp.Peer)

	ready := true
	for i := range f.Req {
		f.Req[i].Valid = f.waiting[i] && upstream.Valid
		var data T
		if f.Req[i].Valid {
			data = upstream.Data
		}
		f.Req[i].Data = data
		if f.waiting[i] {
			peer, ok := PeerPort[RspPort[T]](ctx, f.Req[i].Peer)
			if !ok || !peer.Ready {
				ready = false
			}
		}
	}
	f.Rsp.Ready = ready

	if f.Rsp != prevRsp {
		return true
	}
	for i := range f.Req {
		if f.Req[i] != prevReq[i] {
			return true
		}
	}
	return false
}

// Edge implements Node: marks every output that transferred this cycle
// as no longer waiting, then, once every output has transferred, resets
// the whole round so the next upstream item can be accepted.
func (f *Fork[T]) Edge(ctx *Ctx) {
	anyWaiting := false
	for i := range f.Req {
		if f.waiting[i] {
			peer, ok := PeerPort[RspPort[T]](ctx, f.Req[i].Peer)
			if ok && f.Req[i].Valid && peer.Ready {
				f.waiting[i] = false
			}
		}
		if f.waiting[i] {
			anyWaiting = true
		}
	}
	if !anyWaiting {
		for i := range f.waiting {
			f.waiting[i] = true
		}
	}
}

// Clone implements Node.
func (f *Fork[T]) Clone() Node {
	c := *f
	c.waiting = append([]bool(nil), f.waiting...)
	c.Req = append([]ReqPort[T](nil), f.Req...)
	return &c
}
