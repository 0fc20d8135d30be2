package stdcells

// Src emits a fixed, ordered sequence of values one at a time, advancing
// only when its peer asserts ready. Once every value has been offered
// and accepted, Src.Req.Valid stays false forever.
type Src[T comparable] struct {
	buffer []T
	index  int

	Req ReqPort[T]
}

// NewSrc returns a Src that will offer the given values, in order, on
// its single producer port (local port 0). The slice is copied so the
// caller's backing array is never aliased.
func NewSrc[T comparable](values []T) *Src[T] {
	return &Src[T]{buffer: append([]T(nil), values...)}
}

// Len reports the total number of values this Src offers, whether or not
// they have been accepted yet.
func (s *Src[T]) Len() int { return len(s.buffer) }

// Index reports how many values have been accepted by the peer so far.
func (s *Src[T]) Index() int { return s.index }

// PortAddresses implements Node.
func (s *Src[T]) PortAddresses() []PortAddress {
	return []PortAddress{s.Req.Peer}
}

// GetPort implements Node. Src has a single port at local index 0.
func (s *Src[T]) GetPort(port int) any {
	if port != 0 {
		panicPortOutOfRange("Src", port)
	}
	return s.Req
}

// CSim implements Node.
func (s *Src[T]) CSim(_ *Ctx) bool {
	valid := s.index < len(s.buffer)
	var data T
	if valid {
		data = s.buffer[s.index]
	}
	changed := valid != s.Req.Valid || data != s.Req.Data
	s.Req.Valid = valid
	s.Req.Data = data
	return changed
}

// Edge implements Node: if the last settled state was valid and the peer
// was ready, advance to the next value.
func (s *Src[T]) Edge(ctx *Ctx) {
	rsp, ok := PeerPort[RspPort[T]](ctx, s.Req.Peer)
	if !ok {
		return
	}
	if s.Req.Valid && rsp.Ready {
		s.index++
	}
}

// Clone implements Node.
func (s *Src[T]) Clone() Node {
	c := *s
	c.buffer = append([]T(nil), s.buffer...)
	return &c
}
