// MockNode is written by hand in the shape mockgen emits for
// github.com/sarchlab/hlvm/stdcells (interfaces: Node); this file also
// holds the kernel specs that use it.

package stdcells_test

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	"github.com/sarchlab/hlvm/stdcells"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockNode is a mock of the Node interface.
type MockNode struct {
	ctrl     *gomock.Controller
	recorder *MockNodeMockRecorder
}

// MockNodeMockRecorder is the mock recorder for MockNode.
type MockNodeMockRecorder struct {
	mock *MockNode
}

// NewMockNode creates a new mock instance.
func NewMockNode(ctrl *gomock.Controller) *MockNode {
	mock := &MockNode{ctrl: ctrl}
	mock.recorder = &MockNodeMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNode) EXPECT() *MockNodeMockRecorder {
	return m.recorder
}

// PortAddresses mocks base method.
func (m *MockNode) PortAddresses() []stdcells.PortAddress {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PortAddresses")
	ret0, _ := ret[0].([]stdcells.PortAddress)
	return ret0
}

// PortAddresses indicates an expected call of PortAddresses.
func (mr *MockNodeMockRecorder) PortAddresses() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PortAddresses", reflect.TypeOf((*MockNode)(nil).PortAddresses))
}

// GetPort mocks base method.
func (m *MockNode) GetPort(localPort int) any {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPort", localPort)
	ret0, _ := ret[0].(any)
	return ret0
}

// GetPort indicates an expected call of GetPort.
func (mr *MockNodeMockRecorder) GetPort(localPort interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPort", reflect.TypeOf((*MockNode)(nil).GetPort), localPort)
}

// CSim mocks base method.
func (m *MockNode) CSim(ctx *stdcells.Ctx) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CSim", ctx)
	ret0, _ := ret[0].(bool)
	return ret0
}

// CSim indicates an expected call of CSim.
func (mr *MockNodeMockRecorder) CSim(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CSim", reflect.TypeOf((*MockNode)(nil).CSim), ctx)
}

// Edge mocks base method.
func (m *MockNode) Edge(ctx *stdcells.Ctx) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Edge", ctx)
}

// Edge indicates an expected call of Edge.
func (mr *MockNodeMockRecorder) Edge(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Edge", reflect.TypeOf((*MockNode)(nil).Edge), ctx)
}

// Clone mocks base method.
func (m *MockNode) Clone() stdcells.Node {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Clone")
	ret0, _ := ret[0].(stdcells.Node)
	return ret0
}

// Clone indicates an expected call of Clone.
func (mr *MockNodeMockRecorder) Clone() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Clone", reflect.TypeOf((*MockNode)(nil).Clone))
}

// MockNodeAlt gives a mocked Node a second concrete Go type, so a test can
// put two mocks in distinct store buckets and exercise cross-bucket dirty
// propagation.
type MockNodeAlt struct {
	*MockNode
}

func NewMockNodeAlt(ctrl *gomock.Controller) *MockNodeAlt {
	return &MockNodeAlt{MockNode: NewMockNode(ctrl)}
}

var _ = Describe("Sim.Cycle kernel behavior", func() {
	It("calls CSim once and Edge once for a node with no fan-out", func() {
		ctrl := gomock.NewController(GinkgoT())
		m := NewMockNode(ctrl)
		m.EXPECT().PortAddresses().Return(nil).AnyTimes()
		m.EXPECT().Clone().DoAndReturn(func() stdcells.Node { return m }).AnyTimes()
		m.EXPECT().CSim(gomock.Any()).Return(false).Times(1)
		m.EXPECT().Edge(gomock.Any()).Times(1)

		sim := stdcells.NewSim(1)
		stdcells.AddNode(sim, m)

		Expect(sim.Cycle()).To(Succeed())
	})

	It("re-evaluates a peer in a different bucket the iteration after it was marked dirty", func() {
		ctrl := gomock.NewController(GinkgoT())
		a := NewMockNode(ctrl)
		b := NewMockNodeAlt(ctrl)

		sim := stdcells.NewSim(1)
		aID := stdcells.AddNode(sim, a)
		bID := stdcells.AddNode(sim, b)
		Expect(aID.Bucket).NotTo(Equal(bID.Bucket))

		a.EXPECT().PortAddresses().Return([]stdcells.PortAddress{bID.Endpoint(0)}).AnyTimes()
		a.EXPECT().Clone().DoAndReturn(func() stdcells.Node { return a }).AnyTimes()
		a.EXPECT().Edge(gomock.Any()).AnyTimes()

		b.EXPECT().PortAddresses().Return(nil).AnyTimes()
		b.EXPECT().Clone().DoAndReturn(func() stdcells.Node { return b }).AnyTimes()
		b.EXPECT().Edge(gomock.Any()).AnyTimes()

		// a reports a change on its first evaluation only; b never changes on
		// its own, but must still be re-evaluated the settling iteration
		// after a marks it.
		aCalls := 0
		a.EXPECT().CSim(gomock.Any()).DoAndReturn(func(*stdcells.Ctx) bool {
			aCalls++
			return aCalls == 1
		}).AnyTimes()

		bCalls := 0
		b.EXPECT().CSim(gomock.Any()).DoAndReturn(func(*stdcells.Ctx) bool {
			bCalls++
			return false
		}).AnyTimes()

		Expect(sim.Cycle()).To(Succeed())

		Expect(aCalls).To(Equal(2))
		Expect(bCalls).To(Equal(2), "b must be re-evaluated once after a's dirty fan-out marks it, even in a different bucket")
	})
})
