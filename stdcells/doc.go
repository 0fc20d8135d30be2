// Package stdcells implements a discrete-event, cycle-accurate simulator
// for synchronous dataflow circuits built from ready/valid-handshaked
// components connected by point-to-point wires.
//
// A Sim owns a heterogeneous graph of nodes, grouped into per-concrete-type
// buckets. Each call to Cycle runs two phases: a combinational settling
// loop that re-evaluates dirty nodes to a fixed point, and a single edge
// phase that commits sequential state transitions. See the package-level
// documentation on Sim and Node for the contract cells must obey.
package stdcells
