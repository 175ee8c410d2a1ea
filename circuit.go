package qbell

import (
	"fmt"
)

// GateKind names a gate the simulator knows how to apply.
type GateKind string

const (
	GateHadamard GateKind = "h"
	GateX        GateKind = "x"
	GateCNOT     GateKind = "cx"
)

// Gate is a single operation in a circuit's ordered gate sequence.
type Gate struct {
	Kind   GateKind
	Qubits []int
}

// Measurement maps a qubit onto a classical bit.
type Measurement struct {
	Qubit int
	Bit   int
}

/*
Circuit describes a quantum circuit as a fixed register of qubits and
classical bits, an ordered list of gates, and a measurement mapping.
A Circuit is built once and not mutated after it is handed to a Backend.
*/
type Circuit struct {
	NumQubits    int
	NumClbits    int
	Gates        []Gate
	Measurements []Measurement
}

// NewCircuit creates an empty circuit over the given registers.
func NewCircuit(numQubits, numClbits int) *Circuit {
	return &Circuit{
		NumQubits:    numQubits,
		NumClbits:    numClbits,
		Gates:        make([]Gate, 0),
		Measurements: make([]Measurement, 0),
	}
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}

	c.Gates = append(c.Gates, Gate{Kind: GateHadamard, Qubits: []int{q}})
	return nil
}

// X appends a Pauli-X gate on qubit q.
func (c *Circuit) X(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}

	c.Gates = append(c.Gates, Gate{Kind: GateX, Qubits: []int{q}})
	return nil
}

// CX appends a controlled-NOT with the given control and target.
func (c *Circuit) CX(control, target int) error {
	if err := c.checkQubit(control); err != nil {
		return err
	}

	if err := c.checkQubit(target); err != nil {
		return err
	}

	if control == target {
		return fmt.Errorf("cx control and target must differ, both are %d", control)
	}

	c.Gates = append(c.Gates, Gate{Kind: GateCNOT, Qubits: []int{control, target}})
	return nil
}

// Measure maps qubits[i] onto bits[i].
func (c *Circuit) Measure(qubits, bits []int) error {
	if len(qubits) != len(bits) {
		return fmt.Errorf("measure needs as many bits as qubits, got %d and %d", len(qubits), len(bits))
	}

	for i, q := range qubits {
		if err := c.checkQubit(q); err != nil {
			return err
		}

		if bits[i] < 0 || bits[i] >= c.NumClbits {
			return fmt.Errorf("classical bit %d out of range [0,%d)", bits[i], c.NumClbits)
		}

		c.Measurements = append(c.Measurements, Measurement{Qubit: q, Bit: bits[i]})
	}

	return nil
}

func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= c.NumQubits {
		return fmt.Errorf("qubit %d out of range [0,%d)", q, c.NumQubits)
	}
	return nil
}

/*
BellCircuit builds the two-qubit circuit that prepares the Bell state
(|00⟩ + |11⟩)/√2: a Hadamard on qubit 0, a CNOT from 0 to 1, and both
qubits measured onto the matching classical bits.
*/
func BellCircuit() *Circuit {
	qc := NewCircuit(2, 2)

	// The indices are constants inside the register, so none of these can fail.
	_ = qc.H(0)
	_ = qc.CX(0, 1)
	_ = qc.Measure([]int{0, 1}, []int{0, 1})

	return qc
}
