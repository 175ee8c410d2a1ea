package qbell

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBellCircuit(t *testing.T) {
	Convey("Given the Bell circuit", t, func() {
		qc := BellCircuit()

		Convey("It should have two qubits and two classical bits", func() {
			So(qc.NumQubits, ShouldEqual, 2)
			So(qc.NumClbits, ShouldEqual, 2)
		})

		Convey("It should apply H on q0 then CX from q0 to q1", func() {
			So(qc.Gates, ShouldResemble, []Gate{
				{Kind: GateHadamard, Qubits: []int{0}},
				{Kind: GateCNOT, Qubits: []int{0, 1}},
			})
		})

		Convey("It should measure each qubit onto the matching bit", func() {
			So(qc.Measurements, ShouldResemble, []Measurement{
				{Qubit: 0, Bit: 0},
				{Qubit: 1, Bit: 1},
			})
		})

		Convey("It should be built fresh on every call", func() {
			other := BellCircuit()
			other.Gates[0].Kind = GateX
			So(qc.Gates[0].Kind, ShouldEqual, GateHadamard)
		})
	})
}

func TestCircuitValidation(t *testing.T) {
	Convey("Given an empty two-qubit circuit", t, func() {
		qc := NewCircuit(2, 2)

		Convey("Gates outside the register should be rejected", func() {
			So(qc.H(2), ShouldNotBeNil)
			So(qc.X(-1), ShouldNotBeNil)
			So(qc.CX(0, 5), ShouldNotBeNil)
			So(qc.Gates, ShouldBeEmpty)
		})

		Convey("A CX onto its own control should be rejected", func() {
			So(qc.CX(1, 1), ShouldNotBeNil)
		})

		Convey("Measurements need matching, in-range operands", func() {
			So(qc.Measure([]int{0, 1}, []int{0}), ShouldNotBeNil)
			So(qc.Measure([]int{0}, []int{2}), ShouldNotBeNil)
			So(qc.Measure([]int{1}, []int{0}), ShouldBeNil)
			So(qc.Measurements, ShouldResemble, []Measurement{{Qubit: 1, Bit: 0}})
		})
	})
}

func TestQASM(t *testing.T) {
	Convey("Given the Bell circuit", t, func() {
		Convey("It should render as OpenQASM 2.0", func() {
			So(BellCircuit().QASM(), ShouldEqual, `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`)
		})
	})
}
