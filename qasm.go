package qbell

import (
	"fmt"
	"strings"
)

// QASM renders the circuit as an OpenQASM 2.0 program.
func (c *Circuit) QASM() string {
	var b strings.Builder

	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQubits)
	fmt.Fprintf(&b, "creg c[%d];\n", c.NumClbits)

	for _, gate := range c.Gates {
		operands := make([]string, len(gate.Qubits))
		for i, q := range gate.Qubits {
			operands[i] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(&b, "%s %s;\n", gate.Kind, strings.Join(operands, ","))
	}

	for _, m := range c.Measurements {
		fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", m.Qubit, m.Bit)
	}

	return b.String()
}
