package qbell

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register.
Qubit k corresponds to bit k of the amplitude index, so qubit 0 is the
least significant bit.
*/
type StateVector struct {
	NumQubits int
	Vector    []complex128
}

// NewStateVector returns a register prepared in |0...0⟩.
func NewStateVector(numQubits int) *StateVector {
	vector := make([]complex128, 1<<numQubits)
	vector[0] = 1

	return &StateVector{
		NumQubits: numQubits,
		Vector:    vector,
	}
}

func (sv *StateVector) ApplyHadamard(q int) {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	h := complex(1/math.Sqrt2, 0)
	bit := 1 << q

	for i := range sv.Vector {
		if i&bit != 0 {
			continue
		}

		j := i | bit
		alpha, beta := sv.Vector[i], sv.Vector[j]
		sv.Vector[i] = h * (alpha + beta)
		sv.Vector[j] = h * (alpha - beta)
	}
}

func (sv *StateVector) ApplyX(q int) {
	bit := 1 << q

	for i := range sv.Vector {
		if i&bit == 0 {
			j := i | bit
			sv.Vector[i], sv.Vector[j] = sv.Vector[j], sv.Vector[i]
		}
	}
}

// ApplyCNOT flips target on every basis state where control is 1.
func (sv *StateVector) ApplyCNOT(control, target int) {
	cbit := 1 << control
	tbit := 1 << target

	for i := range sv.Vector {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			sv.Vector[i], sv.Vector[j] = sv.Vector[j], sv.Vector[i]
		}
	}
}

// Probabilities returns |amplitude|² for every basis state, normalized.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Vector))
	total := 0.0

	for i, amplitude := range sv.Vector {
		prob := cmplx.Abs(amplitude)
		prob *= prob
		probs[i] = prob
		total += prob
	}

	if total == 0 {
		return probs
	}

	for i := range probs {
		probs[i] /= total
	}

	return probs
}

/*
Sample draws one basis-state index according to probs, which must be
normalized. It does not collapse the register; the simulator samples the
final distribution once per shot instead.
*/
func Sample(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	cumulative := 0.0

	for i, prob := range probs {
		cumulative += prob
		if r < cumulative {
			return i
		}
	}

	// Rounding can leave cumulative a hair under 1.
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}

	return 0
}
