package qbell

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// sampleBatch is how many shots are drawn between context checks.
const sampleBatch = 256

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSeed makes sampling reproducible. A zero seed keeps sampling random.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.seed = seed
	}
}

/*
Simulator is a noiseless state-vector backend. It evolves the register
through every gate, then samples the final distribution once per shot
and maps each sampled basis state onto the classical register through the
circuit's measurement mapping.
*/
type Simulator struct {
	seed uint64
}

func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Simulator) Name() string {
	return QasmSimulator
}

func (s *Simulator) Run(ctx context.Context, circuit *Circuit, shots int) (Counts, error) {
	if err := s.validate(circuit, shots); err != nil {
		return nil, errors.Wrap(ErrExecutionFailure, err.Error())
	}

	sv := NewStateVector(circuit.NumQubits)

	for _, gate := range circuit.Gates {
		switch gate.Kind {
		case GateHadamard:
			sv.ApplyHadamard(gate.Qubits[0])
		case GateX:
			sv.ApplyX(gate.Qubits[0])
		case GateCNOT:
			sv.ApplyCNOT(gate.Qubits[0], gate.Qubits[1])
		}
	}

	probs := sv.Probabilities()
	rng := s.rng()
	counts := make(Counts)

	// Sampled outcomes are cached per basis index; the register is tiny.
	outcomes := make(map[int]string, len(probs))

	for shot := 0; shot < shots; shot++ {
		if shot%sampleBatch == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(ErrExecutionFailure, "cancelled after %d shots: %v", shot, err)
			}
		}

		index := Sample(rng, probs)

		key, ok := outcomes[index]
		if !ok {
			key = s.classical(circuit, index)
			outcomes[index] = key
		}

		counts[key]++
	}

	log.Debug("simulation complete", "backend", s.Name(), "shots", shots, "outcomes", len(counts))

	return counts, nil
}

// classical projects a basis-state index onto the classical register.
func (s *Simulator) classical(circuit *Circuit, index int) string {
	var register uint64

	for _, m := range circuit.Measurements {
		if index&(1<<m.Qubit) != 0 {
			register |= 1 << uint(m.Bit)
		} else {
			register &^= 1 << uint(m.Bit)
		}
	}

	return bitstring(register, circuit.NumClbits)
}

func (s *Simulator) rng() *rand.Rand {
	if s.seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(s.seed, s.seed))
}

func (s *Simulator) validate(circuit *Circuit, shots int) error {
	if circuit == nil {
		return errors.New("nil circuit")
	}

	if shots <= 0 {
		return errors.Errorf("shots must be positive, got %d", shots)
	}

	if circuit.NumQubits <= 0 || circuit.NumQubits > 16 {
		return errors.Errorf("unsupported register of %d qubits", circuit.NumQubits)
	}

	if circuit.NumClbits < 0 || circuit.NumClbits > 64 {
		return errors.Errorf("unsupported register of %d classical bits", circuit.NumClbits)
	}

	for i, gate := range circuit.Gates {
		want := 1
		switch gate.Kind {
		case GateHadamard, GateX:
		case GateCNOT:
			want = 2
		default:
			return errors.Errorf("gate %d: unsupported gate %q", i, gate.Kind)
		}

		if len(gate.Qubits) != want {
			return errors.Errorf("gate %d: %s takes %d qubits, got %d", i, gate.Kind, want, len(gate.Qubits))
		}

		for _, q := range gate.Qubits {
			if q < 0 || q >= circuit.NumQubits {
				return errors.Errorf("gate %d: qubit %d out of range", i, q)
			}
		}

		if gate.Kind == GateCNOT && gate.Qubits[0] == gate.Qubits[1] {
			return errors.Errorf("gate %d: cx control equals target", i)
		}
	}

	for _, m := range circuit.Measurements {
		if m.Qubit < 0 || m.Qubit >= circuit.NumQubits || m.Bit < 0 || m.Bit >= circuit.NumClbits {
			return errors.Errorf("measurement q[%d] -> c[%d] out of range", m.Qubit, m.Bit)
		}
	}

	return nil
}
