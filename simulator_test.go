package qbell

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulator(t *testing.T) {
	Convey("Given the state-vector simulator", t, func() {
		sim := NewSimulator()
		ctx := context.Background()

		Convey("Running the Bell circuit", func() {
			counts, err := sim.Run(ctx, BellCircuit(), Shots)
			So(err, ShouldBeNil)
			t.Logf("counts: %s", spew.Sdump(counts))

			Convey("The counts should sum to the shot count", func() {
				So(counts.Total(), ShouldEqual, Shots)
			})

			Convey("Only the Bell outcomes should appear", func() {
				for outcome := range counts {
					So(outcome, ShouldBeIn, "00", "11")
				}
				So(counts.Get("00")+counts.Get("11"), ShouldEqual, Shots)
			})

			Convey("Both outcomes should show up over 1024 shots", func() {
				So(counts.Get("00"), ShouldBeGreaterThan, 0)
				So(counts.Get("11"), ShouldBeGreaterThan, 0)
			})
		})

		Convey("Two runs should each satisfy the invariants independently", func() {
			first, err := sim.Run(ctx, BellCircuit(), Shots)
			So(err, ShouldBeNil)
			second, err := sim.Run(ctx, BellCircuit(), Shots)
			So(err, ShouldBeNil)

			for _, counts := range []Counts{first, second} {
				So(counts.Total(), ShouldEqual, Shots)
				So(counts.Get("00")+counts.Get("11"), ShouldEqual, Shots)
			}
		})

		Convey("The measurement mapping should decide the bit order", func() {
			qc := NewCircuit(2, 2)
			So(qc.X(0), ShouldBeNil)
			So(qc.Measure([]int{0, 1}, []int{0, 1}), ShouldBeNil)

			counts, err := sim.Run(ctx, qc, 10)
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, Counts{"01": 10})

			swapped := NewCircuit(2, 2)
			So(swapped.X(0), ShouldBeNil)
			So(swapped.Measure([]int{0, 1}, []int{1, 0}), ShouldBeNil)

			counts, err = sim.Run(ctx, swapped, 10)
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, Counts{"10": 10})
		})

		Convey("Invalid input should be an execution failure", func() {
			_, err := sim.Run(ctx, BellCircuit(), 0)
			So(errors.Is(err, ErrExecutionFailure), ShouldBeTrue)

			_, err = sim.Run(ctx, nil, Shots)
			So(errors.Is(err, ErrExecutionFailure), ShouldBeTrue)

			bad := BellCircuit()
			bad.Gates = append(bad.Gates, Gate{Kind: "ccx", Qubits: []int{0, 1}})
			_, err = sim.Run(ctx, bad, Shots)
			So(errors.Is(err, ErrExecutionFailure), ShouldBeTrue)

			outOfRange := BellCircuit()
			outOfRange.Gates = append(outOfRange.Gates, Gate{Kind: GateHadamard, Qubits: []int{3}})
			_, err = sim.Run(ctx, outOfRange, Shots)
			So(errors.Is(err, ErrExecutionFailure), ShouldBeTrue)
		})

		Convey("A cancelled context should stop the run", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			counts, err := sim.Run(cancelled, BellCircuit(), Shots)
			So(counts, ShouldBeNil)
			So(errors.Is(err, ErrExecutionFailure), ShouldBeTrue)
		})
	})

	Convey("Given two seeded simulators", t, func() {
		a := NewSimulator(WithSeed(42))
		b := NewSimulator(WithSeed(42))

		Convey("They should produce identical counts", func() {
			first, err := a.Run(context.Background(), BellCircuit(), Shots)
			So(err, ShouldBeNil)
			second, err := b.Run(context.Background(), BellCircuit(), Shots)
			So(err, ShouldBeNil)

			So(first, ShouldResemble, second)
		})
	})
}
