package qbell

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

// scriptedBackend returns the same counts, or error, on every run.
type scriptedBackend struct {
	counts Counts
	err    error
	runs   int
}

func (b *scriptedBackend) Name() string {
	return "scripted"
}

func (b *scriptedBackend) Run(ctx context.Context, circuit *Circuit, shots int) (Counts, error) {
	b.runs++
	if b.err != nil {
		return nil, b.err
	}

	counts := make(Counts, len(b.counts))
	for k, v := range b.counts {
		counts[k] = v
	}
	return counts, nil
}

func TestRegistry(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := NewRegistry()

		Convey("It should expose the simulator under both names", func() {
			So(registry.Names(), ShouldResemble, []string{AerSimulator, QasmSimulator})

			backend, err := registry.GetBackend(QasmSimulator)
			So(err, ShouldBeNil)
			So(backend.Name(), ShouldEqual, QasmSimulator)

			_, err = registry.GetBackend(AerSimulator)
			So(err, ShouldBeNil)
		})

		Convey("An unknown name should be unavailable", func() {
			backend, err := registry.GetBackend("ibm_osaka")
			So(backend, ShouldBeNil)
			So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "ibm_osaka")
		})

		Convey("A factory that fails should be unavailable", func() {
			registry.Register("broken", func() (Backend, error) {
				return nil, errors.New("no device")
			})

			_, err := registry.GetBackend("broken")
			So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "no device")
		})

		Convey("A factory that returns nothing should be unavailable", func() {
			registry.Register("empty", func() (Backend, error) {
				return nil, nil
			})

			_, err := registry.GetBackend("empty")
			So(errors.Is(err, ErrBackendUnavailable), ShouldBeTrue)
		})

		Convey("A registered backend should be resolvable", func() {
			fake := &scriptedBackend{counts: Counts{"00": 1}}
			registry.Register("fake", func() (Backend, error) {
				return fake, nil
			})

			backend, err := registry.GetBackend("fake")
			So(err, ShouldBeNil)
			So(backend, ShouldEqual, fake)
		})
	})
}
