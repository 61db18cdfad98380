package grover

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOptimalIterations(t *testing.T) {
	Convey("Given register sizes and marked counts", t, func() {
		cases := []struct {
			size, marked, want int
		}{
			{2, 1, 1},
			{4, 1, 2},
			{8, 1, 2},
			{16, 1, 3},
			{64, 1, 6},
			{1024, 1, 25},
			{8, 2, 2},
			{8, 7, 1},
		}

		for _, tc := range cases {
			got, err := OptimalIterations(tc.size, tc.marked)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		Convey("The result should be deterministic", func() {
			a, _ := OptimalIterations(256, 3)
			b, _ := OptimalIterations(256, 3)
			So(a, ShouldEqual, b)
		})

		Convey("Degenerate marked counts should fail", func() {
			_, err := OptimalIterations(8, 0)
			So(errors.Is(err, ErrNoMarkedItem), ShouldBeTrue)

			_, err = OptimalIterations(8, 8)
			So(errors.Is(err, ErrAllItemsMarked), ShouldBeTrue)
		})
	})
}

func TestSuccessProbability(t *testing.T) {
	Convey("Given the closed form", t, func() {
		So(SuccessProbability(4, 1, 1), ShouldAlmostEqual, 1, 1e-12)
		So(SuccessProbability(8, 1, 2), ShouldAlmostEqual, 0.9453125, 1e-9)
		So(SuccessProbability(16, 1, 3), ShouldAlmostEqual, 0.9613, 1e-4)
		So(SuccessProbability(8, 1, 0), ShouldAlmostEqual, 0.125, 1e-12)
		So(SuccessProbability(8, 8, 1), ShouldEqual, 1)
		So(SuccessProbability(8, 0, 1), ShouldEqual, 0)
	})
}

func TestControllerRun(t *testing.T) {
	Convey("Given a controller and a uniform state over 8 indices", t, func() {
		ctrl := NewController(nil)
		sv, err := NewStateVector(8)
		So(err, ShouldBeNil)

		Convey("When running two rounds for index 5", func() {
			rounds := []int{}
			ctrl.OnRound = func(round int, _ *StateVector) {
				rounds = append(rounds, round)
			}

			out, err := ctrl.Run(sv, []int{5}, 2)

			Convey("Then it should mutate and return the same vector", func() {
				So(err, ShouldBeNil)
				So(out, ShouldPointTo, sv)
				So(rounds, ShouldResemble, []int{1, 2})
			})

			Convey("Then the amplitudes should match the hand computed values", func() {
				So(real(sv.Amplitudes[5]), ShouldAlmostEqual, 11/(8*math.Sqrt(2)), 1e-12)
				So(real(sv.Amplitudes[0]), ShouldAlmostEqual, -1/(8*math.Sqrt(2)), 1e-12)
				So(sv.Check(), ShouldBeNil)
			})
		})

		Convey("When running zero rounds", func() {
			_, err := ctrl.Run(sv, []int{5}, 0)
			So(err, ShouldBeNil)

			p, _ := sv.ProbabilityOf(5)
			So(p, ShouldAlmostEqual, 0.125, 1e-12)
		})

		Convey("When the iteration count is negative", func() {
			_, err := ctrl.Run(sv, []int{5}, -1)
			So(errors.Is(err, ErrInvalidIterations), ShouldBeTrue)
		})

		Convey("When nothing is marked", func() {
			_, err := ctrl.Run(sv, nil, 2)
			So(errors.Is(err, ErrNoMarkedItem), ShouldBeTrue)
		})

		Convey("When everything is marked", func() {
			_, err := ctrl.Run(sv, []int{0, 1, 2, 3, 4, 5, 6, 7}, 2)
			So(errors.Is(err, ErrAllItemsMarked), ShouldBeTrue)
		})

		Convey("When the state was corrupted before the run", func() {
			sv.Amplitudes[3] = 4
			_, err := ctrl.Run(sv, []int{5}, 1)
			So(errors.Is(err, ErrNormViolation), ShouldBeTrue)
		})
	})

	Convey("Given renormalization is disabled", t, func() {
		cfg := NewConfig()
		cfg.Renormalize = false
		ctrl := NewController(cfg)

		sv, err := newStateVector(16, cfg)
		So(err, ShouldBeNil)

		Convey("The rounds should still stay within tolerance", func() {
			_, err := ctrl.Run(sv, []int{13}, 3)
			So(err, ShouldBeNil)
			So(sv.Check(), ShouldBeNil)
		})
	})
}
