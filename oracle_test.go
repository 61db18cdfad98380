package grover

import (
	"errors"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOracle(t *testing.T) {
	Convey("Given an oracle marking index 5 of 8", t, func() {
		oracle, err := NewOracle(8, 5)
		So(err, ShouldBeNil)
		So(oracle.Count(), ShouldEqual, 1)
		So(oracle.IsMarked(5), ShouldBeTrue)
		So(oracle.IsMarked(4), ShouldBeFalse)

		sv, err := NewStateVector(8)
		So(err, ShouldBeNil)
		before := sv.Clone()

		Convey("When applied to a uniform state", func() {
			So(oracle.Apply(sv), ShouldBeNil)

			Convey("Then only the marked amplitude should change sign", func() {
				for i := range sv.Amplitudes {
					if i == 5 {
						So(sv.Amplitudes[i], ShouldEqual, -before.Amplitudes[i])
						continue
					}
					So(sv.Amplitudes[i], ShouldEqual, before.Amplitudes[i])
				}
			})

			Convey("Then no magnitude should change", func() {
				for i := range sv.Amplitudes {
					So(cmplx.Abs(sv.Amplitudes[i]), ShouldEqual, cmplx.Abs(before.Amplitudes[i]))
				}
				So(sv.TotalProbability(), ShouldAlmostEqual, before.TotalProbability(), 1e-15)
			})
		})

		Convey("When applied twice", func() {
			So(oracle.Apply(sv), ShouldBeNil)
			So(oracle.Apply(sv), ShouldBeNil)

			Convey("Then the state should be restored", func() {
				So(sv.Amplitudes, ShouldResemble, before.Amplitudes)
			})
		})

		Convey("When applied to a state of another size", func() {
			other, err := NewStateVector(4)
			So(err, ShouldBeNil)
			So(errors.Is(oracle.Apply(other), ErrInvalidRegisterSize), ShouldBeTrue)
		})

		Convey("When applied to a state that already left the unit sphere", func() {
			sv.Amplitudes[0] *= 3
			So(errors.Is(oracle.Apply(sv), ErrNormViolation), ShouldBeTrue)
		})
	})

	Convey("Given marked sets", t, func() {
		Convey("Duplicates should collapse", func() {
			oracle, err := NewOracle(8, 6, 1, 6)
			So(err, ShouldBeNil)
			So(oracle.Marked(), ShouldResemble, []int{1, 6})
		})

		Convey("An empty set should fail", func() {
			_, err := NewOracle(8)
			So(errors.Is(err, ErrNoMarkedItem), ShouldBeTrue)
		})

		Convey("A set covering the basis should fail", func() {
			_, err := NewOracle(4, 0, 1, 2, 3)
			So(errors.Is(err, ErrAllItemsMarked), ShouldBeTrue)
		})

		Convey("An index outside the basis should fail", func() {
			_, err := NewOracle(4, 4)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)

			_, err = NewOracle(4, -1)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})
	})
}
