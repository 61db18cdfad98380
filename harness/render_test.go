package harness

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRender(t *testing.T) {
	Convey("Given reports for a passing and a failing case", t, func() {
		h := New(context.Background(), testConfig())

		Reset(func() {
			h.Close()
		})

		pass := h.Evaluate(Case{Name: "Test Case 2", Qubits: 3, Target: 5, Iterations: 2}, 1)
		fail := h.Evaluate(Case{Name: "Bad", Qubits: 2, Target: 7, Iterations: 1}, 1)

		Convey("The histogram should list every basis state", func() {
			out := RenderHistogram(pass)
			for _, label := range []string{"000", "011", "101", "111"} {
				So(out, ShouldContainSubstring, label)
			}
			So(out, ShouldContainSubstring, "Test Case 2")
			So(out, ShouldContainSubstring, "94.53%")
			So(out, ShouldContainSubstring, "PASSED")
		})

		Convey("A failed search should render its reason", func() {
			out := RenderHistogram(fail)
			So(out, ShouldContainSubstring, "index out of range")
		})

		Convey("The summary should carry one verdict per case", func() {
			out := RenderSummary([]Report{pass, fail})
			So(out, ShouldContainSubstring, "Test Case 2 (3-qubit, target 5, 2 iter): PASSED")
			So(out, ShouldContainSubstring, "Bad (2-qubit, target 7, 1 iter): FAILED")
		})
	})
}
