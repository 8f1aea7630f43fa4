package estimator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any non-negative previous total, the inferred start page is
// max(1, ceil(previousTotal / pageSize)).
func TestInferStartPageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("matches ceiling division", prop.ForAll(
		func(previousTotal int) bool {
			got := InferStartPage(previousTotal, 25)

			want := (previousTotal + 24) / 25
			if want < 1 {
				want = 1
			}
			return got == want
		},
		gen.IntRange(0, 1_000_000),
	))

	properties.Property("never undershoots the page holding the last row", prop.ForAll(
		func(previousTotal, pageSize int) bool {
			start := InferStartPage(previousTotal, pageSize)
			if start < 1 {
				return false
			}
			// Every row of a listing with previousTotal rows lives on a page
			// <= start, and start is not beyond the first empty page.
			return start*pageSize >= previousTotal && (start-1)*pageSize < max(previousTotal, 1)
		},
		gen.IntRange(0, 1_000_000),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}
