package diff_test

import (
	"fmt"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/diff"
	"github.com/matzehuels/gridcompose/pkg/grid"
)

func cards(ids ...string) []grid.Item {
	items := make([]grid.Item, len(ids))
	for row, id := range ids {
		items[row] = grid.Base{
			Index: grid.At(0, row),
			ID:    id,
			Kind:  grid.CellKind("Card"),
			Dims:  grid.NewSize(grid.Fit(), grid.Fixed(40)),
		}
	}
	return items
}

func ExampleCompute() {
	before := compose.Build(cards("a", "b"), false)
	after := compose.Build(cards("a", "b", "c"), false)

	d := diff.Compute(before, after)
	fmt.Println(d.Inserted)
	fmt.Println(d.Summary())
	fmt.Println(diff.Compute(after, after).IsEmpty())
	// Output:
	// [0-2-c]
	// sections +0 -0 ~0, items +1 -0 ~0 >0
	// true
}
