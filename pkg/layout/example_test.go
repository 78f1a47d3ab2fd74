package layout_test

import (
	"fmt"

	"github.com/matzehuels/ripplegrid/pkg/layout"
)

func ExampleBuild() {
	f := layout.Build(9)

	fmt.Println("Container:", f.Width, "x", f.Height)
	fmt.Println("Columns:", f.Columns)
	o, _ := f.Offset(4)
	fmt.Println("Box 4:", o.Left, o.Top)
	// Output:
	// Container: 360 x 360
	// Columns: 3
	// Box 4: 130 130
}

func ExampleBuild_withOptions() {
	f := layout.Build(6,
		layout.WithContainerWidth(500), // four 120px slots fit
		layout.WithDetached(0),         // item 0 is not on the surface yet
	)

	_, ok := f.Offset(0)
	fmt.Println("Columns:", f.Columns)
	fmt.Println("Item 0 attached:", ok)
	fmt.Println("Attached:", f.Attached())
	// Output:
	// Columns: 4
	// Item 0 attached: false
	// Attached: 5
}
