package explorer

import "github.com/paulmach/orb"

// Command is a single user action applied to the controller.
type Command interface {
	isCommand()
}

// Draw replaces the drawn region with a new shape.
type Draw struct {
	Geometry orb.Geometry
}

// ClearDrawing removes the drawn region.
type ClearDrawing struct{}

// Search submits the filter, replacing the current result set on success.
type Search struct {
	Filter *SearchFilter
}

type NextPage struct{}

type PrevPage struct{}

// ToggleSelect flips one item's selection state.
type ToggleSelect struct {
	ID      string
	Checked bool
}

// SubmitOrder places an order for the current selection under the submitted
// filter's mission and region.
type SubmitOrder struct {
	SavePath string
	Bundle   string
}

func (*Draw) isCommand()         {}
func (*ClearDrawing) isCommand() {}
func (*Search) isCommand()       {}
func (*NextPage) isCommand()     {}
func (*PrevPage) isCommand()     {}
func (*ToggleSelect) isCommand() {}
func (*SubmitOrder) isCommand()  {}
