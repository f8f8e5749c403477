package elev

import (
	"cmp"
	"log/slog"
	"slices"

	"liftbank/src/types"
)

// queueTarget adds floor to the target queue and the disabled buttons unless it is
// already there. It reports whether the queue changed.
func (e *Elevator) queueTarget(floor int) bool {
	if slices.Contains(e.state.TargetFloors, floor) {
		return false
	}
	e.state.TargetFloors = append(e.state.TargetFloors, floor)
	if !slices.Contains(e.state.DisabledButtons, floor) {
		e.state.DisabledButtons = append(e.state.DisabledButtons, floor)
	}
	e.sortTargets()
	return true
}

// sortTargets orders the queue along the travel direction. An idle elevator takes
// its direction from the head of the queue; the direction then holds until the
// queue drains.
func (e *Elevator) sortTargets() {
	switch e.state.Dir {
	case types.DirUp:
		slices.Sort(e.state.TargetFloors)
	case types.DirDown:
		slices.SortFunc(e.state.TargetFloors, func(a, b int) int { return cmp.Compare(b, a) })
	default:
		if len(e.state.TargetFloors) == 0 {
			return
		}
		if e.state.TargetFloors[0] > e.state.Floor {
			e.state.Dir = types.DirUp
		} else {
			e.state.Dir = types.DirDown
		}
		slog.Debug("Direction chosen", "elevator", e.state.ID, "floor", e.state.Floor, "direction", e.state.Dir)
		e.publish(DirectionChanged)
		e.sortTargets()
	}
}

// clearHead removes the served floor from the head of the queue and re-enables its button.
func (e *Elevator) clearHead() int {
	floor := e.state.TargetFloors[0]
	e.state.TargetFloors = slices.Delete(e.state.TargetFloors, 0, 1)
	e.state.DisabledButtons = slices.DeleteFunc(e.state.DisabledButtons, func(f int) bool {
		return f == floor
	})
	return floor
}
