package dispatcher

import (
	"liftbank/src/elev"
	"liftbank/src/types"
)

// chooseElevator returns the index into fleet of the elevator that should serve order:
//   - the nearest idle elevator
//   - otherwise the nearest elevator already heading the requested way that has not
//     passed the floor
//   - otherwise a random elevator
//
// Ties go to the lowest index. randIntn must return a value in [0, n).
func chooseElevator(fleet []elev.ElevState, order types.HallOrder, randIntn func(n int) int) int {
	if idx, ok := nearest(fleet, order.Floor, isIdle); ok {
		return idx
	}
	eligible := func(s elev.ElevState) bool {
		return headingTowards(s, order)
	}
	if idx, ok := nearest(fleet, order.Floor, eligible); ok {
		return idx
	}
	return randIntn(len(fleet))
}

func isIdle(s elev.ElevState) bool {
	return s.Dir == types.DirIdle && !s.IsMoving
}

// headingTowards reports whether s already travels in the requested direction and
// has not yet passed the requested floor.
func headingTowards(s elev.ElevState, order types.HallOrder) bool {
	if s.Dir != order.Button.Dir() {
		return false
	}
	if s.Dir == types.DirUp {
		return s.Floor <= order.Floor
	}
	return s.Floor >= order.Floor
}

func nearest(fleet []elev.ElevState, floor int, match func(elev.ElevState) bool) (int, bool) {
	best, bestDistance := -1, 0
	for i, s := range fleet {
		if !match(s) {
			continue
		}
		distance := abs(s.Floor - floor)
		if best < 0 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return best, best >= 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
