package dispatcher

import (
	"testing"

	"liftbank/src/elev"
	"liftbank/src/types"
)

func state(floor int, dir types.Direction) elev.ElevState {
	return elev.ElevState{Floor: floor, Dir: dir, IsMoving: dir != types.DirIdle}
}

func neverRandom(t *testing.T) func(int) int {
	return func(int) int {
		t.Errorf("Fallback used unexpectedly")
		return 0
	}
}

func TestChooseElevator(t *testing.T) {
	tests := []struct {
		name  string
		fleet []elev.ElevState
		order types.HallOrder
		want  int
	}{
		{
			name:  "nearest idle",
			fleet: []elev.ElevState{state(1, types.DirIdle), state(9, types.DirIdle), state(6, types.DirIdle)},
			order: types.HallOrder{Floor: 5, Button: types.HallUp},
			want:  2,
		},
		{
			name:  "idle tie goes to lowest id",
			fleet: []elev.ElevState{state(1, types.DirIdle), state(1, types.DirIdle), state(9, types.DirIdle)},
			order: types.HallOrder{Floor: 5, Button: types.HallUp},
			want:  0,
		},
		{
			name:  "idle wins over a closer moving elevator",
			fleet: []elev.ElevState{state(5, types.DirUp), state(12, types.DirIdle)},
			order: types.HallOrder{Floor: 5, Button: types.HallUp},
			want:  1,
		},
		{
			name: "up call goes to elevator heading up below the floor",
			fleet: []elev.ElevState{
				state(3, types.DirUp), state(8, types.DirDown), state(15, types.DirDown),
				state(6, types.DirDown), state(2, types.DirDown),
			},
			order: types.HallOrder{Floor: 5, Button: types.HallUp},
			want:  0,
		},
		{
			name: "down call goes to nearest elevator heading down above the floor",
			fleet: []elev.ElevState{
				state(3, types.DirUp), state(8, types.DirDown), state(15, types.DirDown),
				state(6, types.DirDown), state(2, types.DirDown),
			},
			order: types.HallOrder{Floor: 5, Button: types.HallDown},
			want:  3,
		},
		{
			name:  "elevator at the floor has not passed it",
			fleet: []elev.ElevState{state(0, types.DirUp), state(5, types.DirUp)},
			order: types.HallOrder{Floor: 5, Button: types.HallUp},
			want:  1,
		},
		{
			name:  "down call below elevators heading down",
			fleet: []elev.ElevState{state(1, types.DirDown), state(1, types.DirDown), state(1, types.DirDown)},
			order: types.HallOrder{Floor: -1, Button: types.HallDown},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chooseElevator(tt.fleet, tt.order, neverRandom(t))
			if got != tt.want {
				t.Errorf("Expected elevator %d, got %d", tt.want, got)
			}
		})
	}
}

func TestChooseElevator_FallsBackToRandom(t *testing.T) {
	fleet := []elev.ElevState{
		state(8, types.DirUp),
		state(2, types.DirDown),
		state(9, types.DirUp),
	}
	order := types.HallOrder{Floor: 5, Button: types.HallUp}

	var gotN int
	got := chooseElevator(fleet, order, func(n int) int {
		gotN = n
		return 2
	})
	if gotN != len(fleet) {
		t.Errorf("Expected random pick over %d elevators, got %d", len(fleet), gotN)
	}
	if got != 2 {
		t.Errorf("Expected the random pick, got %d", got)
	}
}

func TestHeadingTowards(t *testing.T) {
	up := types.HallOrder{Floor: 5, Button: types.HallUp}
	down := types.HallOrder{Floor: 5, Button: types.HallDown}

	if !headingTowards(state(4, types.DirUp), up) {
		t.Errorf("Expected elevator below heading up to qualify")
	}
	if headingTowards(state(6, types.DirUp), up) {
		t.Errorf("Expected elevator that passed the floor to be rejected")
	}
	if headingTowards(state(4, types.DirDown), up) {
		t.Errorf("Expected elevator heading the other way to be rejected")
	}
	if !headingTowards(state(6, types.DirDown), down) {
		t.Errorf("Expected elevator above heading down to qualify")
	}
	if headingTowards(state(6, types.DirIdle), down) {
		t.Errorf("Expected idle elevator to be rejected")
	}
}
