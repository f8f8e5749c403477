package types

type Direction int

const (
	DirUp   Direction = 1
	DirDown Direction = -1
	DirIdle Direction = 0
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "idle"
	}
}

type DoorStatus int

const (
	DoorStatusClosed DoorStatus = iota
	DoorStatusOpen
)

func (s DoorStatus) String() string {
	if s == DoorStatusOpen {
		return "open"
	}
	return "closed"
}

// HallType is the direction a passenger asks for when calling an elevator.
type HallType int

const (
	HallUp HallType = iota
	HallDown
)

func (h HallType) String() string {
	if h == HallDown {
		return "down"
	}
	return "up"
}

// Dir returns the travel direction matching the hall call.
func (h HallType) Dir() Direction {
	if h == HallDown {
		return DirDown
	}
	return DirUp
}

type HallOrder struct {
	Floor  int
	Button HallType
}

type ElevBehaviour int

const (
	Idle ElevBehaviour = iota
	Moving
	DoorOpen
)

func (b ElevBehaviour) String() string {
	switch b {
	case Moving:
		return "moving"
	case DoorOpen:
		return "doorOpen"
	default:
		return "idle"
	}
}
