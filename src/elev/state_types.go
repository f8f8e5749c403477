package elev

import (
	"time"

	"liftbank/src/types"
)

// ElevState is the observable state of one elevator.
type ElevState struct {
	ID              int
	Floor           int
	Dir             types.Direction
	IsMoving        bool
	Door            types.DoorStatus
	Behaviour       types.ElevBehaviour
	TargetFloors    []int
	DisabledButtons []int
	RingActive      bool
}

type EventType int

const (
	FloorChanged EventType = iota
	DirectionChanged
	DoorChanged
	TargetsChanged
	Arrived
	RingChanged
)

func (t EventType) String() string {
	switch t {
	case FloorChanged:
		return "floor"
	case DirectionChanged:
		return "direction"
	case DoorChanged:
		return "door"
	case TargetsChanged:
		return "targets"
	case Arrived:
		return "arrived"
	case RingChanged:
		return "ring"
	}
	return "unknown"
}

// Event is published after every state change. State is a copy taken right after
// the change, so receivers may keep it.
type Event struct {
	Type       EventType
	ElevatorID int
	Time       time.Time
	State      ElevState
}
