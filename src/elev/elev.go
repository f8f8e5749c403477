package elev

import (
	"log/slog"
	"time"

	"liftbank/src/config"
	"liftbank/src/timer"
	"liftbank/src/types"

	"github.com/tiendc/go-deepcopy"
)

// Elevator is one car of the fleet. All methods except ID are confined to the loop
// the elevator was created with: call them from loop.Do or from a loop callback.
type Elevator struct {
	state  ElevState
	cfg    config.Config
	loop   *timer.Loop
	events chan<- Event

	moveTimer  *timer.Timer
	doorTimer  *timer.Timer
	blinkTimer *timer.Timer
	ringTimer  *timer.Timer

	destroyed bool
	dropped   uint64
}

// New creates an idle elevator with closed doors at cfg.StartFloor. Events are
// published to events if it is non-nil.
func New(id int, cfg config.Config, loop *timer.Loop, events chan<- Event) *Elevator {
	elevator := &Elevator{
		state: ElevState{
			ID:              id,
			Floor:           cfg.StartFloor,
			Dir:             types.DirIdle,
			Door:            types.DoorStatusClosed,
			Behaviour:       types.Idle,
			TargetFloors:    []int{},
			DisabledButtons: []int{},
		},
		cfg:    cfg,
		loop:   loop,
		events: events,
	}
	slog.Debug("Elevator initialized", "elevator", id, "floor", cfg.StartFloor)
	return elevator
}

func (e *Elevator) ID() int {
	return e.state.ID
}

func (e *Elevator) IsMoving() bool {
	return e.state.IsMoving
}

// Snapshot returns a deep copy of the elevator state.
func (e *Elevator) Snapshot() ElevState {
	clone := new(ElevState)
	if err := deepcopy.Copy(clone, &e.state); err != nil {
		panic(err)
	}
	return *clone
}

// Dropped returns how many events could not be delivered because the receiver lagged.
func (e *Elevator) Dropped() uint64 {
	return e.dropped
}

// Destroy cancels every pending timer. Later commands are ignored. Safe to call twice.
func (e *Elevator) Destroy() {
	if e.destroyed {
		return
	}
	e.moveTimer.Stop()
	e.doorTimer.Stop()
	e.blinkTimer.Stop()
	e.ringTimer.Stop()
	e.destroyed = true
	slog.Debug("Elevator destroyed", "elevator", e.state.ID, "floor", e.state.Floor)
}

func (e *Elevator) publish(kind EventType) {
	if e.events == nil {
		return
	}
	event := Event{
		Type:       kind,
		ElevatorID: e.state.ID,
		Time:       e.loop.Now(),
		State:      e.Snapshot(),
	}
	select {
	case e.events <- event:
	default:
		e.dropped++
		if e.dropped%100 == 1 {
			slog.Warn("Event channel saturated", "elevator", e.state.ID, "dropped", e.dropped)
		}
	}
}

// restart (re)arms the timer in slot. The callback is bound on first use.
func (e *Elevator) restart(slot **timer.Timer, d time.Duration, fn func()) {
	if *slot == nil {
		*slot = e.loop.AfterFunc(d, fn)
		return
	}
	(*slot).Reset(d)
}
