package dispatcher

import (
	"log/slog"
	"math/rand"

	"liftbank/src/config"
	"liftbank/src/elev"
	"liftbank/src/timer"
	"liftbank/src/types"
)

// Dispatcher owns a fixed fleet and routes calls to it. Its methods are safe for
// concurrent use; each runs as one command on the fleet's loop.
type Dispatcher struct {
	loop      *timer.Loop
	elevators []*elev.Elevator
	randIntn  func(n int) int
}

// New creates cfg.NumElevators elevators with IDs 1..n on loop. Their change events
// go to events, which may be nil.
func New(loop *timer.Loop, cfg config.Config, events chan<- elev.Event) *Dispatcher {
	d := &Dispatcher{
		loop:      loop,
		elevators: make([]*elev.Elevator, 0, cfg.NumElevators),
		randIntn:  rand.Intn,
	}
	loop.Do(func() {
		for id := 1; id <= cfg.NumElevators; id++ {
			d.elevators = append(d.elevators, elev.New(id, cfg, loop, events))
		}
	})
	slog.Info("Fleet ready", "elevators", cfg.NumElevators)
	return d
}

// Assign picks an elevator for a hall call at floor and queues the floor on it.
// It returns the ID of the chosen elevator.
func (d *Dispatcher) Assign(floor int, dir types.HallType) int {
	order := types.HallOrder{Floor: floor, Button: dir}
	assignee := 0
	d.loop.Do(func() {
		if len(d.elevators) == 0 {
			return
		}
		fleet := make([]elev.ElevState, len(d.elevators))
		for i, e := range d.elevators {
			fleet[i] = e.Snapshot()
		}
		chosen := d.elevators[chooseElevator(fleet, order, d.randIntn)]
		chosen.AddTarget(floor)
		assignee = chosen.ID()
	})
	slog.Debug("Hall call assigned", "floor", floor, "direction", dir, "elevator", assignee)
	return assignee
}

func (d *Dispatcher) AddTargetTo(id, floor int) {
	d.forward(id, "addTarget", func(e *elev.Elevator) { e.AddTarget(floor) })
}

// OpenDoor opens the doors of elevator id unless it is travelling.
func (d *Dispatcher) OpenDoor(id int) {
	d.forward(id, "open", func(e *elev.Elevator) {
		if e.IsMoving() {
			slog.Debug("Ignoring door open while moving", "elevator", id)
			return
		}
		e.Open()
	})
}

func (d *Dispatcher) CloseDoor(id int) {
	d.forward(id, "close", (*elev.Elevator).Close)
}

func (d *Dispatcher) TriggerRing(id int) {
	d.forward(id, "ring", (*elev.Elevator).FlashRing)
}

// List returns a snapshot of every elevator in ID order.
func (d *Dispatcher) List() []elev.ElevState {
	var states []elev.ElevState
	d.loop.Do(func() {
		states = make([]elev.ElevState, len(d.elevators))
		for i, e := range d.elevators {
			states[i] = e.Snapshot()
		}
	})
	return states
}

// GetByID returns a snapshot of elevator id. ok is false for an unknown ID.
func (d *Dispatcher) GetByID(id int) (state elev.ElevState, ok bool) {
	d.loop.Do(func() {
		if e := d.find(id); e != nil {
			state, ok = e.Snapshot(), true
		}
	})
	return state, ok
}

// Destroy tears down every elevator's timers.
func (d *Dispatcher) Destroy() {
	d.loop.Do(func() {
		for _, e := range d.elevators {
			e.Destroy()
		}
	})
}

func (d *Dispatcher) forward(id int, op string, cmd func(e *elev.Elevator)) {
	d.loop.Do(func() {
		e := d.find(id)
		if e == nil {
			slog.Debug("Unknown elevator", "elevator", id, "op", op)
			return
		}
		cmd(e)
	})
}

func (d *Dispatcher) find(id int) *elev.Elevator {
	for _, e := range d.elevators {
		if e.ID() == id {
			return e
		}
	}
	return nil
}
