// Motion and door state machine for a single elevator.
package elev

import (
	"log/slog"

	"liftbank/src/types"
)

// AddTarget queues floor and starts the elevator if it is not already on its way.
// Adding a floor that is already queued leaves the queue unchanged.
func (e *Elevator) AddTarget(floor int) {
	if e.destroyed {
		return
	}
	if e.queueTarget(floor) {
		slog.Debug("Target added", "elevator", e.state.ID, "floor", floor, "targets", e.state.TargetFloors)
		e.publish(TargetsChanged)
	}
	if !e.state.IsMoving {
		e.startMoving()
	}
}

// Open opens the door and (re)starts the dwell. Pending motion waits for the dwell.
func (e *Elevator) Open() {
	if e.destroyed {
		return
	}
	e.openDoor()
}

// Close only flips the door flag. A running dwell still decides when motion resumes.
func (e *Elevator) Close() {
	if e.destroyed {
		return
	}
	e.setDoor(types.DoorStatusClosed)
}

// FlashRing pulses the alarm for RingDuration. An alarm that is already on blinks
// off for RingBlinkInterval first.
func (e *Elevator) FlashRing() {
	if e.destroyed {
		return
	}
	if e.state.RingActive {
		e.setRing(false)
		e.restart(&e.blinkTimer, e.cfg.RingBlinkInterval, func() {
			e.setRing(true)
		})
	} else {
		e.setRing(true)
	}
	e.restart(&e.ringTimer, e.cfg.RingDuration, func() {
		e.blinkTimer.Stop()
		e.setRing(false)
	})
}

func (e *Elevator) startMoving() {
	if len(e.state.TargetFloors) == 0 {
		return
	}
	e.state.IsMoving = true
	if e.doorTimer.Pending() {
		slog.Debug("Motion deferred until door closes", "elevator", e.state.ID)
		return
	}
	e.state.Behaviour = types.Moving
	e.scheduleStep()
}

func (e *Elevator) scheduleStep() {
	if e.moveTimer.Pending() {
		return
	}
	e.restart(&e.moveTimer, e.cfg.TravelDuration, e.step)
}

// step moves one floor toward the head of the queue and stops there on arrival.
func (e *Elevator) step() {
	if len(e.state.TargetFloors) == 0 {
		e.settle()
		return
	}
	next := e.state.TargetFloors[0]
	switch {
	case e.state.Floor < next:
		e.state.Floor++
		e.publish(FloorChanged)
	case e.state.Floor > next:
		e.state.Floor--
		e.publish(FloorChanged)
	}
	if e.state.Floor == next {
		e.arrive()
		return
	}
	e.scheduleStep()
}

func (e *Elevator) arrive() {
	floor := e.clearHead()
	slog.Debug("Arrived at floor", "elevator", e.state.ID, "floor", floor, "remaining", e.state.TargetFloors)
	e.publish(Arrived)
	e.openDoor()
}

func (e *Elevator) openDoor() {
	e.moveTimer.Stop()
	e.state.Behaviour = types.DoorOpen
	e.setDoor(types.DoorStatusOpen)
	e.restart(&e.doorTimer, e.cfg.DoorOpenDuration, e.onDoorTimeout)
}

// onDoorTimeout closes the door after the dwell and continues to the next target or idles.
func (e *Elevator) onDoorTimeout() {
	e.setDoor(types.DoorStatusClosed)
	if len(e.state.TargetFloors) > 0 {
		e.state.IsMoving = true
		e.state.Behaviour = types.Moving
		e.scheduleStep()
		return
	}
	e.settle()
}

func (e *Elevator) settle() {
	e.state.IsMoving = false
	e.state.Behaviour = types.Idle
	if e.state.Dir != types.DirIdle {
		e.state.Dir = types.DirIdle
		slog.Debug("Elevator idle", "elevator", e.state.ID, "floor", e.state.Floor)
		e.publish(DirectionChanged)
	}
}

func (e *Elevator) setDoor(status types.DoorStatus) {
	if e.state.Door == status {
		return
	}
	e.state.Door = status
	e.publish(DoorChanged)
}

func (e *Elevator) setRing(active bool) {
	if e.state.RingActive == active {
		return
	}
	e.state.RingActive = active
	e.publish(RingChanged)
}
