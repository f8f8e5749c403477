package dispatcher

import (
	"slices"
	"testing"

	"liftbank/src/config"
	"liftbank/src/timer"
	"liftbank/src/types"
)

func newTestDispatcher(t *testing.T, numElevators int) (*Dispatcher, *timer.Loop, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.NumElevators = numElevators
	loop := timer.NewLoop()
	d := New(loop, cfg, nil)
	t.Cleanup(func() {
		d.Destroy()
		loop.Close()
	})
	return d, loop, cfg
}

func TestNew_CreatesFleet(t *testing.T) {
	d, _, _ := newTestDispatcher(t, 5)
	fleet := d.List()
	if len(fleet) != 5 {
		t.Fatalf("Expected 5 elevators, got %d", len(fleet))
	}
	for i, s := range fleet {
		if s.ID != i+1 || s.Floor != 1 || s.Dir != types.DirIdle {
			t.Errorf("Expected idle elevator %d at floor 1, got %+v", i+1, s)
		}
	}
}

func TestGetByID(t *testing.T) {
	d, _, _ := newTestDispatcher(t, 5)
	if s, ok := d.GetByID(3); !ok || s.ID != 3 {
		t.Errorf("Expected elevator 3, got %+v ok=%v", s, ok)
	}
	if _, ok := d.GetByID(42); ok {
		t.Errorf("Expected unknown elevator to be absent")
	}
}

func TestForwarding(t *testing.T) {
	d, _, _ := newTestDispatcher(t, 5)

	d.AddTargetTo(2, 5)
	if s, _ := d.GetByID(2); !slices.Contains(s.TargetFloors, 5) {
		t.Errorf("Expected 5 queued on elevator 2, got %v", s.TargetFloors)
	}

	d.OpenDoor(1)
	if s, _ := d.GetByID(1); s.Door != types.DoorStatusOpen {
		t.Errorf("Expected door open on elevator 1")
	}
	d.CloseDoor(1)
	if s, _ := d.GetByID(1); s.Door != types.DoorStatusClosed {
		t.Errorf("Expected door closed on elevator 1")
	}

	d.TriggerRing(4)
	if s, _ := d.GetByID(4); !s.RingActive {
		t.Errorf("Expected alarm on elevator 4")
	}
}

func TestForwarding_UnknownIDIsNoop(t *testing.T) {
	d, _, _ := newTestDispatcher(t, 2)
	before := d.List()

	d.AddTargetTo(9, 5)
	d.OpenDoor(9)
	d.CloseDoor(0)
	d.TriggerRing(-1)

	after := d.List()
	for i := range before {
		if after[i].Door != before[i].Door || after[i].RingActive || len(after[i].TargetFloors) != 0 {
			t.Errorf("Expected elevator %d untouched, got %+v", after[i].ID, after[i])
		}
	}
}

func TestOpenDoor_IgnoredWhileMoving(t *testing.T) {
	d, _, _ := newTestDispatcher(t, 1)
	d.AddTargetTo(1, 5)
	d.OpenDoor(1)
	if s, _ := d.GetByID(1); s.Door != types.DoorStatusClosed {
		t.Errorf("Expected doors to stay closed in transit")
	}
}

func TestAssign_PrefersNearestIdle(t *testing.T) {
	d, loop, cfg := newTestDispatcher(t, 5)

	if got := d.Assign(5, types.HallUp); got != 1 {
		t.Errorf("Expected elevator 1 for the first call, got %d", got)
	}
	if s, _ := d.GetByID(1); !slices.Contains(s.TargetFloors, 5) {
		t.Errorf("Expected 5 queued on elevator 1, got %v", s.TargetFloors)
	}

	// Park elevator 3 at floor 8.
	d.AddTargetTo(3, 8)
	loop.Advance(7*cfg.TravelDuration + cfg.DoorOpenDuration)
	if s, _ := d.GetByID(3); s.Floor != 8 || s.Dir != types.DirIdle {
		t.Fatalf("Expected elevator 3 idle at 8, got %+v", s)
	}
	if got := d.Assign(9, types.HallDown); got != 3 {
		t.Errorf("Expected elevator 3 for a call at 9, got %d", got)
	}
}

func TestAssign_SameDirectionNotPassed(t *testing.T) {
	d, loop, cfg := newTestDispatcher(t, 2)
	d.AddTargetTo(1, 10)
	d.AddTargetTo(2, -5)
	loop.Advance(2 * cfg.TravelDuration)

	a, _ := d.GetByID(1)
	b, _ := d.GetByID(2)
	if a.Floor != 3 || a.Dir != types.DirUp || b.Floor != -1 || b.Dir != types.DirDown {
		t.Fatalf("Unexpected setup: %+v %+v", a, b)
	}

	if got := d.Assign(5, types.HallUp); got != 1 {
		t.Errorf("Expected elevator 1, got %d", got)
	}
	a, _ = d.GetByID(1)
	b, _ = d.GetByID(2)
	if !slices.Contains(a.TargetFloors, 5) {
		t.Errorf("Expected 5 queued on elevator 1, got %v", a.TargetFloors)
	}
	if slices.Contains(b.TargetFloors, 5) {
		t.Errorf("Expected elevator 2 not to get 5, got %v", b.TargetFloors)
	}
}

func TestAssign_DownCallBelowFleet(t *testing.T) {
	d, loop, cfg := newTestDispatcher(t, 3)
	for id := 1; id <= 3; id++ {
		d.AddTargetTo(id, -5)
	}
	loop.Advance(cfg.TravelDuration)

	d.Assign(-1, types.HallDown)
	assigned := false
	for _, s := range d.List() {
		if slices.Contains(s.TargetFloors, -1) {
			assigned = true
		}
	}
	if !assigned {
		t.Errorf("Expected some elevator to get floor -1")
	}
}

func TestAssign_FallbackPicksRandomElevator(t *testing.T) {
	d, loop, cfg := newTestDispatcher(t, 3)
	for id := 1; id <= 3; id++ {
		d.AddTargetTo(id, -5)
	}
	loop.Advance(cfg.TravelDuration)
	d.randIntn = func(n int) int { return n - 1 }

	if got := d.Assign(3, types.HallUp); got != 3 {
		t.Errorf("Expected random pick of elevator 3, got %d", got)
	}
	if s, _ := d.GetByID(3); !slices.Contains(s.TargetFloors, 3) {
		t.Errorf("Expected 3 queued on elevator 3, got %v", s.TargetFloors)
	}
}

func TestDestroy_FreezesFleet(t *testing.T) {
	d, loop, cfg := newTestDispatcher(t, 2)
	d.AddTargetTo(1, 4)
	d.Destroy()
	loop.Advance(10 * cfg.TravelDuration)

	if s, _ := d.GetByID(1); s.Floor != 1 {
		t.Errorf("Expected no motion after Destroy, got floor %d", s.Floor)
	}
}
