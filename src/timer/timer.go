// Package timer runs every elevator callback on one goroutine against a virtual clock.
package timer

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"
)

type loopCmd struct {
	exec func()
	done chan struct{}
}

// Loop owns the virtual clock and the pending timers. Commands submitted with Do and
// timer callbacks run one at a time on the loop goroutine.
type Loop struct {
	cmds      chan loopCmd
	quit      chan struct{}
	closeOnce sync.Once

	// Only touched on the loop goroutine.
	now    time.Time
	queue  timerQueue
	nextID uint64
}

// Timer is a pending callback on a Loop. Its methods must be called on the loop.
type Timer struct {
	loop  *Loop
	due   time.Time
	seq   uint64
	index int
	fn    func()
}

func NewLoop() *Loop {
	loop := &Loop{
		cmds: make(chan loopCmd),
		quit: make(chan struct{}),
		now:  time.Unix(0, 0).UTC(),
	}
	go func() {
		for {
			select {
			case cmd := <-loop.cmds:
				cmd.exec()
				close(cmd.done)
			case <-loop.quit:
				return
			}
		}
	}()
	return loop
}

// Do runs fn on the loop and waits for it to return. After Close it returns without
// running fn. Calling Do from inside a loop callback deadlocks.
func (loop *Loop) Do(fn func()) {
	cmd := loopCmd{exec: fn, done: make(chan struct{})}
	select {
	case loop.cmds <- cmd:
	case <-loop.quit:
		return
	}
	<-cmd.done
}

// Now returns the virtual time. Loop-confined.
func (loop *Loop) Now() time.Time {
	return loop.now
}

// AfterFunc schedules fn to run on the loop once d of virtual time has passed.
// Loop-confined.
func (loop *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	loop.nextID++
	t := &Timer{loop: loop, due: loop.now.Add(d), seq: loop.nextID, index: -1, fn: fn}
	heap.Push(&loop.queue, t)
	return t
}

// Stop cancels the timer. It reports whether the timer was still pending.
// Stopping a nil or fired timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.loop.queue, t.index)
	return true
}

// Reset reschedules the timer d from now, whether or not it already fired.
func (t *Timer) Reset(d time.Duration) {
	t.Stop()
	t.loop.nextID++
	t.due = t.loop.now.Add(d)
	t.seq = t.loop.nextID
	heap.Push(&t.loop.queue, t)
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && t.index >= 0
}

// Advance moves the virtual clock forward by d, firing due timers in order.
// Timers scheduled by callbacks fire in the same call if they fall due within d.
func (loop *Loop) Advance(d time.Duration) {
	loop.Do(func() {
		loop.advance(d)
	})
}

func (loop *Loop) advance(d time.Duration) {
	target := loop.now.Add(d)
	for loop.queue.Len() > 0 && !loop.queue[0].due.After(target) {
		t := heap.Pop(&loop.queue).(*Timer)
		loop.now = t.due
		t.fn()
	}
	loop.now = target
}

// Run drives the virtual clock from the wall clock until ctx is cancelled or the
// loop is closed. Timers fire with a granularity of resolution.
func (loop *Loop) Run(ctx context.Context, resolution time.Duration) {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	last := time.Now()
	slog.Debug("Loop running", "resolution", resolution)
	for {
		select {
		case <-ctx.Done():
			return
		case <-loop.quit:
			return
		case now := <-ticker.C:
			loop.Advance(now.Sub(last))
			last = now
		}
	}
}

// Close stops the loop goroutine. Pending timers never fire afterwards.
func (loop *Loop) Close() {
	loop.closeOnce.Do(func() {
		close(loop.quit)
	})
}

// timerQueue orders timers by due time, then by scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
