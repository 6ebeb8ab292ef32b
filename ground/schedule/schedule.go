// Package schedule implements the ground-segment command scheduler: a
// min-heap keyed by execution time holding absolute, relative,
// periodic, and conditional entries, matching the state machine
//
//	PENDING --time--> DUE --exec--> DONE
//	   `-cancel-> CANCELLED     `-periodic--> PENDING
package schedule

import (
	"container/heap"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Kind distinguishes the four scheduled-command flavours.
type Kind int

const (
	KindAbsolute Kind = iota
	KindRelative
	KindPeriodic
	KindConditional
)

// State is a scheduled command's position in the state machine.
type State int

const (
	StatePending State = iota
	StateDue
	StateDone
	StateCancelled
)

// Exec is the callback a scheduled command invokes when it comes due.
// Per the design's callback-graph rule, it must not retain now or any
// borrowed reference beyond the call.
type Exec func(now time.Time)

// Predicate is the condition a conditional command polls.
type Predicate func(now time.Time) bool

// Command is one entry in the scheduler's heap.
type Command struct {
	ID            uuid.UUID
	Kind          Kind
	ExecuteAt     time.Time
	Period        time.Duration
	CheckInterval time.Duration
	Predicate     Predicate
	Exec          Exec
	State         State

	index int // heap.Interface bookkeeping
}

// commandHeap implements container/heap.Interface ordered by ExecuteAt.
type commandHeap []*Command

func (h commandHeap) Len() int            { return len(h) }
func (h commandHeap) Less(i, j int) bool  { return h[i].ExecuteAt.Before(h[j].ExecuteAt) }
func (h commandHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *commandHeap) Push(x interface{}) {
	c := x.(*Command)
	c.index = len(*h)
	*h = append(*h, c)
}
func (h *commandHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.index = -1
	*h = old[:n-1]
	return c
}

// Scheduler is the priority-queue dispatcher (C17). The heap is
// guarded by a single mutex held only for the duration of heap
// mutations; callbacks fire outside the mutex, per the concurrency
// model.
type Scheduler struct {
	mu    sync.Mutex
	heap  commandHeap
	byID  map[uuid.UUID]*Command
	log   logrus.FieldLogger

	runMu   sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New constructs an empty Scheduler.
func New(log logrus.FieldLogger) *Scheduler {
	s := &Scheduler{
		byID: make(map[uuid.UUID]*Command),
		log:  log,
	}
	heap.Init(&s.heap)
	return s
}

func (s *Scheduler) insert(c *Command) uuid.UUID {
	c.ID = uuid.New()
	c.State = StatePending
	s.mu.Lock()
	heap.Push(&s.heap, c)
	s.byID[c.ID] = c
	s.mu.Unlock()
	return c.ID
}

// ScheduleAbsolute runs exec once at the given time.
func (s *Scheduler) ScheduleAbsolute(at time.Time, exec Exec) uuid.UUID {
	return s.insert(&Command{Kind: KindAbsolute, ExecuteAt: at, Exec: exec})
}

// ScheduleRelative runs exec once after delay, computing the absolute
// execution time at insert.
func (s *Scheduler) ScheduleRelative(now time.Time, delay time.Duration, exec Exec) uuid.UUID {
	return s.insert(&Command{Kind: KindRelative, ExecuteAt: now.Add(delay), Exec: exec})
}

// SchedulePeriodic runs exec every period, re-enqueuing after each
// execution.
func (s *Scheduler) SchedulePeriodic(now time.Time, period time.Duration, exec Exec) uuid.UUID {
	return s.insert(&Command{Kind: KindPeriodic, ExecuteAt: now.Add(period), Period: period, Exec: exec})
}

// ScheduleConditional polls predicate every checkInterval once due; it
// runs exec and completes only once predicate returns true, otherwise
// it re-enqueues itself at now+checkInterval.
func (s *Scheduler) ScheduleConditional(now time.Time, checkInterval time.Duration, predicate Predicate, exec Exec) uuid.UUID {
	return s.insert(&Command{
		Kind:          KindConditional,
		ExecuteAt:     now.Add(checkInterval),
		CheckInterval: checkInterval,
		Predicate:     predicate,
		Exec:          exec,
	})
}

// Cancel removes a scheduled command by ID, re-heapifying. It returns
// false if the ID is unknown or already done/cancelled.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return false
	}
	c.State = StateCancelled
	delete(s.byID, id)
	if c.index >= 0 && c.index < len(s.heap) {
		heap.Remove(&s.heap, c.index)
	}
	return true
}

// Process pops every entry whose ExecuteAt <= now, executes it outside
// the heap lock, and re-enqueues periodic and deferred-conditional
// entries. It returns the number of entries that actually ran exec.
func (s *Scheduler) Process(now time.Time) int {
	due := s.popDue(now)
	executed := 0

	for _, c := range due {
		if c.Kind == KindConditional {
			if !c.Predicate(now) {
				s.reenqueueConditional(c, now)
				continue
			}
		}
		c.State = StateDue
		if c.Exec != nil {
			c.Exec(now)
		}
		c.State = StateDone
		executed++

		if c.Kind == KindPeriodic {
			s.reenqueuePeriodic(c, now)
		}
	}
	return executed
}

func (s *Scheduler) popDue(now time.Time) []*Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*Command
	for s.heap.Len() > 0 && !s.heap[0].ExecuteAt.After(now) {
		c := heap.Pop(&s.heap).(*Command)
		delete(s.byID, c.ID)
		due = append(due, c)
	}
	return due
}

func (s *Scheduler) reenqueuePeriodic(c *Command, now time.Time) {
	c.ExecuteAt = now.Add(c.Period)
	c.State = StatePending
	s.mu.Lock()
	heap.Push(&s.heap, c)
	s.byID[c.ID] = c
	s.mu.Unlock()
}

func (s *Scheduler) reenqueueConditional(c *Command, now time.Time) {
	c.ExecuteAt = now.Add(c.CheckInterval)
	s.mu.Lock()
	heap.Push(&s.heap, c)
	s.byID[c.ID] = c
	s.mu.Unlock()
}

// Len returns the number of entries currently scheduled (pending).
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Len()
}

// StartBackground runs Process on a dedicated goroutine at the given
// cadence until Stop is called. The loop exits when Stop closes its
// stop channel, and Stop waits for it with a bounded join.
func (s *Scheduler) StartBackground(cadence time.Duration) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(cadence)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case t := <-ticker.C:
				s.Process(t)
			}
		}
	}()
}

// Stop signals the background loop to exit and waits up to 1s for it
// to do so, logging if it did not.
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	if !s.running {
		s.runMu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.runMu.Unlock()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		if s.log != nil {
			s.log.Warn("scheduler worker did not stop within 1s timeout")
		}
	}
}
