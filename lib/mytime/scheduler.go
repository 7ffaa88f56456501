package mytime

import (
	"sync"
	"time"
)

// Scheduler runs fire-and-forget callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type RealScheduler struct{}

func (s RealScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// FakeScheduler collects callbacks so tests decide when time passes.
type FakeScheduler struct {
	sync.Mutex
	pending []scheduled
}

type scheduled struct {
	delay time.Duration
	f     func()
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) {
	s.Lock()
	defer s.Unlock()

	s.pending = append(s.pending, scheduled{delay: d, f: f})
}

func (s *FakeScheduler) Pending() int {
	s.Lock()
	defer s.Unlock()

	return len(s.pending)
}

// FireAll runs every pending callback in scheduling order.
func (s *FakeScheduler) FireAll() {
	s.Lock()
	pending := s.pending
	s.pending = nil
	s.Unlock()

	for _, p := range pending {
		p.f()
	}
}

// FireNext runs the oldest pending callback and reports whether there was one.
func (s *FakeScheduler) FireNext() bool {
	s.Lock()
	if len(s.pending) == 0 {
		s.Unlock()
		return false
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	s.Unlock()

	next.f()

	return true
}
