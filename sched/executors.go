package sched

import (
	"sync"

	"github.com/eapache/queue"
)

// GoExecutor runs every submission on a fresh goroutine.
type GoExecutor struct{}

func (GoExecutor) Submit(f func()) {
	go f()
}

// PoolExecutor bounds the number of concurrently running submissions.
type PoolExecutor struct {
	sem chan struct{}
}

func NewPoolExecutor(maxWorkers int) *PoolExecutor {
	return &PoolExecutor{
		sem: make(chan struct{}, maxWorkers),
	}
}

func (p *PoolExecutor) Submit(f func()) {
	p.sem <- struct{}{}
	go func() {
		defer func() { <-p.sem }()
		f()
	}()
}

// SerialExecutor runs submissions one at a time, in submission order.
// A single drain goroutine is started on demand and exits when the
// queue empties.
type SerialExecutor struct {
	mu      sync.Mutex
	pending *queue.Queue
	running bool
}

func NewSerialExecutor() *SerialExecutor {
	return &SerialExecutor{pending: queue.New()}
}

func (s *SerialExecutor) Submit(f func()) {
	s.mu.Lock()
	s.pending.Add(f)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	go s.drain()
}

func (s *SerialExecutor) drain() {
	for {
		s.mu.Lock()
		if s.pending.Length() == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		f := s.pending.Remove().(func())
		s.mu.Unlock()
		f()
	}
}
