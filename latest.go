package main

import "sync"

// LatestSlot is the single-slot delivery channel between the refresh
// scheduler and the presentation layer. Publishing overwrites any unconsumed
// value (latest wins, never a backlog) and is atomic whole-value replacement:
// a reader sees either the old result or the complete new one.
type LatestSlot struct {
	mu        sync.Mutex
	pending   AnalysisResult
	hasNew    bool
	last      AnalysisResult
	published bool
}

func NewLatestSlot() *LatestSlot {
	return &LatestSlot{}
}

// Publish replaces the pending value. Never blocks.
func (s *LatestSlot) Publish(r AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = r
	s.hasNew = true
	s.last = r
	s.published = true
}

// TryTake returns the pending result and consumes it. Never blocks; returns
// false when nothing new was published since the previous take.
func (s *LatestSlot) TryTake() (AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasNew {
		return AnalysisResult{}, false
	}
	s.hasNew = false
	return s.pending, true
}

// Peek returns the most recently published result without consuming it, so
// the presentation layer can redraw between publishes.
func (s *LatestSlot) Peek() (AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.published
}
