package csp

// stream.go: a lazy, pull-based, single-consumption solution stream. The
// search runs on its own goroutine and blocks sending each solution down an
// unbuffered channel until the consumer asks for the next one, so an early
// Close/break leaves the rest of the search space unexplored.
type SolutionStream struct {
	solutions chan Assignment
	done      chan struct{}
	closed    bool
}

// Solutions returns a SolutionStream that lazily enumerates every solution
// to the problem in deterministic search order. The stream must be consumed
// (via Next, in a loop, until it reports done) or Close'd to release its
// background goroutine.
func (s *Solver) Solutions() *SolutionStream {
	if err := s.problem.Validate(); err != nil {
		ch := make(chan Assignment)
		close(ch)
		return &SolutionStream{solutions: ch, done: make(chan struct{})}
	}
	stream := &SolutionStream{
		solutions: make(chan Assignment),
		done:      make(chan struct{}),
	}
	go func() {
		defer close(stream.solutions)
		domains := initialDomains(s.problem)
		domains, ok := s.propagateAll(domains)
		if !ok {
			return
		}
		s.streamBacktrack(domains, stream)
	}()
	return stream
}

func (s *Solver) streamBacktrack(domains map[string]Domain, stream *SolutionStream) bool {
	s.trace.RecordNode()
	if isComplete(domains) {
		s.trace.RecordSolution()
		select {
		case stream.solutions <- extractAssignment(domains):
			return true
		case <-stream.done:
			return false
		}
	}
	name, found := s.selectVariable(domains)
	if !found {
		return true
	}
	for _, value := range s.orderValues(name, domains) {
		assigned, ok := s.assign(name, value, domains)
		if !ok {
			continue
		}
		propagated, ok := s.propagateAll(assigned)
		if !ok {
			continue
		}
		s.notifyStep(propagated)
		if !s.streamBacktrack(propagated, stream) {
			return false
		}
		s.trace.RecordBacktrack(name)
	}
	return true
}

// Next blocks until the next solution is available, returning ok=false once
// the stream is exhausted.
func (st *SolutionStream) Next() (Assignment, bool) {
	a, ok := <-st.solutions
	return a, ok
}

// Close releases the stream's background goroutine, abandoning any
// unexplored search space. Safe to call multiple times.
func (st *SolutionStream) Close() {
	if st.closed {
		return
	}
	st.closed = true
	close(st.done)
	for range st.solutions {
		// drain until the search goroutine observes done and exits
	}
}

// GetAllSolutions materializes every solution. Equivalent to Solver.SolveAll
// but expressed through the stream, for callers that already hold a Solver.
func (st *SolutionStream) GetAllSolutions() []Assignment {
	var out []Assignment
	for {
		a, ok := st.Next()
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out
}

// FirstN returns up to n solutions and stops the search early, closing the
// stream. Passing n<=0 returns an empty, already-closed stream result.
func (st *SolutionStream) FirstN(n int) []Assignment {
	var out []Assignment
	for len(out) < n {
		a, ok := st.Next()
		if !ok {
			break
		}
		out = append(out, a)
	}
	st.Close()
	return out
}

// CountSolutions exhausts the stream and returns how many solutions it
// produced.
func (st *SolutionStream) CountSolutions() int {
	count := 0
	for {
		_, ok := st.Next()
		if !ok {
			break
		}
		count++
	}
	return count
}

// HasMultipleSolutions reports whether the problem has at least two
// solutions, short-circuiting the search after the second is found — a
// uniqueness check never enumerates the full solution set.
func (st *SolutionStream) HasMultipleSolutions() bool {
	found := st.FirstN(2)
	return len(found) >= 2
}

// CountSolutions counts every solution without materializing them, running
// a fresh enumeration through a new stream.
func (s *Solver) CountSolutions() int {
	return s.Solutions().CountSolutions()
}

// HasMultipleSolutions reports whether at least two solutions exist,
// stopping the search as soon as the second one is found.
func (s *Solver) HasMultipleSolutions() bool {
	return s.Solutions().HasMultipleSolutions()
}

// FirstN returns up to n solutions in enumeration order, abandoning the
// rest of the search space.
func (s *Solver) FirstN(n int) []Assignment {
	return s.Solutions().FirstN(n)
}
