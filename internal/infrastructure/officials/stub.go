package officials

import (
	"context"
	"sync"

	"github.com/ligaops/competition-engine/internal/usecase"
)

// Stub serves fixed assignment statuses for tests and local runs without the
// collaborator. Unknown matches read as nothing-submitted rather than erroring
// so a fresh fixture can move through preparation.
type Stub struct {
	mu          sync.RWMutex
	assignments map[string]usecase.OfficialsAssignment
}

func NewStub() *Stub {
	return &Stub{
		assignments: make(map[string]usecase.OfficialsAssignment),
	}
}

func (s *Stub) SetAssignment(matchID string, assignment usecase.OfficialsAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[matchID] = assignment
}

func (s *Stub) AssignmentStatus(_ context.Context, matchID string) (usecase.OfficialsAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assignments[matchID], nil
}
