package display

import (
	"sync"
	"time"

	"github.com/simpleweather/backend/internal/domain"
)

// NoticeDuration is how long a transient notice stays visible
const NoticeDuration = 3500 * time.Millisecond

// Surface is the on-screen state. Only the controller's display loop
// writes to it; HTTP handlers read snapshots.
type Surface struct {
	mu        sync.RWMutex
	state     domain.FetchState
	city      string
	model     *domain.DisplayModel
	notice    string
	noticeAt  time.Time
	notices   int
	updatedAt time.Time
	now       func() time.Time
}

// NewSurface creates an idle surface
func NewSurface() *Surface {
	return NewSurfaceWithClock(time.Now)
}

// NewSurfaceWithClock creates an idle surface using now for timestamps
func NewSurfaceWithClock(now func() time.Time) *Surface {
	return &Surface{state: domain.StateIdle, now: now}
}

// SetState records the fetch state for the city being shown
func (s *Surface) SetState(state domain.FetchState, city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if city != "" {
		s.city = city
	}
	s.updatedAt = s.now()
}

// Render replaces the displayed model wholesale
func (s *Surface) Render(city string, model domain.DisplayModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model
	s.model = &m
	s.city = city
	s.state = domain.StateRendered
	s.updatedAt = s.now()
}

// Notify shows a transient message
func (s *Surface) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = message
	s.noticeAt = s.now()
	s.notices++
}

// NoticeCount is the number of notices shown since creation
func (s *Surface) NoticeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notices
}

// Snapshot returns a copy of the surface; expired notices are omitted
func (s *Surface) Snapshot() domain.DisplaySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.DisplaySnapshot{
		State:     s.state,
		City:      s.city,
		UpdatedAt: s.updatedAt,
	}
	if s.model != nil {
		m := *s.model
		snap.Model = &m
	}
	if s.notice != "" && s.now().Sub(s.noticeAt) < NoticeDuration {
		snap.Notice = s.notice
	}
	return snap
}
