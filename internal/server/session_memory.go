package server

import (
	"context"
	"sync"
	"time"
)

const memorySweepInterval = time.Minute

type memorySession struct {
	Status     Status
	Draft      FormDraft
	Page       PageState
	HasPage    bool
	PageHeld   bool
	generation uint64
	lastSeen   time.Time
}

// memorySessions keeps session state in process. Each status gets its own
// hide timer; showing a newer status stops the previous timer, and a timer
// that fires late only hides the status it was scheduled for. Sessions idle
// for sessionIdleTTL are dropped on the next sweep.
type memorySessions struct {
	mu        sync.Mutex
	sessions  map[string]*memorySession
	timers    map[string]*time.Timer
	now       func() time.Time
	lastSweep time.Time
}

func newMemorySessions(now func() time.Time) *memorySessions {
	if now == nil {
		now = time.Now
	}
	return &memorySessions{
		sessions: make(map[string]*memorySession),
		timers:   make(map[string]*time.Timer),
		now:      now,
	}
}

// session returns the state for id, creating it if needed.
func (m *memorySessions) session(id string) *memorySession {
	now := m.now()
	data, ok := m.sessions[id]
	if !ok {
		m.sweepLocked(now)
		data = &memorySession{}
		m.sessions[id] = data
	}
	data.lastSeen = now
	return data
}

// lookup returns existing state for id without creating it.
func (m *memorySessions) lookup(id string) (*memorySession, bool) {
	data, ok := m.sessions[id]
	if ok {
		data.lastSeen = m.now()
	}
	return data, ok
}

func (m *memorySessions) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < memorySweepInterval {
		return
	}
	m.lastSweep = now
	for id, data := range m.sessions {
		if now.Sub(data.lastSeen) < sessionIdleTTL {
			continue
		}
		if timer, ok := m.timers[id]; ok {
			timer.Stop()
			delete(m.timers, id)
		}
		delete(m.sessions, id)
	}
}

func (m *memorySessions) LoadStatus(ctx context.Context, id string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, ok := m.lookup(id); ok {
		return data.Status, nil
	}
	return Status{}, nil
}

func (m *memorySessions) SaveStatus(ctx context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.session(id)
	data.Status = status
	data.generation++
	m.scheduleHide(id, data.generation, status.ExpiresAt.Sub(m.now()))
	return nil
}

func (m *memorySessions) scheduleHide(id string, generation uint64, delay time.Duration) {
	if existing, ok := m.timers[id]; ok {
		existing.Stop()
	}
	if delay <= 0 {
		delete(m.timers, id)
		m.hideLocked(id, generation)
		return
	}
	m.timers[id] = time.AfterFunc(delay, func() {
		m.hide(id, generation)
	})
}

func (m *memorySessions) hide(id string, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hideLocked(id, generation)
}

func (m *memorySessions) hideLocked(id string, generation uint64) {
	data, ok := m.sessions[id]
	if !ok || data.generation != generation {
		return
	}
	data.Status = Status{}
	delete(m.timers, id)
}

func (m *memorySessions) LoadDraft(ctx context.Context, id string) (FormDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, ok := m.lookup(id); ok {
		return data.Draft, nil
	}
	return FormDraft{}, nil
}

func (m *memorySessions) SaveDraft(ctx context.Context, id string, draft FormDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(id).Draft = draft
	return nil
}

func (m *memorySessions) SavePage(ctx context.Context, id string, page PageState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := m.session(id)
	data.Page = page
	data.HasPage = true
	data.PageHeld = false
	return nil
}

func (m *memorySessions) HoldPage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(id).PageHeld = true
	return nil
}

func (m *memorySessions) TakeHeldPage(ctx context.Context, id string) (PageState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.lookup(id)
	if !ok || !data.PageHeld {
		return PageState{}, false, nil
	}
	data.PageHeld = false
	if !data.HasPage {
		return PageState{}, false, nil
	}
	return data.Page, true, nil
}

// Close stops all pending hide timers.
func (m *memorySessions) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}
