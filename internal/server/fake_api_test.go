package server

import (
	"context"
	"sync"
	"time"

	"activity-portal/internal/activities"
)

type apiCall struct {
	Activity string
	Email    string
}

type fakeAPI struct {
	mu               sync.Mutex
	collection       *activities.Collection
	listErr          error
	signupResult     activities.Result
	signupErr        error
	unregisterResult activities.Result
	unregisterErr    error
	listCalls        int
	signups          []apiCall
	unregisters      []apiCall
}

func newFakeAPI(items ...activities.Activity) *fakeAPI {
	return &fakeAPI{collection: activities.NewCollection(items...)}
}

func chessClub() activities.Activity {
	return activities.Activity{
		Name:            "Chess Club",
		Description:     "desc",
		Schedule:        "Fri",
		MaxParticipants: 10,
		Participants:    []string{"a@x.com"},
	}
}

func (f *fakeAPI) List(ctx context.Context) (*activities.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.collection, nil
}

func (f *fakeAPI) Signup(ctx context.Context, activity, email string) (activities.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups = append(f.signups, apiCall{Activity: activity, Email: email})
	return f.signupResult, f.signupErr
}

func (f *fakeAPI) Unregister(ctx context.Context, activity, email string) (activities.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregisters = append(f.unregisters, apiCall{Activity: activity, Email: email})
	return f.unregisterResult, f.unregisterErr
}

func (f *fakeAPI) calls() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, len(f.signups), len(f.unregisters)
}

func (f *fakeAPI) setCollection(items ...activities.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collection = activities.NewCollection(items...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
