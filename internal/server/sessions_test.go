package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activity-portal/internal/activities"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatusTimerHidesStatus(t *testing.T) {
	mem := newMemorySessions(nil)
	t.Cleanup(mem.Close)
	store := newSessionStore(mem, nil)
	ctx := context.Background()

	_, err := store.ShowStatus(ctx, "s1", StatusSuccess, "Signed up", 20*time.Millisecond)
	require.NoError(t, err)
	status, err := mem.LoadStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Signed up", status.Text)

	assert.Eventually(t, func() bool {
		status, _ := mem.LoadStatus(ctx, "s1")
		return status.Text == ""
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStaleTimerDoesNotHideNewerStatus(t *testing.T) {
	mem := newMemorySessions(nil)
	t.Cleanup(mem.Close)
	store := newSessionStore(mem, nil)
	ctx := context.Background()

	_, err := store.ShowStatus(ctx, "s1", StatusError, "Activity full", 20*time.Millisecond)
	require.NoError(t, err)
	_, err = store.ShowStatus(ctx, "s1", StatusSuccess, "Removed", time.Second)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	status, err := store.CurrentStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Removed", status.Text)
	assert.Equal(t, StatusSuccess, status.Kind)
}

func TestMemoryStaleGenerationIgnored(t *testing.T) {
	mem := newMemorySessions(nil)
	t.Cleanup(mem.Close)
	ctx := context.Background()

	require.NoError(t, mem.SaveStatus(ctx, "s1", Status{Text: "first", Kind: StatusError, ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, mem.SaveStatus(ctx, "s1", Status{Text: "second", Kind: StatusSuccess, ExpiresAt: time.Now().Add(time.Hour)}))

	mem.hide("s1", 1)
	status, err := mem.LoadStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "second", status.Text)

	mem.hide("s1", 2)
	status, err = mem.LoadStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, status.Text)
}

func TestSessionsAreIsolated(t *testing.T) {
	mem := newMemorySessions(nil)
	t.Cleanup(mem.Close)
	store := newSessionStore(mem, nil)
	ctx := context.Background()

	_, err := store.ShowStatus(ctx, "a", StatusSuccess, "hello", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.SetDraft(ctx, "a", FormDraft{Email: "a@x.com"}))

	status, err := store.CurrentStatus(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, status.Text)
	draft, err := store.Draft(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, FormDraft{}, draft)
}

func TestEnsureSessionIDReusesValidCookie(t *testing.T) {
	store := newSessionStore(newMemorySessions(nil), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := store.ensureSessionID(rec, req)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, id, store.ensureSessionID(rec, req))
	assert.Empty(t, rec.Result().Cookies())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", store.ensureSessionID(rec, req))
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("skipping test; miniredis unavailable: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSessions(t *testing.T) {
	mr, client := newMiniredis(t)
	clock := newFakeClock()
	backend := newRedisSessions(client, clock.Now)
	store := newSessionStore(backend, clock.Now)
	ctx := context.Background()

	_, err := store.ShowStatus(ctx, "s1", StatusError, "Activity full", 5*time.Second)
	require.NoError(t, err)
	status, err := store.CurrentStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Activity full", status.Text)
	assert.Equal(t, 5*time.Second, mr.TTL(redisKey("s1", "status")))

	_, err = store.ShowStatus(ctx, "s1", StatusSuccess, "Removed", 4*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, mr.TTL(redisKey("s1", "status")))

	mr.FastForward(4 * time.Second)
	status, err = store.CurrentStatus(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, status.Text)

	require.NoError(t, store.SetDraft(ctx, "s1", FormDraft{Email: "a@x.com", Activity: "Chess Club"}))
	draft, err := store.Draft(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, FormDraft{Email: "a@x.com", Activity: "Chess Club"}, draft)
	require.NoError(t, store.ClearDraft(ctx, "s1"))
	assert.False(t, mr.Exists(redisKey("s1", "draft")))

	_, ok, err := store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
	page := PageState{Activities: activities.NewCollection(chessClub(), activities.Activity{Name: "Gym", MaxParticipants: 1})}
	require.NoError(t, store.SetPage(ctx, "s1", page))
	assert.Equal(t, sessionIdleTTL, mr.TTL(redisKey("s1", "page")))

	_, ok, err = store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "an unheld page is never read back")

	require.NoError(t, store.HoldPage(ctx, "s1"))
	loaded, ok, err := store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Chess Club", "Gym"}, loaded.Activities.Names())
	chess, _ := loaded.Activities.Get("Chess Club")
	assert.Equal(t, 9, chess.SpotsLeft())
	assert.False(t, mr.Exists(redisKey("s1", "held")))

	_, ok, err = store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryHeldPageIsTakenOnce(t *testing.T) {
	mem := newMemorySessions(nil)
	t.Cleanup(mem.Close)
	store := newSessionStore(mem, nil)
	ctx := context.Background()
	page := PageState{Activities: activities.NewCollection(chessClub())}

	require.NoError(t, store.HoldPage(ctx, "s1"))
	_, ok, err := store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "nothing recorded yet")

	require.NoError(t, store.SetPage(ctx, "s1", page))
	_, ok, err = store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.HoldPage(ctx, "s1"))
	loaded, ok, err := store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Chess Club"}, loaded.Activities.Names())
	_, ok, err = store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.HoldPage(ctx, "s1"))
	require.NoError(t, store.SetPage(ctx, "s1", page))
	_, ok, err = store.TakeHeldPage(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "a fresh render drops the hold")
}

func TestMemorySweepsIdleSessions(t *testing.T) {
	clock := newFakeClock()
	mem := newMemorySessions(clock.Now)
	t.Cleanup(mem.Close)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, mem.SavePage(ctx, uuid.NewString(), PageState{}))
	}
	require.NoError(t, mem.SaveDraft(ctx, "active", FormDraft{Email: "a@x.com"}))
	require.NoError(t, mem.SaveStatus(ctx, "active", Status{Text: "Removed", Kind: StatusSuccess, ExpiresAt: clock.Now().Add(time.Hour)}))

	clock.Advance(sessionIdleTTL - time.Minute)
	_, err := mem.LoadDraft(ctx, "active")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	require.NoError(t, mem.SavePage(ctx, "newcomer", PageState{}))

	mem.mu.Lock()
	retained := len(mem.sessions)
	mem.mu.Unlock()
	assert.Equal(t, 2, retained)

	draft, err := mem.LoadDraft(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", draft.Email)
}

func TestPortalWithRedisSessions(t *testing.T) {
	_, client := newMiniredis(t)
	api := newFakeAPI(chessClub())
	api.signupErr = &activities.APIError{Op: "signup", Status: http.StatusBadRequest, Detail: "Activity full"}
	b, _ := newBrowser(t, api, WithRedis(client))

	b.get("/")
	_, body := b.postForm("/signup", map[string][]string{"email": {"late@x.com"}, "activity": {"Chess Club"}})
	assert.Contains(t, body, ">Activity full</div>")
	assert.Contains(t, body, `value="late@x.com"`)
	assert.Contains(t, body, "9 spots left")

	listCalls, _, _ := api.calls()
	assert.Equal(t, 1, listCalls)
}
