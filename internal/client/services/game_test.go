package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/imagecache"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	fc       *fakeClient
	sessions *session.Store
	loader   *countingLoader
	cache    *imagecache.Cache
	svc      GameService
}

func newGameFixture(t *testing.T, s *session.Session) *gameFixture {
	t.Helper()
	f := &gameFixture{
		fc:       newFakeClient(),
		sessions: newSessionStore(t),
		loader:   newCountingLoader(),
	}
	if s != nil {
		require.NoError(t, f.sessions.Save(context.Background(), *s))
	}
	f.cache = imagecache.New(f.loader)
	auth := NewAuthService(f.fc, f.sessions, nopLog())
	f.svc = NewGameService(f.fc, auth, f.sessions, f.cache, 2, nopLog())
	return f
}

func sampleWorld() *models.WorldMap {
	w := models.NewWorldMap()
	w.Domains["penacony"] = models.StarDomain{ID: "penacony", Name: "Penacony"}
	w.Locations["a"] = models.Location{ID: "a", Name: "A", BackgroundURL: "http://api/uploads/a.png", DomainID: "penacony"}
	w.Locations["b"] = models.Location{ID: "b", Name: "B", BackgroundURL: "http://api/uploads/a.png", DomainID: "penacony"}
	w.Locations["c"] = models.Location{ID: "c", Name: "C", DomainID: "penacony"}
	return w
}

func TestBootstrap_CreatesSessionAndPreloads(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t, &session.Session{Token: "tok", Username: "alice"})
	f.fc.MapRet = sampleWorld()
	f.fc.AssetsRet = []models.FireflyAsset{{Emotion: "happy", URL: "http://api/uploads/happy.png"}}
	f.fc.StatusRet = &models.GameState{FireflyEmotion: "happy"}
	f.fc.SessionRet = "chat-1"

	b, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.NoError(t, b.PreloadErr)
	assert.Equal(t, "chat-1", b.ChatSessionID)
	assert.Equal(t, "happy", b.State.FireflyEmotion)
	assert.Equal(t, 1, f.fc.calls("CreateSession"))

	stored, err := f.sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chat-1", stored.ChatSessionID)

	assert.Equal(t, 1, f.loader.count("http://api/uploads/a.png"))
	assert.Equal(t, 1, f.loader.count("http://api/uploads/happy.png"))
	assert.Equal(t, 2, f.cache.Len())

	u, ok := f.svc.Portrait("happy")
	assert.True(t, ok)
	assert.Equal(t, "http://api/uploads/happy.png", u)
}

func TestBootstrap_ReusesChatSession(t *testing.T) {
	f := newGameFixture(t, &session.Session{Token: "tok", ChatSessionID: "existing"})
	f.fc.MapRet = models.NewWorldMap()
	f.fc.StatusRet = &models.GameState{}

	b, err := f.svc.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "existing", b.ChatSessionID)
	assert.Equal(t, 0, f.fc.calls("CreateSession"))
}

func TestBootstrap_PreloadFailureIsReported(t *testing.T) {
	f := newGameFixture(t, &session.Session{Token: "tok", ChatSessionID: "s"})
	f.fc.MapRet = sampleWorld()
	f.fc.StatusRet = &models.GameState{}
	f.loader.fail["http://api/uploads/a.png"] = errors.New("404")

	b, err := f.svc.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, b.PreloadErr, imagecache.ErrLoadFailed)

	_, cached := f.cache.Get("http://api/uploads/a.png")
	assert.False(t, cached)
}

func TestBootstrap_GatewayFailure(t *testing.T) {
	f := newGameFixture(t, &session.Session{Token: "tok"})
	f.fc.MapErr = &client.OpError{Kind: client.ErrMapFailed, Status: 500}
	f.fc.StatusRet = &models.GameState{}

	_, err := f.svc.Bootstrap(context.Background())
	assert.ErrorIs(t, err, client.ErrMapFailed)
}

func TestBootstrap_NotLoggedIn(t *testing.T) {
	f := newGameFixture(t, nil)

	_, err := f.svc.Bootstrap(context.Background())
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.Equal(t, 0, f.fc.calls("Map"))
}

func TestChat_MergesLocationAndPreloads(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t, &session.Session{Token: "tok", ChatSessionID: "s1"})
	f.fc.MapRet = sampleWorld()
	f.fc.ChatRet = &models.ChatResult{
		Replies:   []models.Message{{ID: "1", Sender: models.SenderFirefly, Content: "come"}},
		SessionID: "s2",
		StateUpdate: &models.StateUpdate{
			Location: &models.LocationUpdate{ID: "dreamscape", Name: "Dreamscape", BackgroundURL: "http://api/uploads/d.png"},
		},
	}

	res, err := f.svc.Chat(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "come", res.Replies[0].Content)
	assert.Equal(t, "hello", f.fc.LastChatMessage)
	assert.Equal(t, "s1", f.fc.LastChatSession)

	stored, err := f.sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s2", stored.ChatSessionID)

	fut, ok := f.cache.Get("http://api/uploads/d.png")
	require.True(t, ok)
	_, err = fut.Wait(ctx)
	require.NoError(t, err)

	locs, err := f.svc.Locations(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(locs))
	for _, l := range locs {
		ids = append(ids, l.ID)
	}
	assert.Contains(t, ids, "dreamscape")
}

func TestChat_Error(t *testing.T) {
	f := newGameFixture(t, &session.Session{Token: "tok"})
	f.fc.ChatErr = &client.OpError{Kind: client.ErrChatFailed, Status: 502}

	_, err := f.svc.Chat(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrChatFailed)
	assert.Contains(t, err.Error(), "chat error")
}

func TestRecall_UsesChatSession(t *testing.T) {
	f := newGameFixture(t, &session.Session{Token: "tok", ChatSessionID: "s1"})
	f.fc.RecallRet = &models.ChatResult{Replies: []models.Message{{Content: "remembered"}}}

	res, err := f.svc.Recall(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "remembered", res.Replies[0].Content)
	assert.Equal(t, "m1", f.fc.LastRecall)
	assert.Equal(t, "s1", f.fc.LastChatSession)
}

func TestLocations_FetchMapOnce(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t, &session.Session{Token: "tok"})
	f.fc.MapRet = sampleWorld()

	locs, err := f.svc.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "a", locs[0].ID)

	domains, err := f.svc.Domains(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StarDomain{{ID: "penacony", Name: "Penacony"}}, domains)

	assert.Equal(t, 1, f.fc.calls("Map"))
}

func TestInventoryAndMemories_UseToken(t *testing.T) {
	ctx := context.Background()
	f := newGameFixture(t, &session.Session{Token: "tok-9"})
	f.fc.ItemsRet = []models.Item{{ID: "1", Name: "Ticket"}}
	f.fc.MemsRet = []models.Memory{{ID: "m", Title: "First"}}

	items, err := f.svc.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ticket", items[0].Name)

	mems, err := f.svc.Memories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", mems[0].Title)
	assert.Equal(t, "tok-9", f.fc.LastToken)
}

func TestCacheStats(t *testing.T) {
	f := newGameFixture(t, nil)
	_, err := f.cache.Preload("http://api/x.png").Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, imagecache.Stats{Entries: 1, Resolved: 1, Bytes: 100}, f.svc.CacheStats())
}

// placeholder is what the gateway synthesizes from the flat status fields.
func placeholder(id string) models.Location {
	return models.Location{
		ID:              id,
		Name:            id,
		BackgroundStyle: client.DefaultBackgroundStyle,
		Coordinates:     models.Coordinates{X: 50, Y: 50},
		IsUnlocked:      true,
		DomainID:        client.DefaultDomainID,
	}
}

func bootstrapped(t *testing.T) *gameFixture {
	t.Helper()
	f := newGameFixture(t, &session.Session{Token: "tok", ChatSessionID: "s1"})
	w := sampleWorld()
	a := w.Locations["a"]
	a.Description = "Golden hour over the dream pool."
	a.Coordinates = models.Coordinates{X: 12, Y: 34}
	w.Locations["a"] = a
	f.fc.MapRet = w
	f.fc.StatusRet = &models.GameState{CurrentLocation: placeholder("a")}
	return f
}

func TestBootstrap_ResolvesCurrentLocationFromMap(t *testing.T) {
	f := bootstrapped(t)

	b, err := f.svc.Bootstrap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, f.fc.MapRet.Locations["a"], b.State.CurrentLocation)
	assert.Equal(t, "Golden hour over the dream pool.", b.State.LocationDynamicState)
}

func TestStatus_KeepsDynamicState(t *testing.T) {
	ctx := context.Background()
	f := bootstrapped(t)
	_, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)

	f.fc.StatusRet = &models.GameState{CurrentLocation: placeholder("b"), LocationDynamicState: "crowded tonight"}
	st, err := f.svc.Status(ctx)
	require.NoError(t, err)

	assert.Equal(t, "B", st.CurrentLocation.Name)
	assert.Equal(t, "http://api/uploads/a.png", st.CurrentLocation.BackgroundURL)
	assert.Equal(t, "crowded tonight", st.LocationDynamicState)
}

func TestStatus_UnknownLocationKeepsPlaceholder(t *testing.T) {
	ctx := context.Background()
	f := bootstrapped(t)
	_, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)

	f.fc.StatusRet = &models.GameState{CurrentLocation: placeholder("nowhere")}
	st, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, placeholder("nowhere"), st.CurrentLocation)
}

func TestChat_ResolvesKnownLocation(t *testing.T) {
	ctx := context.Background()
	f := bootstrapped(t)
	_, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)

	f.fc.ChatRet = &models.ChatResult{State: models.GameState{CurrentLocation: placeholder("a")}}
	res, err := f.svc.Chat(ctx, "look around")
	require.NoError(t, err)
	assert.Equal(t, "A", res.State.CurrentLocation.Name)
	assert.Equal(t, models.Coordinates{X: 12, Y: 34}, res.State.CurrentLocation.Coordinates)
}

func TestChat_NewLocationCopiesReportedLocation(t *testing.T) {
	ctx := context.Background()
	f := bootstrapped(t)
	_, err := f.svc.Bootstrap(ctx)
	require.NoError(t, err)

	reported := placeholder("new")
	reported.Name = "New"
	f.fc.ChatRet = &models.ChatResult{
		State: models.GameState{CurrentLocation: reported},
		StateUpdate: &models.StateUpdate{
			Location: &models.LocationUpdate{ID: "new", BackgroundURL: "http://api/uploads/new.png"},
		},
	}

	res, err := f.svc.Chat(ctx, "go north")
	require.NoError(t, err)

	want := reported
	want.BackgroundURL = "http://api/uploads/new.png"
	assert.Equal(t, want, res.State.CurrentLocation)

	locs, err := f.svc.Locations(ctx)
	require.NoError(t, err)
	var got *models.Location
	for i := range locs {
		if locs[i].ID == "new" {
			got = &locs[i]
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, "penacony", got.DomainID)
	assert.Equal(t, "New", got.Name)

	fut, ok := f.cache.Get("http://api/uploads/new.png")
	require.True(t, ok)
	_, err = fut.Wait(ctx)
	require.NoError(t, err)
}

func TestBootstrap_ConcurrentChatMovesPlayer(t *testing.T) {
	ctx := context.Background()
	f := bootstrapped(t)
	f.fc.ChatFn = func(message string) *models.ChatResult {
		return &models.ChatResult{
			State: models.GameState{CurrentLocation: placeholder(message)},
			StateUpdate: &models.StateUpdate{
				Location: &models.LocationUpdate{ID: message, BackgroundURL: "http://api/uploads/" + message + ".png"},
			},
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.Bootstrap(ctx)
			assert.NoError(t, err)
		}()
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.Chat(ctx, fmt.Sprintf("room-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, err := f.svc.Locations(ctx)
	require.NoError(t, err)
}
