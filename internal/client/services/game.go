package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/imagecache"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Bootstrap is what the client knows after entering the game.
type Bootstrap struct {
	State         *models.GameState
	World         *models.WorldMap
	Assets        []models.FireflyAsset
	ChatSessionID string
	// PreloadErr is the first image that failed to preload, if any.
	// Bootstrap itself still succeeds.
	PreloadErr error
}

// GameService runs the player's side of the game: status, chat, memory
// recall, and the map whose images it keeps warm in the image cache.
type GameService interface {
	Bootstrap(ctx context.Context) (*Bootstrap, error)
	Status(ctx context.Context) (*models.GameState, error)
	Chat(ctx context.Context, message string) (*models.ChatResult, error)
	Recall(ctx context.Context, memoryID string) (*models.ChatResult, error)
	Inventory(ctx context.Context) ([]models.Item, error)
	Memories(ctx context.Context) ([]models.Memory, error)
	Locations(ctx context.Context) ([]models.Location, error)
	Domains(ctx context.Context) ([]models.StarDomain, error)
	Portrait(emotion string) (string, bool)
	CacheStats() imagecache.Stats
}

type gameService struct {
	client      client.Client
	auth        AuthService
	sessions    SessionStore
	cache       *imagecache.Cache
	parallelism int
	log         logging.Logger

	mu     sync.Mutex
	world  *models.WorldMap
	assets map[string]string
}

func NewGameService(c client.Client, auth AuthService, sessions SessionStore, cache *imagecache.Cache, parallelism int, log logging.Logger) GameService {
	return &gameService{
		client:      c,
		auth:        auth,
		sessions:    sessions,
		cache:       cache,
		parallelism: parallelism,
		log:         log,
	}
}

// Bootstrap fetches map, portraits and status together, makes sure a chat
// session exists and preloads every background and portrait.
func (g *gameService) Bootstrap(ctx context.Context) (*Bootstrap, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}

	var (
		world  *models.WorldMap
		assets []models.FireflyAsset
		state  *models.GameState
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		world, err = g.client.Map(egCtx, s.Token)
		return err
	})
	eg.Go(func() (err error) {
		assets, err = g.client.FireflyAssets(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		state, err = g.client.Status(egCtx, s.Token)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("bootstrap error: %w", err)
	}

	if s.ChatSessionID == "" {
		id, err := g.client.CreateSession(ctx, s.Token)
		if err != nil {
			return nil, fmt.Errorf("create session error: %w", err)
		}
		if err := g.rememberChatSession(ctx, s, id); err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	g.world = world
	g.assets = make(map[string]string, len(assets))
	for _, a := range assets {
		g.assets[a.Emotion] = a.URL
	}
	urls := world.BackgroundURLs()
	g.applyLocationLocked(state)
	g.mu.Unlock()

	for _, a := range assets {
		urls = append(urls, a.URL)
	}

	start := time.Now()
	preloadErr := g.cache.PreloadAll(ctx, urls, g.parallelism)
	if preloadErr != nil {
		g.log.Warn(ctx, "image preload incomplete", "error", preloadErr)
	}
	g.log.Debug(ctx, "bootstrap done", "locations", len(world.Locations), "images", len(urls), "elapsed", time.Since(start))

	return &Bootstrap{
		State:         state,
		World:         world,
		Assets:        assets,
		ChatSessionID: s.ChatSessionID,
		PreloadErr:    preloadErr,
	}, nil
}

func (g *gameService) Status(ctx context.Context) (*models.GameState, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	st, err := g.client.Status(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("status error: %w", err)
	}
	g.applyLocation(st)
	return st, nil
}

func (g *gameService) Chat(ctx context.Context, message string) (*models.ChatResult, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	res, err := g.client.Chat(ctx, s.Token, message, s.ChatSessionID)
	if err != nil {
		return nil, fmt.Errorf("chat error: %w", err)
	}
	return g.afterTurn(ctx, s, res)
}

func (g *gameService) Recall(ctx context.Context, memoryID string) (*models.ChatResult, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	res, err := g.client.RecallMemory(ctx, s.Token, memoryID, s.ChatSessionID)
	if err != nil {
		return nil, fmt.Errorf("recall error: %w", err)
	}
	return g.afterTurn(ctx, s, res)
}

// afterTurn keeps the chat session the backend chose, merges a location
// change into the map, preloading its background, and resolves the
// reported location against the map.
func (g *gameService) afterTurn(ctx context.Context, s *session.Session, res *models.ChatResult) (*models.ChatResult, error) {
	if res.SessionID != "" && res.SessionID != s.ChatSessionID {
		if err := g.rememberChatSession(ctx, s, res.SessionID); err != nil {
			return nil, err
		}
	}

	var preload string
	g.mu.Lock()
	if u := res.StateUpdate; u != nil && u.Location != nil {
		if g.world == nil {
			g.world = models.NewWorldMap()
		}
		if loc, ok := g.world.ApplyLocationUpdate(*u.Location, res.State.CurrentLocation); ok {
			preload = loc.BackgroundURL
		}
	}
	g.applyLocationLocked(&res.State)
	g.mu.Unlock()

	if preload != "" {
		g.cache.Preload(preload)
	}
	return res, nil
}

func (g *gameService) applyLocation(st *models.GameState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.applyLocationLocked(st)
}

// applyLocationLocked replaces the location synthesized from the status
// fields with the map's record for it, when the map has one. The
// location's own description stands in for an empty dynamic state.
// g.mu must be held.
func (g *gameService) applyLocationLocked(st *models.GameState) {
	if g.world == nil {
		return
	}
	loc, ok := g.world.Locations[st.CurrentLocation.ID]
	if !ok {
		return
	}
	st.CurrentLocation = loc
	if st.LocationDynamicState == "" {
		st.LocationDynamicState = loc.Description
	}
}

func (g *gameService) rememberChatSession(ctx context.Context, s *session.Session, id string) error {
	s.ChatSessionID = id
	if err := g.sessions.Save(ctx, *s); err != nil {
		return fmt.Errorf("save session error: %w", err)
	}
	return nil
}

func (g *gameService) Inventory(ctx context.Context) ([]models.Item, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	items, err := g.client.Inventory(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("inventory error: %w", err)
	}
	return items, nil
}

func (g *gameService) Memories(ctx context.Context) ([]models.Memory, error) {
	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	ms, err := g.client.Memories(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("memories error: %w", err)
	}
	return ms, nil
}

// Locations lists the known locations, fetching the map on first use.
func (g *gameService) Locations(ctx context.Context) ([]models.Location, error) {
	w, err := g.worldMap(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Location, 0, len(w.Locations))
	for _, id := range w.LocationIDs() {
		out = append(out, w.Locations[id])
	}
	return out, nil
}

func (g *gameService) Domains(ctx context.Context) ([]models.StarDomain, error) {
	w, err := g.worldMap(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.StarDomain, 0, len(w.Domains))
	for _, id := range w.DomainIDs() {
		out = append(out, w.Domains[id])
	}
	return out, nil
}

func (g *gameService) worldMap(ctx context.Context) (*models.WorldMap, error) {
	g.mu.Lock()
	w := g.world
	g.mu.Unlock()
	if w != nil {
		return w, nil
	}

	s, err := g.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	w, err = g.client.Map(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("map error: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.world == nil {
		g.world = w
	}
	return g.world, nil
}

// Portrait is the image URL for an emotion, known after Bootstrap.
func (g *gameService) Portrait(emotion string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.assets[emotion]
	return u, ok
}

func (g *gameService) CacheStats() imagecache.Stats {
	return g.cache.Stats()
}
