package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samterminal/samclient/internal/client/models"
)

// bootstrap enters the game and prints where the player stands. Images
// that failed to preload are only reported.
func (a *App) bootstrap(ctx context.Context) error {
	b, err := a.game.Bootstrap(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d star domains, %d locations, %d portraits.\n",
		len(b.World.Domains), len(b.World.Locations), len(b.Assets))
	a.printState(b.State)

	if b.PreloadErr != nil {
		fmt.Fprintln(a.out, "Some images could not be loaded.")
	}
	return nil
}

func (a *App) printState(st *models.GameState) {
	loc := st.CurrentLocation
	fmt.Fprintf(a.out, "[%s] %s\n", st.GameTime, displayName(loc.Name, loc.ID))
	if loc.Description != "" {
		fmt.Fprintln(a.out, loc.Description)
	}
	if st.LocationDynamicState != "" && st.LocationDynamicState != loc.Description {
		fmt.Fprintln(a.out, st.LocationDynamicState)
	}
	fmt.Fprintf(a.out, "Firefly: %s", st.FireflyEmotion)
	if st.FireflyStatus != "" {
		fmt.Fprintf(a.out, ", %s", st.FireflyStatus)
	}
	fmt.Fprintln(a.out)
	if st.FireflyMoodDetails != "" {
		fmt.Fprintf(a.out, "  %s\n", st.FireflyMoodDetails)
	}
}

func (a *App) Status(ctx context.Context) error {
	st, err := a.game.Status(ctx)
	if err != nil {
		return err
	}
	a.printState(st)
	fmt.Fprintf(a.out, "%d items, %d memories.\n", len(st.Items), len(st.Memories))
	return nil
}

func (a *App) Map(ctx context.Context) error {
	domains, err := a.game.Domains(ctx)
	if err != nil {
		return err
	}
	locations, err := a.game.Locations(ctx)
	if err != nil {
		return err
	}

	byDomain := make(map[string][]models.Location)
	for _, l := range locations {
		byDomain[l.DomainID] = append(byDomain[l.DomainID], l)
	}

	for _, d := range domains {
		fmt.Fprintf(a.out, "%s (%s)\n", displayName(d.Name, d.ID), d.ID)
		for _, l := range byDomain[d.ID] {
			a.printLocation(l)
		}
		delete(byDomain, d.ID)
	}
	// Locations whose domain is not on the map.
	for _, l := range locations {
		if _, ok := byDomain[l.DomainID]; ok {
			a.printLocation(l)
		}
	}
	return nil
}

func (a *App) printLocation(l models.Location) {
	lock := ""
	if !l.IsUnlocked {
		lock = " [locked]"
	}
	fmt.Fprintf(a.out, "  - %s (%s)%s\n", displayName(l.Name, l.ID), l.ID, lock)
}

func (a *App) Inventory(ctx context.Context) error {
	items, err := a.game.Inventory(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Inventory is empty.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "- %s x%d", it.Name, it.Quantity)
		if it.Description != "" {
			fmt.Fprintf(a.out, ": %s", it.Description)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *App) Memories(ctx context.Context) error {
	memories, err := a.game.Memories(ctx)
	if err != nil {
		return err
	}
	if len(memories) == 0 {
		fmt.Fprintln(a.out, "No memories yet.")
		return nil
	}
	for _, m := range memories {
		fmt.Fprintf(a.out, "- [%s] %s", m.ID, m.Title)
		if m.Date != "" {
			fmt.Fprintf(a.out, " (%s)", m.Date)
		}
		if len(m.Tags) > 0 {
			fmt.Fprintf(a.out, " #%s", strings.Join(m.Tags, " #"))
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *App) Chat(ctx context.Context, text string) error {
	res, err := a.game.Chat(ctx, text)
	if err != nil {
		return err
	}
	a.printChat(res)
	return nil
}

func (a *App) Recall(ctx context.Context, memoryID string) error {
	res, err := a.game.Recall(ctx, memoryID)
	if err != nil {
		return err
	}
	a.printChat(res)
	return nil
}

func (a *App) printChat(res *models.ChatResult) {
	for _, m := range res.Replies {
		if m.Narration != "" {
			fmt.Fprintf(a.out, "  (%s)\n", m.Narration)
		}
		if m.Content != "" {
			fmt.Fprintf(a.out, "%s: %s\n", m.Speaker(), m.Content)
		}
	}

	u := res.StateUpdate
	if u == nil {
		return
	}
	if u.Location != nil {
		fmt.Fprintf(a.out, "-> %s\n", displayName(u.Location.Name, u.Location.ID))
	}
	if u.Firefly != nil && u.Firefly.Emotion != "" {
		fmt.Fprintf(a.out, "Firefly looks %s.\n", u.Firefly.Emotion)
	}
	if c := u.InventoryChange; c != nil {
		fmt.Fprintf(a.out, "Inventory: %s %+d\n", c.ItemID, c.Delta)
	}
}

func (a *App) Cache(_ context.Context) error {
	s := a.game.CacheStats()
	fmt.Fprintf(a.out, "Images: %d cached, %d ready, %d loading, %s decoded.\n",
		s.Entries, s.Resolved, s.Pending, humanize.Bytes(uint64(s.Bytes)))
	return nil
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
