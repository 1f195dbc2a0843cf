// Package models defines the domain types the client works with once
// backend responses have been mapped.
package models

import "sort"

// Coordinates place a location or star domain on its map, 0..100 each axis.
type Coordinates struct {
	X float64
	Y float64
}

type Location struct {
	ID              string
	Name            string
	Description     string
	BackgroundStyle string
	// BackgroundURL is absolute or empty.
	BackgroundURL string
	Coordinates   Coordinates
	IsUnlocked    bool
	DomainID      string
}

type StarDomain struct {
	ID          string
	Name        string
	Description string
	Coordinates Coordinates
	Color       string
}

// WorldMap is the star-domain and location catalogue keyed by id.
type WorldMap struct {
	Domains   map[string]StarDomain
	Locations map[string]Location
}

func NewWorldMap() *WorldMap {
	return &WorldMap{
		Domains:   make(map[string]StarDomain),
		Locations: make(map[string]Location),
	}
}

// LocationIDs returns location ids ordered by domain, then id.
func (m *WorldMap) LocationIDs() []string {
	ids := make([]string, 0, len(m.Locations))
	for id := range m.Locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.Locations[ids[i]], m.Locations[ids[j]]
		if a.DomainID != b.DomainID {
			return a.DomainID < b.DomainID
		}
		return a.ID < b.ID
	})
	return ids
}

func (m *WorldMap) DomainIDs() []string {
	ids := make([]string, 0, len(m.Domains))
	for id := range m.Domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BackgroundURLs lists the distinct non-empty background URLs.
func (m *WorldMap) BackgroundURLs() []string {
	seen := make(map[string]struct{}, len(m.Locations))
	urls := make([]string, 0, len(m.Locations))
	for _, id := range m.LocationIDs() {
		u := m.Locations[id].BackgroundURL
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// ApplyLocationUpdate merges a chat state update into the catalogue.
// Known locations keep their other fields. An unknown one is added as a
// copy of current, the location the same reply reports the player in,
// renamed to the update's id when current is a different place. Empty
// name or background leaves the current value. It returns the merged
// location.
func (m *WorldMap) ApplyLocationUpdate(u LocationUpdate, current Location) (Location, bool) {
	if u.ID == "" {
		return Location{}, false
	}
	loc, ok := m.Locations[u.ID]
	if !ok {
		loc = current
		if loc.ID != u.ID {
			loc.ID = u.ID
			loc.Name = u.ID
		}
		loc.IsUnlocked = true
	}
	if u.Name != "" {
		loc.Name = u.Name
	}
	if u.BackgroundURL != "" {
		loc.BackgroundURL = u.BackgroundURL
	}
	m.Locations[u.ID] = loc
	return loc, true
}
