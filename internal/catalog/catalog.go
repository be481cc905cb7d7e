package catalog

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/gauthamsrinivas7/CourtSide/assets"
	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// MaxSuggestions caps autocomplete results per query.
const MaxSuggestions = 8

type leagueEntry struct {
	League string   `json:"league"`
	Teams  []string `json:"teams"`
}

// Catalog is the static, in-memory team catalog.
type Catalog struct {
	teams []domain.Team
	byID  map[string]domain.Team
}

// Load parses the embedded catalog and builds the id index.
func Load() (*Catalog, error) {
	raw, err := assets.CatalogFS.ReadFile("teams.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	var leagues []leagueEntry
	if err := sonic.Unmarshal(raw, &leagues); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]domain.Team)}
	for _, l := range leagues {
		for _, name := range l.Teams {
			t := domain.Team{ID: TeamID(l.League, name), Name: name, League: l.League}
			if _, dup := c.byID[t.ID]; dup {
				return nil, fmt.Errorf("duplicate team id %q", t.ID)
			}
			c.teams = append(c.teams, t)
			c.byID[t.ID] = t
		}
	}
	return c, nil
}

// TeamID derives the stable catalog id for a team: the league name joined
// with the lowercased, hyphenated team name.
func TeamID(league, name string) string {
	return league + "-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Search returns up to MaxSuggestions teams whose name or league contains
// the query, case-insensitively. An empty query matches nothing.
func (c *Catalog) Search(query string) []domain.Team {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Team
	for _, t := range c.teams {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.League), q) {
			out = append(out, t)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

// Resolve maps team ids to catalog entries, preserving input order and
// skipping unknown ids.
func (c *Catalog) Resolve(ids []string) []domain.Team {
	var out []domain.Team
	for _, id := range ids {
		if t, ok := c.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.teams)
}
