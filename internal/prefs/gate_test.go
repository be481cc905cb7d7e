package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
	"github.com/gauthamsrinivas7/CourtSide/internal/store"
)

func lakersPrefs() *domain.Preferences {
	return &domain.Preferences{
		Email:    "fan@example.com",
		Timezone: "America/Los_Angeles",
		Teams: []domain.Team{
			{ID: "NBA-los-angeles-lakers", Name: "Los Angeles Lakers", League: "NBA"},
		},
	}
}

func TestGate_DisabledBeforeOnboarding(t *testing.T) {
	g := NewGate(store.NewMemoryRepo())
	require.NoError(t, g.Load(context.Background()))

	require.False(t, g.Enabled())
	p, ok := g.Current()
	require.Nil(t, p)
	require.False(t, ok)
}

func TestGate_SetPersistsAndEnables(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	g := NewGate(repo)

	require.NoError(t, g.Set(ctx, lakersPrefs()))
	require.True(t, g.Enabled())

	// A fresh gate over the same repo sees the saved document.
	g2 := NewGate(repo)
	require.NoError(t, g2.Load(ctx))
	p, ok := g2.Current()
	require.True(t, ok)
	require.Equal(t, lakersPrefs(), p)
}

func TestGate_SetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	g := NewGate(store.NewMemoryRepo())

	bad := lakersPrefs()
	bad.Timezone = "Not/AZone"
	require.Error(t, g.Set(ctx, bad))
	require.False(t, g.Enabled())
}

func TestGate_ClearDisables(t *testing.T) {
	ctx := context.Background()
	g := NewGate(store.NewMemoryRepo())

	require.NoError(t, g.Set(ctx, lakersPrefs()))
	require.NoError(t, g.Clear(ctx))
	require.False(t, g.Enabled())
}
