package store

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// prefsKey is the single row key the preferences document lives under.
const prefsKey = "courtside:preferences"

func marshalPreferences(p *domain.Preferences) (string, error) {
	raw, err := sonic.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal preferences: %w", err)
	}
	return string(raw), nil
}

func unmarshalPreferences(doc string) (*domain.Preferences, error) {
	var p domain.Preferences
	if err := sonic.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return &p, nil
}
