package domain

// Team is a single entry from the static catalog.
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	League string `json:"league"`
}
