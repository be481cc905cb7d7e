package domain

// Mode selects which digest a trigger or fetch produces.
type Mode string

const (
	ModePreview Mode = "PREVIEW" // morning preview of upcoming games
	ModeSummary Mode = "SUMMARY" // evening summary of finished games
)

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModePreview || m == ModeSummary
}

// Title is the human-readable digest name used in notifications.
func (m Mode) Title() string {
	if m == ModeSummary {
		return "evening summary"
	}
	return "morning preview"
}

// GamePreview is one upcoming game in a morning digest.
type GamePreview struct {
	Matchup     string `json:"matchup"`
	Time        string `json:"time"`
	Broadcaster string `json:"broadcaster"`
}

// GameSummary is one finished game in an evening digest.
type GameSummary struct {
	Matchup     string `json:"matchup"`
	Score       string `json:"score"`
	DetailsLink string `json:"detailsLink"`
}
