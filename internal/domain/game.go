package domain

// Game is a catalog entry fetched from IGDB, used purely as inspiration input.
type Game struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Genres           []string `json:"genres"`
	Themes           []string `json:"themes"`
	Summary          string   `json:"summary"`
	Rating           float64  `json:"rating"`
	RatingCount      int      `json:"rating_count"`
	FirstReleaseDate int64    `json:"first_release_date"`
}
