package models

// MovieSummary is one row of a discover/search page. Summaries live only
// in the current in-memory listing and are never persisted as-is.
type MovieSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"posterPath,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Overview    string `json:"overview"`
}

type Genre struct {
	Name string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"englishName"`
}

type MovieDetail struct {
	ID              int              `json:"id"`
	Title           string           `json:"title"`
	PosterPath      string           `json:"posterPath,omitempty"`
	ReleaseDate     string           `json:"releaseDate"`
	RuntimeMinutes  int              `json:"runtimeMinutes"`
	Genres          []Genre          `json:"genres"`
	Overview        string           `json:"overview"`
	VoteAverage     float64          `json:"voteAverage"`
	SpokenLanguages []SpokenLanguage `json:"spokenLanguages"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profilePath,omitempty"`
}
