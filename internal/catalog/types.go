package catalog

import "github.com/mybrudda/MovieApp/internal/models"

// TMDB wire shapes. Only the fields the app reads are decoded.

type moviePage struct {
	Page    int         `json:"page"`
	Results []movieWire `json:"results"`
}

type movieWire struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

func (m movieWire) toSummary() models.MovieSummary {
	return models.MovieSummary{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
	}
}

type detailWire struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	SpokenLanguages []struct {
		EnglishName string `json:"english_name"`
	} `json:"spoken_languages"`
}

func (d detailWire) toDetail() *models.MovieDetail {
	out := &models.MovieDetail{
		ID:             d.ID,
		Title:          d.Title,
		PosterPath:     d.PosterPath,
		ReleaseDate:    d.ReleaseDate,
		RuntimeMinutes: d.Runtime,
		Overview:       d.Overview,
		VoteAverage:    d.VoteAverage,
	}
	for _, g := range d.Genres {
		out.Genres = append(out.Genres, models.Genre{Name: g.Name})
	}
	for _, l := range d.SpokenLanguages {
		out.SpokenLanguages = append(out.SpokenLanguages, models.SpokenLanguage{EnglishName: l.EnglishName})
	}
	return out
}

type creditsWire struct {
	Cast []struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
}

func (c creditsWire) toCast() []models.CastMember {
	out := make([]models.CastMember, 0, len(c.Cast))
	for _, m := range c.Cast {
		out = append(out, models.CastMember{ID: m.ID, Name: m.Name, ProfilePath: m.ProfilePath})
	}
	return out
}
