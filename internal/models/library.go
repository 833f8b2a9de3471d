package models

// WatchlistEntry is the users/{uid}/watchlist/{movieId} document.
// Movie metadata is copied in at save time and never refreshed.
type WatchlistEntry struct {
	MovieID     int    `json:"movieId" bson:"movieId"`
	Title       string `json:"title" bson:"title"`
	PosterPath  string `json:"posterPath,omitempty" bson:"posterPath,omitempty"`
	ReleaseYear int    `json:"releaseYear,omitempty" bson:"releaseYear,omitempty"`
	Overview    string `json:"overview" bson:"overview"`
	AddedAt     string `json:"addedAt" bson:"addedAt"`
}

// Review is mirrored under users/{uid}/reviews/{movieId} and
// movies/{movieId}/reviews/{uid}; both documents always carry the
// same logical review.
type Review struct {
	UserID     string  `json:"userId" bson:"userId"`
	MovieID    int     `json:"movieId" bson:"movieId"`
	MovieTitle string  `json:"movieTitle" bson:"movieTitle"`
	UserName   string  `json:"userName" bson:"userName"`
	Rating     float64 `json:"rating" bson:"rating"`
	ReviewText string  `json:"reviewText" bson:"reviewText"`
	CreatedAt  string  `json:"createdAt" bson:"createdAt"`
}
