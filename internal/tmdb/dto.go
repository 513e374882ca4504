package tmdb

// TMDB API response types

type movieDTO struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	MediaType   string  `json:"media_type,omitempty"`
	Popularity  float64 `json:"popularity"`
}

type pagedMoviesDTO struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListDTO struct {
	Genres []genreDTO `json:"genres"`
}

type movieDetailsDTO struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	ReleaseDate string     `json:"release_date"`
	Runtime     int        `json:"runtime"` // minutes
	Genres      []genreDTO `json:"genres"`
	VoteAverage float64    `json:"vote_average"`
	VoteCount   int        `json:"vote_count"`
	PosterPath  string     `json:"poster_path"`
}

type castMemberDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

type creditsDTO struct {
	ID   int             `json:"id"`
	Cast []castMemberDTO `json:"cast"`
}

type reviewDTO struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type reviewsDTO struct {
	Page         int         `json:"page"`
	Results      []reviewDTO `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type guestSessionDTO struct {
	Success        bool   `json:"success"`
	GuestSessionID string `json:"guest_session_id"`
	ExpiresAt      string `json:"expires_at"`
}

type ratedMovieDTO struct {
	movieDTO
	Rating float64 `json:"rating"`
}

type ratedMoviesDTO struct {
	Page         int             `json:"page"`
	Results      []ratedMovieDTO `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}

type statusDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
