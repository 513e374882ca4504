package tmdb

import (
	"time"

	"marquee/internal/domain"
)

// Image base URLs; TMDB serves posters and headshots at fixed widths.
const (
	posterBaseURL  = "https://image.tmdb.org/t/p/w500"
	profileBaseURL = "https://image.tmdb.org/t/p/w185"
)

func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}

func mapMovieDetails(dto movieDetailsDTO) domain.MovieDetails {
	genres := make([]string, 0, len(dto.Genres))
	for _, g := range dto.Genres {
		genres = append(genres, g.Name)
	}
	return domain.MovieDetails{
		ID:          dto.ID,
		Title:       dto.Title,
		PosterURL:   imageURL(posterBaseURL, dto.PosterPath),
		ReleaseDate: dto.ReleaseDate,
		Genres:      genres,
		Runtime:     time.Duration(dto.Runtime) * time.Minute,
		Overview:    dto.Overview,
		VoteAverage: dto.VoteAverage,
		ReviewCount: dto.VoteCount,
		MediaType:   "movie",
	}
}

func mapCast(cast []castMemberDTO) []domain.Actor {
	actors := make([]domain.Actor, 0, len(cast))
	for _, m := range cast {
		actors = append(actors, domain.Actor{
			ID:         m.ID,
			Name:       m.Name,
			ProfileURL: imageURL(profileBaseURL, m.ProfilePath),
		})
	}
	return actors
}

func mapMediaList(movies []movieDTO) []domain.Media {
	items := make([]domain.Media, 0, len(movies))
	for _, m := range movies {
		items = append(items, mapMedia(m))
	}
	return items
}

func mapMedia(m movieDTO) domain.Media {
	mediaType := m.MediaType
	if mediaType == "" {
		mediaType = "movie"
	}
	return domain.Media{
		ID:          m.ID,
		Title:       m.Title,
		PosterURL:   imageURL(posterBaseURL, m.PosterPath),
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		MediaType:   mediaType,
	}
}

func mapReviews(reviews []reviewDTO) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, domain.Review{
			Author:    r.Author,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func mapRated(rated []ratedMovieDTO) []domain.RatedMovie {
	out := make([]domain.RatedMovie, 0, len(rated))
	for _, r := range rated {
		out = append(out, domain.RatedMovie{
			ID:          r.ID,
			Title:       r.Title,
			PosterURL:   imageURL(posterBaseURL, r.PosterPath),
			Rating:      r.Rating,
			ReleaseDate: r.ReleaseDate,
			MediaType:   "movie",
		})
	}
	return out
}

func mapGenres(genres []genreDTO) []domain.Genre {
	out := make([]domain.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}
