package gallery

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fisheye/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortKeyPopularity = "popularity"
	SortKeyTitle      = "title"
	SortKeyDate       = "date"
)

// Sort dispatches on a sort key from the gallery's select control. An
// unknown key aborts with ErrInvalidInput and the input unchanged.
func Sort(key string, media []models.Media) ([]models.Media, error) {
	switch key {
	case SortKeyPopularity:
		return SortByLikes(media)

	case SortKeyTitle:
		return SortByTitle(media)

	case SortKeyDate:
		return SortByDate(media)

	default:
		slog.Error("unknown gallery sort key", "key", key)
		return media, fmt.Errorf("sort key %q: %w", key, ErrInvalidInput)
	}
}

/*
SortByLikes orders media by descending like count. Non-mutating; ties
keep their prior relative order. A negative like count fails the shape
guard and the input is returned unchanged with ErrTypeMismatch.
*/
func SortByLikes(media []models.Media) ([]models.Media, error) {
	for _, m := range media {
		if m.Likes < 0 {
			slog.Error("media fails like-count shape check, keeping original order", "mediaID", m.ID, "likes", m.Likes)
			return media, fmt.Errorf("media %d like count: %w", m.ID, ErrTypeMismatch)
		}
	}

	result := make([]models.Media, len(media))
	copy(result, media)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Likes > result[j].Likes
	})

	return result, nil
}

/*
SortByTitle orders media by ascending locale-aware title comparison. An
empty title fails the shape guard.
*/
func SortByTitle(media []models.Media) ([]models.Media, error) {
	for _, m := range media {
		if m.Title == "" {
			slog.Error("media fails title shape check, keeping original order", "mediaID", m.ID)
			return media, fmt.Errorf("media %d title: %w", m.ID, ErrTypeMismatch)
		}
	}

	// Collators carry internal buffers, so build one per call rather
	// than sharing across goroutines.
	collator := collate.New(language.French, collate.IgnoreCase)

	result := make([]models.Media, len(media))
	copy(result, media)

	sort.SliceStable(result, func(i, j int) bool {
		return collator.CompareString(result[i].Title, result[j].Title) < 0
	})

	return result, nil
}

/*
SortByDate orders media by descending date, most recent first. A date
that does not parse as ISO-8601 fails the shape guard.
*/
func SortByDate(media []models.Media) ([]models.Media, error) {
	var (
		err    error
		parsed time.Time
	)

	dates := make(map[int]time.Time, len(media))

	for _, m := range media {
		if parsed, err = time.Parse("2006-01-02", m.Date); err != nil {
			slog.Error("media fails date shape check, keeping original order", "mediaID", m.ID, "date", m.Date)
			return media, fmt.Errorf("media %d date %q: %w", m.ID, m.Date, ErrTypeMismatch)
		}

		dates[m.ID] = parsed
	}

	result := make([]models.Media, len(media))
	copy(result, media)

	sort.SliceStable(result, func(i, j int) bool {
		return dates[result[i].ID].After(dates[result[j].ID])
	})

	return result, nil
}
