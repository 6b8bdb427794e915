package services

import (
	"context"
	"fmt"
	"time"

	"fisheye/pkg/models"
	"github.com/rfberaldo/sqlz"
)

type SQLLikeStoreConfig struct {
	DB *sqlz.DB
}

/*
SQLLikeStore keeps like counts in a sqlite table. It is seeded from the
media document at startup so every known media id has a row, which lets
UpdateLikes distinguish "unknown media" from an I/O failure.
*/
type SQLLikeStore struct {
	db *sqlz.DB
}

func NewSQLLikeStore(config SQLLikeStoreConfig) SQLLikeStore {
	return SQLLikeStore{
		db: config.DB,
	}
}

// Seed inserts a row for every media entry that does not have one yet,
// carrying the document's like count.
func (s SQLLikeStore) Seed(doc models.MediaDocument) error {
	var (
		err error
	)

	sql := `
INSERT INTO media_likes (
   media_id,
   like_count
) VALUES (?, ?)
ON CONFLICT (media_id) DO NOTHING
`

	for _, m := range doc.Media {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)

		if _, err = s.db.Exec(ctx, sql, m.ID, m.Likes); err != nil {
			cancel()
			return fmt.Errorf("error seeding like count for media %d: %w", m.ID, err)
		}

		cancel()
	}

	return nil
}

func (s SQLLikeStore) UpdateLikes(mediaID, likeCount int) error {
	var (
		err error
	)

	sql := `
UPDATE media_likes SET
   like_count=?
WHERE 1=1
   AND media_id=?
`

	params := []any{likeCount, mediaID}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error updating like count for media %d: %w", mediaID, err)
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("error reading affected rows for media %d: %w", mediaID, err)
	}

	if affected == 0 {
		return fmt.Errorf("media %d: %w", mediaID, models.ErrMediaNotFound)
	}

	return nil
}

func (s SQLLikeStore) Likes() (map[int]int, error) {
	var (
		err  error
		rows []struct {
			MediaID   int `db:"media_id"`
			LikeCount int `db:"like_count"`
		}
	)

	sql := `
SELECT
   ml.media_id
   , ml.like_count
FROM media_likes AS ml
WHERE 1=1
ORDER BY ml.media_id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &rows, sql); err != nil {
		return nil, fmt.Errorf("error querying for like counts: %w", err)
	}

	result := map[int]int{}

	for _, row := range rows {
		result[row.MediaID] = row.LikeCount
	}

	return result, nil
}
