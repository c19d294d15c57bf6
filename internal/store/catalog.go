// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/encore/internal/models"
)

// Songs are stored denormalized: each record carries its album and artist,
// so a catalog read is a single prefix scan.

// PutSong creates or replaces a song.
func (s *Store) PutSong(ctx context.Context, song models.Song) error {
	return s.PutSongs(ctx, []models.Song{song})
}

// PutSongs creates or replaces songs in one write batch.
func (s *Store) PutSongs(ctx context.Context, songs []models.Song) error {
	return s.do(ctx, "put_songs", func() error {
		wb := s.db.NewWriteBatch()
		defer wb.Cancel()

		for i := range songs {
			if err := checkIDs("song", songs[i].ID); err != nil {
				return err
			}
			data, err := json.Marshal(&songs[i])
			if err != nil {
				return fmt.Errorf("encode song %d: %w", songs[i].ID, err)
			}
			if err := wb.Set(songKey(songs[i].ID), data); err != nil {
				return fmt.Errorf("write song %d: %w", songs[i].ID, err)
			}
		}
		if err := wb.Flush(); err != nil {
			return fmt.Errorf("flush songs: %w", err)
		}
		return nil
	})
}

// Song returns one song or ErrNotFound.
func (s *Store) Song(ctx context.Context, id int) (models.Song, error) {
	var song models.Song
	err := s.do(ctx, "get_song", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, songKey(id), &song)
		})
	})
	if err != nil {
		return models.Song{}, fmt.Errorf("song %d: %w", id, err)
	}
	return song, nil
}

// Songs returns the whole catalog in ascending ID order.
func (s *Store) Songs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	err := s.do(ctx, "list_songs", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var err error
			songs, err = scanJSON[models.Song](txn, []byte(prefixSong))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}
