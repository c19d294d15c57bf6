// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package algorithms

import (
	"sort"

	"github.com/tomtom215/encore/internal/models"
)

// KNNConfig contains configuration for user-KNN.
type KNNConfig struct {
	// K is the number of most similar neighbors consulted per song.
	// Only neighbors who rated the song count toward K.
	// Default: 20.
	K int

	// RatingMin and RatingMax bound the rating scale used to map the
	// weighted mean onto [0, 1].
	// Default: 1 and 5.
	RatingMin int
	RatingMax int
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		K:         20,
		RatingMin: 1,
		RatingMax: 5,
	}
}

// Neighbor is a user with overlapping ratings and their similarity to the
// target, in (0, 1].
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// NeighborCache memoizes neighbor lists for one rating version.
// Cached slices are shared and must not be modified.
type NeighborCache interface {
	Get(userID int) ([]Neighbor, bool)
	Add(userID int, neighbors []Neighbor)
}

// ========== Rating Index ==========

// RatingIndex is an immutable view of a rating snapshot. Duplicate ratings
// for the same (user, song) resolve to the last one in snapshot order.
type RatingIndex struct {
	byUser map[int]map[int]int // user -> song -> score
	bySong map[int][]int       // song -> users who rated it, ascending
}

// NewRatingIndex builds an index over ratings.
func NewRatingIndex(ratings []models.Rating) *RatingIndex {
	idx := &RatingIndex{
		byUser: make(map[int]map[int]int),
		bySong: make(map[int][]int),
	}

	for _, r := range ratings {
		songs := idx.byUser[r.UserID]
		if songs == nil {
			songs = make(map[int]int)
			idx.byUser[r.UserID] = songs
		}
		songs[r.SongID] = r.Score
	}

	for userID, songs := range idx.byUser {
		for songID := range songs {
			idx.bySong[songID] = append(idx.bySong[songID], userID)
		}
	}
	for songID := range idx.bySong {
		sort.Ints(idx.bySong[songID])
	}

	return idx
}

// Rating returns the user's score for a song.
func (x *RatingIndex) Rating(userID, songID int) (int, bool) {
	score, ok := x.byUser[userID][songID]
	return score, ok
}

// HasRated reports whether the user rated the song.
func (x *RatingIndex) HasRated(userID, songID int) bool {
	_, ok := x.byUser[userID][songID]
	return ok
}

// RatedSongs returns the songs a user rated, ascending.
func (x *RatingIndex) RatedSongs(userID int) []int {
	songs := x.byUser[userID]
	out := make([]int, 0, len(songs))
	for songID := range songs {
		out = append(out, songID)
	}
	sort.Ints(out)
	return out
}

// RatingCount returns the number of distinct songs a user rated.
func (x *RatingIndex) RatingCount(userID int) int {
	return len(x.byUser[userID])
}

// Users returns the number of users with at least one rating.
func (x *RatingIndex) Users() int {
	return len(x.byUser)
}

// ========== User-Based Collaborative Filtering ==========

// Collaborative implements user-based collaborative filtering with Jaccard
// similarity over the sets of rated songs.
//
// For a target user u and candidate song s:
//
//	sim(u, v)   = |R(u) ∩ R(v)| / |R(u) ∪ R(v)|
//	score(u, s) = norm( sum_{v in N_k(u, s)} sim(u, v) * r(v, s) / sum_{v in N_k(u, s)} sim(u, v) )
//
// where N_k(u, s) is the k most similar users to u who rated s, and norm maps
// the rating scale onto [0, 1]. Neighbors are ordered by similarity
// descending, then user ID ascending, so results never depend on map order.
type Collaborative struct {
	config KNNConfig
	index  *RatingIndex
	cache  NeighborCache
}

// NewCollaborative creates a scorer over index. cache may be nil.
func NewCollaborative(cfg KNNConfig, index *RatingIndex, cache NeighborCache) *Collaborative {
	if cfg.K <= 0 {
		cfg.K = DefaultKNNConfig().K
	}
	if cfg.RatingMax <= cfg.RatingMin {
		def := DefaultKNNConfig()
		cfg.RatingMin, cfg.RatingMax = def.RatingMin, def.RatingMax
	}
	if index == nil {
		index = NewRatingIndex(nil)
	}

	return &Collaborative{
		config: cfg,
		index:  index,
		cache:  cache,
	}
}

// Index returns the rating index the scorer was built over.
func (c *Collaborative) Index() *RatingIndex {
	return c.index
}

// Neighbors returns every user with non-zero similarity to userID, best
// first. A user without ratings has no neighbors.
func (c *Collaborative) Neighbors(userID int) []Neighbor {
	if c.cache != nil {
		if n, ok := c.cache.Get(userID); ok {
			return n
		}
	}

	n := c.computeNeighbors(userID)

	if c.cache != nil {
		c.cache.Add(userID, n)
	}
	return n
}

func (c *Collaborative) computeNeighbors(userID int) []Neighbor {
	rated := c.index.byUser[userID]
	if len(rated) == 0 {
		return nil
	}

	// Users sharing at least one song, with their overlap count.
	common := make(map[int]int)
	for songID := range rated {
		for _, other := range c.index.bySong[songID] {
			if other != userID {
				common[other]++
			}
		}
	}

	neighbors := make([]Neighbor, 0, len(common))
	for other, overlap := range common {
		sim := jaccard(overlap, len(rated), len(c.index.byUser[other]))
		if sim > 0 {
			neighbors = append(neighbors, Neighbor{UserID: other, Similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})

	return neighbors
}

// Score predicts userID's affinity for songID in [0, 1]. The second result
// is false when the user has no ratings or no neighbor rated the song.
func (c *Collaborative) Score(userID, songID int) (float64, bool) {
	return c.scoreWith(c.Neighbors(userID), songID)
}

func (c *Collaborative) scoreWith(neighbors []Neighbor, songID int) (float64, bool) {
	var weighted, totalSim float64
	used := 0

	for _, n := range neighbors {
		if used == c.config.K {
			break
		}
		r, ok := c.index.Rating(n.UserID, songID)
		if !ok {
			continue
		}
		weighted += n.Similarity * float64(r)
		totalSim += n.Similarity
		used++
	}

	if used == 0 || totalSim == 0 {
		return 0, false
	}

	mean := weighted / totalSim
	scale := float64(c.config.RatingMax - c.config.RatingMin)
	return clamp01((mean - float64(c.config.RatingMin)) / scale), true
}

// Predict scores songIDs for userID. Songs without a signal are omitted.
func (c *Collaborative) Predict(userID int, songIDs []int) map[int]float64 {
	neighbors := c.Neighbors(userID)
	out := make(map[int]float64)
	if len(neighbors) == 0 {
		return out
	}

	for _, songID := range songIDs {
		if score, ok := c.scoreWith(neighbors, songID); ok {
			out[songID] = score
		}
	}
	return out
}

// PredictGroup averages, per song, the predictions of the members that
// have a signal for it. Each member excludes only itself as a neighbor, so
// fellow members' ratings count. Songs no member has a signal for are
// omitted. Duplicate member IDs are counted once.
func (c *Collaborative) PredictGroup(memberIDs, songIDs []int) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	seen := make(map[int]struct{}, len(memberIDs))

	for _, memberID := range memberIDs {
		if _, dup := seen[memberID]; dup {
			continue
		}
		seen[memberID] = struct{}{}

		for songID, score := range c.Predict(memberID, songIDs) {
			sums[songID] += score
			counts[songID]++
		}
	}

	out := make(map[int]float64, len(sums))
	for songID, sum := range sums {
		out[songID] = sum / float64(counts[songID])
	}
	return out
}
