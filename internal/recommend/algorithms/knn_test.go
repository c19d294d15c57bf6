// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package algorithms

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/tomtom215/encore/internal/models"
)

func rating(user, song, score int) models.Rating {
	return models.Rating{UserID: user, SongID: song, Score: score}
}

const (
	songA = 1
	songB = 2
	songC = 3
	songD = 4
)

func TestRatingIndex(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 2),
		rating(1, songB, 4),
		rating(2, songA, 5),
		rating(1, songA, 3), // overwrites the first rating
	})

	t.Run("last write wins", func(t *testing.T) {
		got, ok := idx.Rating(1, songA)
		if !ok || got != 3 {
			t.Errorf("Rating(1, A) = %d, %v, want 3, true", got, ok)
		}
	})

	t.Run("duplicates count once", func(t *testing.T) {
		if got := idx.RatingCount(1); got != 2 {
			t.Errorf("RatingCount(1) = %d, want 2", got)
		}
	})

	t.Run("rated songs ascending", func(t *testing.T) {
		if got := idx.RatedSongs(1); !reflect.DeepEqual(got, []int{songA, songB}) {
			t.Errorf("RatedSongs(1) = %v, want [1 2]", got)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if idx.HasRated(99, songA) {
			t.Error("HasRated(99, A) = true, want false")
		}
		if got := idx.RatedSongs(99); len(got) != 0 {
			t.Errorf("RatedSongs(99) = %v, want empty", got)
		}
	})

	t.Run("user count", func(t *testing.T) {
		if got := idx.Users(); got != 2 {
			t.Errorf("Users() = %d, want 2", got)
		}
	})
}

func TestCollaborative_NeighborPrediction(t *testing.T) {
	// Target rated {A:5, B:3}; the neighbor rated {A:5, B:3, C:4}.
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5), rating(1, songB, 3),
		rating(2, songA, 5), rating(2, songB, 3), rating(2, songC, 4),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	got, ok := cf.Score(1, songC)
	if !ok {
		t.Fatal("Score(1, C) has no signal, want 0.75")
	}
	if got != 0.75 {
		t.Errorf("Score(1, C) = %v, want 0.75", got)
	}

	neighbors := cf.Neighbors(1)
	if len(neighbors) != 1 || neighbors[0].UserID != 2 {
		t.Fatalf("Neighbors(1) = %v, want [user 2]", neighbors)
	}
	if math.Abs(neighbors[0].Similarity-2.0/3.0) > epsilon {
		t.Errorf("similarity = %v, want 2/3", neighbors[0].Similarity)
	}
}

func TestCollaborative_ColdStart(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(2, songA, 5), rating(2, songC, 4),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	if _, ok := cf.Score(1, songC); ok {
		t.Error("Score() for user without ratings has a signal")
	}
	if got := cf.Predict(1, []int{songA, songB, songC}); len(got) != 0 {
		t.Errorf("Predict() = %v, want empty", got)
	}
	if got := cf.Neighbors(1); len(got) != 0 {
		t.Errorf("Neighbors() = %v, want none", got)
	}
}

func TestCollaborative_NoOverlapDiscarded(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5),
		rating(2, songB, 5), rating(2, songC, 1),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	if got := cf.Neighbors(1); len(got) != 0 {
		t.Errorf("Neighbors(1) = %v, want none", got)
	}
	if _, ok := cf.Score(1, songC); ok {
		t.Error("Score(1, C) has a signal from a zero-similarity user")
	}
}

func TestCollaborative_WeightedMean(t *testing.T) {
	// Target {A}: user 2 {A, C} has similarity 1/2, user 3 {A, B, C} has 1/3.
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 4),
		rating(2, songA, 4), rating(2, songC, 5),
		rating(3, songA, 1), rating(3, songB, 1), rating(3, songC, 1),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	// mean = (1/2*5 + 1/3*1) / (1/2 + 1/3) = (17/6) / (5/6) = 3.4
	want := (3.4 - 1) / 4
	got, ok := cf.Score(1, songC)
	if !ok {
		t.Fatal("Score(1, C) has no signal")
	}
	if math.Abs(got-want) > epsilon {
		t.Errorf("Score(1, C) = %v, want %v", got, want)
	}
}

func TestCollaborative_TopKAmongRaters(t *testing.T) {
	// Users 2 and 3 are the closest to the target but never rated D;
	// K=1 must still find user 5, the closest neighbor who did.
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5), rating(1, songB, 5),
		rating(2, songA, 5), rating(2, songB, 5),
		rating(3, songA, 5), rating(3, songB, 5),
		rating(4, songA, 5), rating(4, songC, 1), rating(4, songD, 2),
		rating(5, songA, 5), rating(5, songB, 1), rating(5, songC, 1), rating(5, songD, 5),
	})

	cfg := DefaultKNNConfig()
	cfg.K = 1
	cf := NewCollaborative(cfg, idx, nil)

	// sim(1,4) = 1/4, sim(1,5) = 2/4: user 5 ranks above user 4.
	got, ok := cf.Score(1, songD)
	if !ok {
		t.Fatal("Score(1, D) has no signal")
	}
	if got != 1.0 {
		t.Errorf("Score(1, D) = %v, want 1.0 (user 5 only)", got)
	}

	cfg.K = 2
	cf = NewCollaborative(cfg, idx, nil)
	// (0.5*5 + 0.25*2) / 0.75 = 4 -> 0.75
	got, _ = cf.Score(1, songD)
	if math.Abs(got-0.75) > epsilon {
		t.Errorf("Score(1, D) with K=2 = %v, want 0.75", got)
	}
}

func TestCollaborative_TieBreakByUserID(t *testing.T) {
	// Users 7 and 3 have identical similarity; with K=1 user 3 must be used.
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5),
		rating(7, songA, 5), rating(7, songB, 5),
		rating(3, songA, 5), rating(3, songB, 1),
	})
	cfg := DefaultKNNConfig()
	cfg.K = 1
	cf := NewCollaborative(cfg, idx, nil)

	neighbors := cf.Neighbors(1)
	if len(neighbors) != 2 || neighbors[0].UserID != 3 || neighbors[1].UserID != 7 {
		t.Fatalf("Neighbors(1) = %v, want users [3 7]", neighbors)
	}

	for i := 0; i < 20; i++ {
		got, ok := cf.Score(1, songB)
		if !ok || got != 0 {
			t.Fatalf("Score(1, B) = %v, %v, want 0 from user 3", got, ok)
		}
	}
}

func TestCollaborative_RatingScale(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 8),
		rating(2, songA, 8), rating(2, songB, 10),
		rating(3, songA, 8), rating(3, songC, 15), // above the scale
	})
	cf := NewCollaborative(KNNConfig{K: 5, RatingMin: 0, RatingMax: 10}, idx, nil)

	if got, _ := cf.Score(1, songB); got != 1.0 {
		t.Errorf("Score(1, B) = %v, want 1.0", got)
	}
	if got, _ := cf.Score(1, songC); got != 1.0 {
		t.Errorf("Score(1, C) = %v, want clamped 1.0", got)
	}
}

func TestCollaborative_Predict(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5), rating(1, songB, 3),
		rating(2, songA, 5), rating(2, songB, 3), rating(2, songC, 4),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	got := cf.Predict(1, []int{songC, songD})
	want := map[int]float64{songC: 0.75}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Predict() = %v, want %v", got, want)
	}
}

func TestCollaborative_PredictGroup(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		// members 1 and 2 share song A
		rating(1, songA, 5),
		rating(2, songA, 5), rating(2, songB, 5),
		// outsider 3 overlaps member 1 and rated C
		rating(3, songA, 3), rating(3, songC, 1),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	got := cf.PredictGroup([]int{1, 2, 2}, []int{songB, songC, songD})

	// Member 1 sees B through member 2 (5 -> 1.0) and C through user 3 (1 -> 0).
	// Member 2 sees C through user 3 (1 -> 0) and has no other neighbor with B.
	if b, ok := got[songB]; !ok || b != 1.0 {
		t.Errorf("PredictGroup()[B] = %v, %v, want 1.0", b, ok)
	}
	if c, ok := got[songC]; !ok || c != 0 {
		t.Errorf("PredictGroup()[C] = %v, %v, want 0", c, ok)
	}
	if _, ok := got[songD]; ok {
		t.Error("PredictGroup()[D] present, want no signal")
	}
}

func TestCollaborative_PredictGroupAverages(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5),
		rating(2, songB, 5),
		rating(3, songA, 5), rating(3, songC, 5),
		rating(4, songB, 5), rating(4, songC, 1),
	})
	cf := NewCollaborative(DefaultKNNConfig(), idx, nil)

	got := cf.PredictGroup([]int{1, 2}, []int{songC})
	// member 1 -> user 3 -> 1.0, member 2 -> user 4 -> 0.0
	if c := got[songC]; math.Abs(c-0.5) > epsilon {
		t.Errorf("PredictGroup()[C] = %v, want 0.5", c)
	}
}

func TestCollaborative_Deterministic(t *testing.T) {
	ratings := make([]models.Rating, 0, 400)
	for u := 1; u <= 40; u++ {
		for s := 1; s <= 30; s++ {
			if (u*7+s*3)%5 == 0 || (u+s)%11 == 0 {
				ratings = append(ratings, rating(u, s, 1+(u+s)%5))
			}
		}
	}
	songs := make([]int, 30)
	for i := range songs {
		songs[i] = i + 1
	}

	cfg := DefaultKNNConfig()
	cfg.K = 3
	first := NewCollaborative(cfg, NewRatingIndex(ratings), nil).Predict(5, songs)
	for i := 0; i < 10; i++ {
		again := NewCollaborative(cfg, NewRatingIndex(ratings), nil).Predict(5, songs)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Predict() run %d = %v, want %v", i, again, first)
		}
	}
}

// mapCache is a minimal NeighborCache for tests.
type mapCache struct {
	mu   sync.Mutex
	m    map[int][]Neighbor
	gets int
	adds int
}

func (c *mapCache) Get(userID int) ([]Neighbor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	n, ok := c.m[userID]
	return n, ok
}

func (c *mapCache) Add(userID int, n []Neighbor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adds++
	c.m[userID] = n
}

func TestCollaborative_UsesCache(t *testing.T) {
	idx := NewRatingIndex([]models.Rating{
		rating(1, songA, 5),
		rating(2, songA, 5), rating(2, songB, 1),
	})
	mc := &mapCache{m: make(map[int][]Neighbor)}
	cf := NewCollaborative(DefaultKNNConfig(), idx, mc)

	first, _ := cf.Score(1, songB)
	second, _ := cf.Score(1, songB)

	if first != second {
		t.Errorf("cached Score() = %v, want %v", second, first)
	}
	if mc.adds != 1 {
		t.Errorf("cache adds = %d, want 1", mc.adds)
	}
	if mc.gets != 2 {
		t.Errorf("cache gets = %d, want 2", mc.gets)
	}
}

func TestNewCollaborative_Defaults(t *testing.T) {
	cf := NewCollaborative(KNNConfig{K: -1, RatingMin: 5, RatingMax: 5}, nil, nil)
	if cf.config.K != 20 {
		t.Errorf("K = %d, want 20", cf.config.K)
	}
	if cf.config.RatingMin != 1 || cf.config.RatingMax != 5 {
		t.Errorf("rating scale = %d..%d, want 1..5", cf.config.RatingMin, cf.config.RatingMax)
	}
	if cf.Index() == nil {
		t.Error("Index() = nil, want empty index")
	}
}
