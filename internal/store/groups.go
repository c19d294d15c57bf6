// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/encore/internal/models"
)

// PutUser creates or replaces a user. Genres are stored as a sorted set.
// Instrument and proficiency are stored as given; they are validated when
// a profile is built.
func (s *Store) PutUser(ctx context.Context, user models.User) error {
	return s.do(ctx, "put_user", func() error {
		if err := checkIDs("user", user.ID); err != nil {
			return err
		}
		user.Genres = genreSet(user.Genres)
		return s.db.Update(func(txn *badger.Txn) error {
			return setJSON(txn, userKey(user.ID), &user)
		})
	})
}

// User returns one user or ErrNotFound.
func (s *Store) User(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := s.do(ctx, "get_user", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, userKey(id), &user)
		})
	})
	if err != nil {
		return models.User{}, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

// Users returns every user in ascending ID order.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.do(ctx, "list_users", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var err error
			users, err = scanJSON[models.User](txn, []byte(prefixUser))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// PutGroup creates or replaces a group. Member IDs are deduplicated and
// sorted; every member must already exist.
func (s *Store) PutGroup(ctx context.Context, group models.Group) error {
	return s.do(ctx, "put_group", func() error {
		if err := checkIDs("group", group.ID); err != nil {
			return err
		}
		group.MemberIDs = intSet(group.MemberIDs)
		return s.db.Update(func(txn *badger.Txn) error {
			for _, id := range group.MemberIDs {
				var member models.User
				if err := getJSON(txn, userKey(id), &member); err != nil {
					return fmt.Errorf("group %d member %d: %w", group.ID, id, err)
				}
			}
			return setJSON(txn, groupKey(group.ID), &group)
		})
	})
}

// Group returns one group or ErrNotFound.
func (s *Store) Group(ctx context.Context, id int) (models.Group, error) {
	var group models.Group
	err := s.do(ctx, "get_group", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, groupKey(id), &group)
		})
	})
	if err != nil {
		return models.Group{}, fmt.Errorf("group %d: %w", id, err)
	}
	return group, nil
}

// GroupMembers returns the users of a group in ascending ID order, read in
// a single transaction.
func (s *Store) GroupMembers(ctx context.Context, groupID int) ([]models.User, error) {
	var members []models.User
	err := s.do(ctx, "get_group_members", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			var group models.Group
			if err := getJSON(txn, groupKey(groupID), &group); err != nil {
				return err
			}
			members = make([]models.User, 0, len(group.MemberIDs))
			for _, id := range group.MemberIDs {
				var user models.User
				if err := getJSON(txn, userKey(id), &user); err != nil {
					return fmt.Errorf("member %d: %w", id, err)
				}
				members = append(members, user)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("group %d: %w", groupID, err)
	}
	return members, nil
}

// PutCampaign creates or replaces a campaign. Its group must exist.
func (s *Store) PutCampaign(ctx context.Context, campaign models.Campaign) error {
	return s.do(ctx, "put_campaign", func() error {
		if err := checkIDs("campaign", campaign.ID); err != nil {
			return err
		}
		return s.db.Update(func(txn *badger.Txn) error {
			var group models.Group
			if err := getJSON(txn, groupKey(campaign.GroupID), &group); err != nil {
				return fmt.Errorf("campaign %d group %d: %w", campaign.ID, campaign.GroupID, err)
			}
			return setJSON(txn, campaignKey(campaign.ID), &campaign)
		})
	})
}

// CreateCampaign stores a new campaign under the next free ID, one past the
// highest stored campaign ID, and returns it with the ID filled in. Its
// group must exist. A zero CreatedAt is set to the current time.
func (s *Store) CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	s.campaignMu.Lock()
	defer s.campaignMu.Unlock()

	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now().UTC()
	}

	err := s.do(ctx, "create_campaign", func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			var group models.Group
			if err := getJSON(txn, groupKey(campaign.GroupID), &group); err != nil {
				return fmt.Errorf("group %d: %w", campaign.GroupID, err)
			}
			last, err := lastCampaignID(txn)
			if err != nil {
				return err
			}
			campaign.ID = last + 1
			return setJSON(txn, campaignKey(campaign.ID), &campaign)
		})
	})
	if err != nil {
		return models.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}

	s.logger.Debug().
		Int("campaign_id", campaign.ID).
		Int("group_id", campaign.GroupID).
		Msg("campaign created")
	return campaign, nil
}

// lastCampaignID returns the highest stored campaign ID, or 0 when there
// are none.
func lastCampaignID(txn *badger.Txn) (int, error) {
	prefix := []byte(prefixCampaign)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.Reverse = true
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	// Reverse iteration starts at the largest key not above the seek key
	it.Seek(append(append([]byte{}, prefix...), 0xFF))
	if !it.ValidForPrefix(prefix) {
		return 0, nil
	}

	key := it.Item().Key()
	id, err := strconv.Atoi(string(key[len(prefix):]))
	if err != nil {
		return 0, fmt.Errorf("%w: campaign key %q", ErrInvalidRecord, key)
	}
	return id, nil
}

// Campaign returns one campaign or ErrNotFound.
func (s *Store) Campaign(ctx context.Context, id int) (models.Campaign, error) {
	var campaign models.Campaign
	err := s.do(ctx, "get_campaign", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			return getJSON(txn, campaignKey(id), &campaign)
		})
	})
	if err != nil {
		return models.Campaign{}, fmt.Errorf("campaign %d: %w", id, err)
	}
	return campaign, nil
}

func genreSet(genres []models.Genre) []models.Genre {
	if len(genres) == 0 {
		return []models.Genre{}
	}
	seen := make(map[models.Genre]struct{}, len(genres))
	out := make([]models.Genre, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func intSet(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
