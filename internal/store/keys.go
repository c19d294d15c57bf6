// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import "fmt"

// Key layout. IDs are zero-padded to ten digits so lexical order is
// numeric order for non-negative IDs.
//
//	song:<song>
//	user:<user>
//	group:<group>
//	campaign:<campaign>
//	rating:<user>:<song>
//	crec:<campaign>:<song>
//	crating:<campaign>:<song>:<user>
//	meta:rating_version
const (
	prefixSong           = "song:"
	prefixUser           = "user:"
	prefixGroup          = "group:"
	prefixCampaign       = "campaign:"
	prefixRating         = "rating:"
	prefixCampaignRec    = "crec:"
	prefixCampaignRating = "crating:"
)

var keyRatingVersion = []byte("meta:rating_version")

func idKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", prefix, id))
}

func songKey(id int) []byte     { return idKey(prefixSong, id) }
func userKey(id int) []byte     { return idKey(prefixUser, id) }
func groupKey(id int) []byte    { return idKey(prefixGroup, id) }
func campaignKey(id int) []byte { return idKey(prefixCampaign, id) }

func ratingKey(userID, songID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:%010d", prefixRating, userID, songID))
}

func campaignRecPrefix(campaignID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:", prefixCampaignRec, campaignID))
}

func campaignRecKey(campaignID, songID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:%010d", prefixCampaignRec, campaignID, songID))
}

func campaignRatingPrefix(campaignID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:", prefixCampaignRating, campaignID))
}

func campaignRatingKey(campaignID, songID, userID int) []byte {
	return []byte(fmt.Sprintf("%s%010d:%010d:%010d", prefixCampaignRating, campaignID, songID, userID))
}

// checkIDs rejects negative IDs, which would break key ordering.
func checkIDs(kind string, ids ...int) error {
	for _, id := range ids {
		if id < 0 {
			return fmt.Errorf("%w: %s id %d is negative", ErrInvalidRecord, kind, id)
		}
	}
	return nil
}
