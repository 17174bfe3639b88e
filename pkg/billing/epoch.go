package billing

import "time"

// TimeFromEpoch converts Stripe's seconds-since-epoch fields to a timestamp.
// Zero and negative values mean the field was absent from the payload.
func TimeFromEpoch(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
