package model

import "time"

type Referral struct {
	ID        int
	InviterID int
	InviteeID int
	Rewarded  bool
	CreatedAt time.Time
}
