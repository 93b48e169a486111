package entity

import "time"

// Chat is one negotiation thread. There is exactly one per
// (gear, buyer, seller) triple; starting a chat again returns the same thread.
type Chat struct {
	ID       string `json:"id"`
	GearID   string `json:"gear_id"`
	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`

	Messages []Message `json:"messages"`

	// HasDeposit transitions false -> true only through deposit placement and
	// gates meetup-location sharing.
	HasDeposit     bool            `json:"has_deposit"`
	MeetupLocation *MeetupLocation `json:"meetup_location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Chat) IsParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// UnreadFor counts messages addressed to userID that are still unread,
// i.e. sent by the counterpart (or the system) and not yet marked read.
func (c *Chat) UnreadFor(userID string) int {
	count := 0
	for _, m := range c.Messages {
		if m.SenderID != userID && !m.IsRead {
			count++
		}
	}
	return count
}
