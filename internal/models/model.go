package models

import (
	"fmt"
	"time"

	"auction-tracker/internal/auctionerrors"
)

// Participant represents a registered bidder.
// Identifier equality is entity equality.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	BirthDate time.Time `json:"birth_date"`
}

// Same reports whether both values describe the same participant
func (p Participant) Same(other Participant) bool {
	return p.ID == other.ID
}

// Bid represents a participant's offer on an auction
type Bid struct {
	BidID         string    `json:"bid_id"`
	AuctionID     string    `json:"auction_id"`
	ParticipantID string    `json:"participant_id"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBid builds a bid and rejects non-positive amounts or a missing bidder.
func NewBid(bidID, auctionID, participantID string, amount float64, createdAt time.Time) (Bid, error) {
	if participantID == "" {
		return Bid{}, fmt.Errorf("new bid: %w - missing participant", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return Bid{}, fmt.Errorf("new bid: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	return Bid{
		BidID:         bidID,
		AuctionID:     auctionID,
		ParticipantID: participantID,
		Amount:        amount,
		CreatedAt:     createdAt,
	}, nil
}
