package helpers

import (
	"time"

	model "auction-tracker/internal/models"
)

const DateLayout = "2006-01-02"

// Request/Response DTOs
type CreateParticipantRequest struct {
	ID        string `json:"id" binding:"required,nocontrol"`
	Name      string `json:"name" binding:"required,nocontrol"`
	Email     string `json:"email" binding:"required,email"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

type ParticipantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

type CreateAuctionRequest struct {
	Name       string     `json:"name" binding:"required,nocontrol"`
	MinimumBid *float64   `json:"minimum_bid" binding:"required,gte=0"`
	StartTime  *time.Time `json:"start_time" binding:"required"`
	EndTime    *time.Time `json:"end_time" binding:"required"`
}

type EditAuctionRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,nocontrol"`
	MinimumBid *float64 `json:"minimum_bid" binding:"omitempty,gte=0"`
}

type ListAuctionsQuery struct {
	State      string `form:"state"`
	StartAfter string `form:"start_after"`
	EndBefore  string `form:"end_before"`
}

type PlaceBidRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
}

type AuctionResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MinimumBid float64 `json:"minimum_bid"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	State      string  `json:"state"`
	BidCount   int     `json:"bid_count"`
	HighestBid float64 `json:"highest_bid"`
	LowestBid  float64 `json:"lowest_bid"`
}

type BidResponse struct {
	BidID         string  `json:"bid_id"`
	AuctionID     string  `json:"auction_id"`
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
	CreatedAt     string  `json:"created_at"`
}

type WinnerResponse struct {
	AuctionID  string      `json:"auction_id"`
	State      string      `json:"state"`
	WinningBid BidResponse `json:"winning_bid"`
	HighestBid float64     `json:"highest_bid"`
	LowestBid  float64     `json:"lowest_bid"`
}

func NewParticipantResponse(p model.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		BirthDate: p.BirthDate.Format(DateLayout),
	}
}

func NewAuctionResponse(a *model.Auction) AuctionResponse {
	return AuctionResponse{
		ID:         a.ID(),
		Name:       a.Name(),
		MinimumBid: a.MinimumBid(),
		StartTime:  a.StartTime().UTC().Format(time.RFC3339),
		EndTime:    a.EndTime().UTC().Format(time.RFC3339),
		State:      string(a.State()),
		BidCount:   a.BidCount(),
		HighestBid: a.HighestBidValue(),
		LowestBid:  a.LowestBidValue(),
	}
}

func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:         b.BidID,
		AuctionID:     b.AuctionID,
		ParticipantID: b.ParticipantID,
		Amount:        b.Amount,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
