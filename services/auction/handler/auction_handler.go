package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	auction "auction-tracker/internal/auctionService"
	model "auction-tracker/internal/models"
	"auction-tracker/internal/notifier"
	"auction-tracker/services/auction/helpers"
	"auction-tracker/utils"

	"github.com/gin-gonic/gin"
)

type AuctionManagerInterface interface {
	AddParticipant(ctx context.Context, p model.Participant) (model.Participant, error)
	FindParticipant(ctx context.Context, participantID string) (model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)
	RemoveParticipant(ctx context.Context, participantID string) error

	CreateAuction(ctx context.Context, name string, minimumBid float64, start, end time.Time) (*model.Auction, error)
	FindAuction(ctx context.Context, auctionID string) (*model.Auction, error)
	ListAuctions(ctx context.Context, filter auction.AuctionFilter) ([]*model.Auction, error)
	EditAuction(ctx context.Context, auctionID string, edit auction.AuctionEdit) (*model.Auction, error)
	RemoveAuction(ctx context.Context, auctionID string) error
	OpenAuction(ctx context.Context, auctionID string, now time.Time) (*model.Auction, error)
	CloseAuction(ctx context.Context, auctionID string, now time.Time) (*model.Auction, error)

	PlaceBid(ctx context.Context, auctionID, participantID string, amount float64, now time.Time) (model.Bid, error)
}

// StatsProvider exposes notification delivery statistics
type StatsProvider interface {
	Stats() notifier.Stats
}

type AuctionHandler struct {
	service AuctionManagerInterface
	clock   func() time.Time
}

// NewAuctionHandler wires a handler; a nil clock means time.Now
func NewAuctionHandler(service AuctionManagerInterface, clock func() time.Time) *AuctionHandler {
	if clock == nil {
		clock = time.Now
	}
	helpers.RegisterValidators()
	return &AuctionHandler{service: service, clock: clock}
}

// CreateParticipantHandler handles POST /participants
func (h *AuctionHandler) CreateParticipantHandler(c *gin.Context) {
	var req helpers.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateParticipantHandler", err)
		return
	}
	birthDate, err := time.Parse(helpers.DateLayout, req.BirthDate)
	if err != nil {
		helpers.HandleBindError(c, "CreateParticipantHandler", err)
		return
	}

	p, err := h.service.AddParticipant(c.Request.Context(), model.Participant{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: birthDate,
	})
	if err != nil {
		helpers.HandleServiceError(c, "CreateParticipantHandler", err, map[string]any{"participant_id": req.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewParticipantResponse(p), "participant registered successfully")
	helpers.LogSuccess("CreateParticipantHandler", "participant registered successfully", map[string]any{
		"participant_id": p.ID,
	})
}

// ListParticipantsHandler handles GET /participants
func (h *AuctionHandler) ListParticipantsHandler(c *gin.Context) {
	participants, err := h.service.ListParticipants(c.Request.Context())
	if err != nil {
		helpers.HandleServiceError(c, "ListParticipantsHandler", err, nil)
		return
	}

	resp := make([]helpers.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, helpers.NewParticipantResponse(p))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "participants retrieved successfully")
}

// GetParticipantHandler handles GET /participants/:id
func (h *AuctionHandler) GetParticipantHandler(c *gin.Context) {
	participantID := c.Param("id")
	p, err := h.service.FindParticipant(c.Request.Context(), participantID)
	if err != nil {
		helpers.HandleServiceError(c, "GetParticipantHandler", err, map[string]any{"participant_id": participantID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewParticipantResponse(p), "participant retrieved successfully")
}

// DeleteParticipantHandler handles DELETE /participants/:id
func (h *AuctionHandler) DeleteParticipantHandler(c *gin.Context) {
	participantID := c.Param("id")
	if err := h.service.RemoveParticipant(c.Request.Context(), participantID); err != nil {
		helpers.HandleServiceError(c, "DeleteParticipantHandler", err, map[string]any{"participant_id": participantID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "participant removed successfully")
	helpers.LogSuccess("DeleteParticipantHandler", "participant removed successfully", map[string]any{
		"participant_id": participantID,
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.CreateAuction(c.Request.Context(), req.Name, *req.MinimumBid, req.StartTime.UTC(), req.EndTime.UTC())
	if err != nil {
		helpers.HandleServiceError(c, "CreateAuctionHandler", err, map[string]any{"name": req.Name})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(a), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":  a.ID(),
		"name":        a.Name(),
		"minimum_bid": a.MinimumBid(),
	})
}

// ListAuctionsHandler handles GET /auctions?state=&start_after=&end_before=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var query helpers.ListAuctionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}
	filter, err := helpers.ParseAuctionFilter(query)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid query parameter: %w", err), "invalid query parameter")
		utils.Warn("ListAuctionsHandler: invalid query", map[string]any{"error": err.Error()})
		return
	}

	auctions, err := h.service.ListAuctions(c.Request.Context(), filter)
	if err != nil {
		helpers.HandleServiceError(c, "ListAuctionsHandler", err, nil)
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.NewAuctionResponse(a))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{"count": len(resp)})
}

// GetAuctionHandler handles GET /auctions/:id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	a, err := h.service.FindAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction retrieved successfully")
}

// EditAuctionHandler handles PATCH /auctions/:id
func (h *AuctionHandler) EditAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	var req helpers.EditAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EditAuctionHandler", err)
		return
	}

	a, err := h.service.EditAuction(c.Request.Context(), auctionID, auction.AuctionEdit{
		Name:       req.Name,
		MinimumBid: req.MinimumBid,
	})
	if err != nil {
		helpers.HandleServiceError(c, "EditAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction updated successfully")
	helpers.LogSuccess("EditAuctionHandler", "auction updated successfully", map[string]any{"auction_id": auctionID})
}

// DeleteAuctionHandler handles DELETE /auctions/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	if err := h.service.RemoveAuction(c.Request.Context(), auctionID); err != nil {
		helpers.HandleServiceError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction removed successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction removed successfully", map[string]any{"auction_id": auctionID})
}

// OpenAuctionHandler handles POST /auctions/:id/open
func (h *AuctionHandler) OpenAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	a, err := h.service.OpenAuction(c.Request.Context(), auctionID, h.clock())
	if err != nil {
		helpers.HandleServiceError(c, "OpenAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction opened successfully")
	helpers.LogSuccess("OpenAuctionHandler", "auction opened successfully", map[string]any{"auction_id": auctionID})
}

// CloseAuctionHandler handles POST /auctions/:id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	auctionID := c.Param("id")
	a, err := h.service.CloseAuction(c.Request.Context(), auctionID, h.clock())
	if err != nil {
		helpers.HandleServiceError(c, "CloseAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"auction_id": auctionID,
		"state":      a.State(),
	})
}

// PlaceBidHandler handles POST /auctions/:id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("id")
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.ParticipantID, req.Amount, h.clock())
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id":     auctionID,
			"participant_id": req.ParticipantID,
			"amount":         req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":         bid.BidID,
		"auction_id":     bid.AuctionID,
		"participant_id": bid.ParticipantID,
		"amount":         bid.Amount,
	})
}

// GetBidsHandler handles GET /auctions/:id/bids, ascending by amount
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("id")
	a, err := h.service.FindAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	bids := a.OrderedBids()
	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetWinnerHandler handles GET /auctions/:id/winner
func (h *AuctionHandler) GetWinnerHandler(c *gin.Context) {
	auctionID := c.Param("id")
	a, err := h.service.FindAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.HandleServiceError(c, "GetWinnerHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	winning, err := a.WinningBid()
	if err != nil {
		helpers.HandleServiceError(c, "GetWinnerHandler", err, map[string]any{
			"auction_id": auctionID,
			"state":      a.State(),
		})
		return
	}

	resp := helpers.WinnerResponse{
		AuctionID:  a.ID(),
		State:      string(a.State()),
		WinningBid: helpers.NewBidResponse(winning),
		HighestBid: a.HighestBidValue(),
		LowestBid:  a.LowestBidValue(),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinnerHandler", "winning bid retrieved successfully", map[string]any{
		"auction_id":     auctionID,
		"participant_id": winning.ParticipantID,
		"amount":         winning.Amount,
	})
}

type NotificationHandler struct {
	stats StatsProvider
}

func NewNotificationHandler(stats StatsProvider) *NotificationHandler {
	return &NotificationHandler{stats: stats}
}

// StatsHandler handles GET /notifications/stats
func (h *NotificationHandler) StatsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.stats.Stats(), "notification stats retrieved successfully")
}
