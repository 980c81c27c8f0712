package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	auction "auction-tracker/internal/auctionService"
	"auction-tracker/internal/auctionerrors"
	model "auction-tracker/internal/models"
	"auction-tracker/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err to a status, writes the error body and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrParticipantNotFound):
		return http.StatusNotFound, "participant not found"
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, auctionerrors.ErrInvalidRange):
		return http.StatusBadRequest, "invalid time range"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, auctionerrors.ErrInvalidState):
		return http.StatusConflict, "operation not allowed in current auction state"
	case errors.Is(err, auctionerrors.ErrTooEarly):
		return http.StatusConflict, "too early for this transition"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrConsecutiveBidder):
		return http.StatusConflict, "participant already holds the latest bid"
	case errors.Is(err, auctionerrors.ErrHasBids):
		return http.StatusConflict, "bids exist"
	case errors.Is(err, auctionerrors.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, auctionerrors.ErrNotResolved):
		return http.StatusUnprocessableEntity, "auction has no winner"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ParseAuctionFilter converts query parameters into a filter; empty parameters do not filter
func ParseAuctionFilter(q ListAuctionsQuery) (auction.AuctionFilter, error) {
	var filter auction.AuctionFilter
	if q.State != "" {
		state, err := model.ParseAuctionState(q.State)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}
	if q.StartAfter != "" {
		t, err := time.Parse(time.RFC3339, q.StartAfter)
		if err != nil {
			return filter, fmt.Errorf("start_after: %w", err)
		}
		filter.StartAfter = &t
	}
	if q.EndBefore != "" {
		t, err := time.Parse(time.RFC3339, q.EndBefore)
		if err != nil {
			return filter, fmt.Errorf("end_before: %w", err)
		}
		filter.EndBefore = &t
	}
	return filter, nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
