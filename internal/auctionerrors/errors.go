package auctionerrors

import (
	"errors"
	"fmt"
)

// Lifecycle and admission errors
var (
	ErrInvalidRange      = errors.New("invalid time range")
	ErrInvalidState      = errors.New("operation not allowed in current auction state")
	ErrTooEarly          = errors.New("operation attempted before its scheduled time")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrConsecutiveBidder = errors.New("participant already holds the latest bid")
	ErrNotResolved       = errors.New("auction has no winner")
)

// Repository-level errors
var (
	ErrNotFound            = errors.New("not found")
	ErrAuctionNotFound     = fmt.Errorf("auction %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrAlreadyExists       = errors.New("already exists")
	ErrHasBids             = errors.New("bids are registered")
)

// business logic errors
var (
	ErrInvalidBid      = errors.New("invalid bid")
	ErrInvalidArgument = errors.New("invalid argument")
)
