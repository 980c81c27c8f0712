package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"auction-tracker/internal/auctionerrors"

	"github.com/shopspring/decimal"
)

// AuctionState is the lifecycle state of an auction
type AuctionState string

const (
	StateInactive         AuctionState = "INACTIVE"
	StateOpen             AuctionState = "OPEN"
	StateClosedWithWinner AuctionState = "CLOSED_WITH_WINNER"
	StateClosedNoBids     AuctionState = "CLOSED_NO_BIDS"
)

// ParseAuctionState converts the wire/storage representation into an AuctionState
func ParseAuctionState(s string) (AuctionState, error) {
	state := AuctionState(strings.ToUpper(strings.TrimSpace(s)))
	switch state {
	case StateInactive, StateOpen, StateClosedWithWinner, StateClosedNoBids:
		return state, nil
	}
	return "", fmt.Errorf("unknown auction state %q", s)
}

// Closed reports whether the state is terminal
func (s AuctionState) Closed() bool {
	return s == StateClosedWithWinner || s == StateClosedNoBids
}

// 4 decimal places; amounts are compared at this precision
const monetaryPrecision int32 = 4

func toDecimal(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(monetaryPrecision)
}

// AuctionRecord is the flat, persistable shape of an auction.
// Bids are in acceptance order.
type AuctionRecord struct {
	ID         string
	Name       string
	MinimumBid float64
	StartTime  time.Time
	EndTime    time.Time
	State      AuctionState
	Bids       []Bid
}

// Auction governs the bidding lifecycle of a single item.
// It is not safe for concurrent use; callers serialize access per auction.
type Auction struct {
	id         string
	name       string
	minimumBid float64
	startTime  time.Time
	endTime    time.Time
	state      AuctionState
	bids       []Bid
}

// NewAuction creates an INACTIVE auction. The window must be non-empty.
func NewAuction(id, name string, minimumBid float64, startTime, endTime time.Time) (*Auction, error) {
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("new auction %q: %w - end %s is not after start %s",
			name, auctionerrors.ErrInvalidRange, endTime.Format(time.RFC3339), startTime.Format(time.RFC3339))
	}
	return &Auction{
		id:         id,
		name:       name,
		minimumBid: minimumBid,
		startTime:  startTime,
		endTime:    endTime,
		state:      StateInactive,
	}, nil
}

// RestoreAuction rebuilds an auction from storage without re-validating it.
func RestoreAuction(rec AuctionRecord) *Auction {
	return &Auction{
		id:         rec.ID,
		name:       rec.Name,
		minimumBid: rec.MinimumBid,
		startTime:  rec.StartTime,
		endTime:    rec.EndTime,
		state:      rec.State,
		bids:       append([]Bid(nil), rec.Bids...),
	}
}

// Record returns a detached snapshot suitable for persistence
func (a *Auction) Record() AuctionRecord {
	return AuctionRecord{
		ID:         a.id,
		Name:       a.name,
		MinimumBid: a.minimumBid,
		StartTime:  a.startTime,
		EndTime:    a.endTime,
		State:      a.state,
		Bids:       a.Bids(),
	}
}

func (a *Auction) ID() string { return a.id }
func (a *Auction) Name() string { return a.name }
func (a *Auction) MinimumBid() float64 { return a.minimumBid }
func (a *Auction) StartTime() time.Time { return a.startTime }
func (a *Auction) EndTime() time.Time { return a.endTime }
func (a *Auction) State() AuctionState { return a.state }
func (a *Auction) HasBids() bool { return len(a.bids) > 0 }
func (a *Auction) BidCount() int { return len(a.bids) }

// Open moves an INACTIVE auction to OPEN once its start time has arrived.
func (a *Auction) Open(now time.Time) error {
	if a.state != StateInactive {
		return fmt.Errorf("open auction %s: %w - state is %s", a.id, auctionerrors.ErrInvalidState, a.state)
	}
	if now.Before(a.startTime) {
		return fmt.Errorf("open auction %s: %w - starts at %s", a.id, auctionerrors.ErrTooEarly, a.startTime.Format(time.RFC3339))
	}
	a.state = StateOpen
	return nil
}

// SubmitBid applies the admission rule and appends the bid when it passes.
func (a *Auction) SubmitBid(bid Bid) error {
	if a.state != StateOpen {
		return fmt.Errorf("submit bid on auction %s: %w - state is %s", a.id, auctionerrors.ErrInvalidState, a.state)
	}

	amount := toDecimal(bid.Amount)
	if len(a.bids) == 0 {
		if amount.LessThan(toDecimal(a.minimumBid)) {
			return fmt.Errorf("submit bid on auction %s: %w - minimum bid is %.2f", a.id, auctionerrors.ErrBidTooLow, a.minimumBid)
		}
	} else {
		last := a.bids[len(a.bids)-1]
		if !amount.GreaterThan(toDecimal(last.Amount)) {
			return fmt.Errorf("submit bid on auction %s: %w - current highest bid is %.2f", a.id, auctionerrors.ErrBidTooLow, last.Amount)
		}
		if last.ParticipantID == bid.ParticipantID {
			return fmt.Errorf("submit bid on auction %s: %w - participant %s", a.id, auctionerrors.ErrConsecutiveBidder, bid.ParticipantID)
		}
	}

	a.bids = append(a.bids, bid)
	return nil
}

// Close resolves an OPEN auction once its end time has passed.
func (a *Auction) Close(now time.Time) error {
	if a.state != StateOpen {
		return fmt.Errorf("close auction %s: %w - state is %s", a.id, auctionerrors.ErrInvalidState, a.state)
	}
	if now.Before(a.endTime) {
		return fmt.Errorf("close auction %s: %w - ends at %s", a.id, auctionerrors.ErrTooEarly, a.endTime.Format(time.RFC3339))
	}
	if len(a.bids) == 0 {
		a.state = StateClosedNoBids
	} else {
		a.state = StateClosedWithWinner
	}
	return nil
}

// Edit renames the auction and/or changes its minimum bid. Nil fields are left unchanged.
func (a *Auction) Edit(name *string, minimumBid *float64) error {
	if a.state != StateInactive {
		return fmt.Errorf("edit auction %s: %w - state is %s", a.id, auctionerrors.ErrInvalidState, a.state)
	}
	if name != nil {
		a.name = *name
	}
	if minimumBid != nil {
		a.minimumBid = *minimumBid
	}
	return nil
}

// WinningBid returns the highest accepted bid of a resolved auction.
func (a *Auction) WinningBid() (Bid, error) {
	if a.state != StateClosedWithWinner || len(a.bids) == 0 {
		return Bid{}, fmt.Errorf("winning bid of auction %s: %w - state is %s", a.id, auctionerrors.ErrNotResolved, a.state)
	}
	winning := a.bids[0]
	for _, b := range a.bids[1:] {
		if toDecimal(b.Amount).GreaterThan(toDecimal(winning.Amount)) {
			winning = b
		}
	}
	return winning, nil
}

// HighestBidValue returns 0 when there are no bids
func (a *Auction) HighestBidValue() float64 {
	if len(a.bids) == 0 {
		return 0
	}
	highest := a.bids[0].Amount
	for _, b := range a.bids[1:] {
		if b.Amount > highest {
			highest = b.Amount
		}
	}
	return highest
}

// LowestBidValue returns 0 when there are no bids
func (a *Auction) LowestBidValue() float64 {
	if len(a.bids) == 0 {
		return 0
	}
	lowest := a.bids[0].Amount
	for _, b := range a.bids[1:] {
		if b.Amount < lowest {
			lowest = b.Amount
		}
	}
	return lowest
}

// Bids returns a copy of the accepted bids in acceptance order
func (a *Auction) Bids() []Bid {
	return append([]Bid(nil), a.bids...)
}

// OrderedBids returns a copy of the accepted bids sorted ascending by amount
func (a *Auction) OrderedBids() []Bid {
	ordered := a.Bids()
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Amount < ordered[j].Amount
	})
	return ordered
}

// HasBidFrom reports whether the participant holds any accepted bid here
func (a *Auction) HasBidFrom(participantID string) bool {
	for _, b := range a.bids {
		if b.ParticipantID == participantID {
			return true
		}
	}
	return false
}
