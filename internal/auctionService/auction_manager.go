package auction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-tracker/internal/auctionerrors"
	"auction-tracker/internal/models"
	"auction-tracker/internal/notifier"
	"auction-tracker/internal/repository"
	"auction-tracker/utils"

	"github.com/shopspring/decimal"
)

const winnerSubjectFormat = "Congratulations! You won the auction for %s"

// AuctionFilter narrows ListAuctions. Nil fields do not filter.
type AuctionFilter struct {
	State      *models.AuctionState
	StartAfter *time.Time // keeps auctions starting at or after this instant
	EndBefore  *time.Time // keeps auctions ending at or before this instant
}

// AuctionEdit carries a partial update; nil fields are left unchanged
type AuctionEdit struct {
	Name       *string
	MinimumBid *float64
}

// ProcessSummary reports what a ProcessDue pass changed
type ProcessSummary struct {
	Opened []string
	Closed []string
}

// AuctionManager coordinates auctions, participants and bids against the store
// and triggers winner notification on resolution.
type AuctionManager struct {
	repo     repository.AuctionDB
	notifier notifier.Notifier

	// one mutex per auction id, never removed; admission reads the last bid and appends in one step
	locks sync.Map
}

// NewAuctionManager creates a new AuctionManager instance
func NewAuctionManager(repo repository.AuctionDB, n notifier.Notifier) *AuctionManager {
	return &AuctionManager{
		repo:     repo,
		notifier: n,
	}
}

func (m *AuctionManager) lock(auctionID string) func() {
	v, _ := m.locks.LoadOrStore(auctionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// AddAuction registers a newly constructed auction and returns the stored handle
func (m *AuctionManager) AddAuction(ctx context.Context, a *models.Auction) (*models.Auction, error) {
	if a == nil {
		return nil, fmt.Errorf("service: %w - nil auction", auctionerrors.ErrInvalidArgument)
	}
	if err := m.repo.CreateAuction(ctx, a.Record()); err != nil {
		return nil, fmt.Errorf("service: failed to add auction %s: %w", a.ID(), err)
	}
	return m.FindAuction(ctx, a.ID())
}

// CreateAuction builds an auction with a generated id and registers it
func (m *AuctionManager) CreateAuction(ctx context.Context, name string, minimumBid float64, start, end time.Time) (*models.Auction, error) {
	a, err := models.NewAuction(utils.GenerateID(), name, minimumBid, start, end)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return m.AddAuction(ctx, a)
}

// AddParticipant registers a participant; identifiers must be unique
func (m *AuctionManager) AddParticipant(ctx context.Context, p models.Participant) (models.Participant, error) {
	if p.ID == "" {
		return models.Participant{}, fmt.Errorf("service: %w - empty participant identifier", auctionerrors.ErrInvalidArgument)
	}
	if err := m.repo.CreateParticipant(ctx, p); err != nil {
		return models.Participant{}, fmt.Errorf("service: failed to add participant %s: %w", p.ID, err)
	}
	return m.FindParticipant(ctx, p.ID)
}

// FindAuction loads an auction; unknown ids fail with ErrAuctionNotFound
func (m *AuctionManager) FindAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	rec, err := m.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find auction %s: %w", auctionID, err)
	}
	return models.RestoreAuction(rec), nil
}

// FindParticipant loads a participant; unknown identifiers fail with ErrParticipantNotFound
func (m *AuctionManager) FindParticipant(ctx context.Context, participantID string) (models.Participant, error) {
	p, err := m.repo.GetParticipant(ctx, participantID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("service: failed to find participant %s: %w", participantID, err)
	}
	return p, nil
}

// ListParticipants returns every registered participant
func (m *AuctionManager) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := m.repo.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list participants: %w", err)
	}
	return participants, nil
}

// ListAuctions filters the whole collection. An empty result is not an error.
func (m *AuctionManager) ListAuctions(ctx context.Context, filter AuctionFilter) ([]*models.Auction, error) {
	if filter.StartAfter != nil && filter.EndBefore != nil && filter.StartAfter.After(*filter.EndBefore) {
		return nil, fmt.Errorf("service: %w - start_after %s is later than end_before %s",
			auctionerrors.ErrInvalidRange, filter.StartAfter.Format(time.RFC3339), filter.EndBefore.Format(time.RFC3339))
	}

	records, err := m.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	auctions := make([]*models.Auction, 0, len(records))
	for _, rec := range records {
		if filter.State != nil && rec.State != *filter.State {
			continue
		}
		if filter.StartAfter != nil && rec.StartTime.Before(*filter.StartAfter) {
			continue
		}
		if filter.EndBefore != nil && rec.EndTime.After(*filter.EndBefore) {
			continue
		}
		auctions = append(auctions, models.RestoreAuction(rec))
	}
	return auctions, nil
}

// OpenAuction moves an auction to OPEN
func (m *AuctionManager) OpenAuction(ctx context.Context, auctionID string, now time.Time) (*models.Auction, error) {
	unlock := m.lock(auctionID)
	defer unlock()

	a, err := m.FindAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if err := a.Open(now); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := m.repo.UpdateAuction(ctx, a.Record()); err != nil {
		return nil, fmt.Errorf("service: failed to persist opened auction %s: %w", auctionID, err)
	}
	return a, nil
}

// CloseAuction resolves an auction and, when there is a winner, notifies them.
// Notification outcome is logged only; it never undoes the resolution.
func (m *AuctionManager) CloseAuction(ctx context.Context, auctionID string, now time.Time) (*models.Auction, error) {
	unlock := m.lock(auctionID)
	defer unlock()

	a, err := m.FindAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if err := a.Close(now); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := m.repo.UpdateAuction(ctx, a.Record()); err != nil {
		return nil, fmt.Errorf("service: failed to persist closed auction %s: %w", auctionID, err)
	}

	if a.State() == models.StateClosedWithWinner {
		m.notifyWinner(ctx, a, now)
	}
	return a, nil
}

func (m *AuctionManager) notifyWinner(ctx context.Context, a *models.Auction, now time.Time) {
	fields := map[string]any{"auction_id": a.ID(), "item_name": a.Name()}

	winning, err := a.WinningBid()
	if err != nil {
		fields["error"] = err.Error()
		utils.Error("service: resolved auction has no winning bid", fields)
		return
	}
	fields["participant_id"] = winning.ParticipantID

	winner, err := m.repo.GetParticipant(ctx, winning.ParticipantID)
	if err != nil {
		fields["error"] = err.Error()
		utils.Warn("service: winner notification skipped, participant lookup failed", fields)
		return
	}

	data := map[string]any{
		"winner_name":    winner.Name,
		"item_name":      a.Name(),
		"winning_amount": decimal.NewFromFloat(winning.Amount).StringFixed(2),
		"year":           now.Year(),
	}
	res := m.notifier.Notify(ctx, winner.Email, fmt.Sprintf(winnerSubjectFormat, a.Name()), notifier.WinnerTemplate, data)

	fields["recipient"] = winner.Email
	fields["mode"] = res.Mode
	if !res.Success {
		fields["error"] = res.Error
		utils.Error("service: winner notification failed", fields)
		return
	}
	utils.Info("service: winner notified", fields)
}

// SubmitBid validates a bid against the auction's admission rule and records it
func (m *AuctionManager) SubmitBid(ctx context.Context, auctionID string, bid models.Bid) (models.Bid, error) {
	if bid.AuctionID == "" {
		bid.AuctionID = auctionID
	}
	if bid.AuctionID != auctionID {
		return models.Bid{}, fmt.Errorf("service: %w - bid addressed to auction %s, submitted to %s",
			auctionerrors.ErrInvalidBid, bid.AuctionID, auctionID)
	}
	if bid.BidID == "" {
		bid.BidID = utils.GenerateID()
	}
	validated, err := models.NewBid(bid.BidID, bid.AuctionID, bid.ParticipantID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	unlock := m.lock(auctionID)
	defer unlock()

	a, err := m.FindAuction(ctx, auctionID)
	if err != nil {
		return models.Bid{}, err
	}
	if _, err := m.FindParticipant(ctx, validated.ParticipantID); err != nil {
		return models.Bid{}, err
	}
	if err := a.SubmitBid(validated); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}
	if err := m.repo.RecordBid(ctx, validated); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by participant %s: %w",
			auctionID, validated.ParticipantID, err)
	}
	return validated, nil
}

// PlaceBid builds a bid stamped with now and submits it
func (m *AuctionManager) PlaceBid(ctx context.Context, auctionID, participantID string, amount float64, now time.Time) (models.Bid, error) {
	return m.SubmitBid(ctx, auctionID, models.Bid{
		AuctionID:     auctionID,
		ParticipantID: participantID,
		Amount:        amount,
		CreatedAt:     now,
	})
}

// EditAuction applies a partial update to an INACTIVE auction
func (m *AuctionManager) EditAuction(ctx context.Context, auctionID string, edit AuctionEdit) (*models.Auction, error) {
	unlock := m.lock(auctionID)
	defer unlock()

	a, err := m.FindAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if err := a.Edit(edit.Name, edit.MinimumBid); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := m.repo.UpdateAuction(ctx, a.Record()); err != nil {
		return nil, fmt.Errorf("service: failed to persist edited auction %s: %w", auctionID, err)
	}
	return a, nil
}

// RemoveAuction deletes an auction that is not OPEN and holds no bids
func (m *AuctionManager) RemoveAuction(ctx context.Context, auctionID string) error {
	unlock := m.lock(auctionID)
	defer unlock()

	a, err := m.FindAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if a.State() == models.StateOpen {
		return fmt.Errorf("service: remove auction %s: %w - auction is OPEN", auctionID, auctionerrors.ErrInvalidState)
	}
	if a.HasBids() {
		return fmt.Errorf("service: remove auction %s: %w - %d bids", auctionID, auctionerrors.ErrHasBids, a.BidCount())
	}
	if err := m.repo.DeleteAuction(ctx, auctionID); err != nil {
		return fmt.Errorf("service: failed to remove auction %s: %w", auctionID, err)
	}
	// the mutex stays registered: callers already queued on it and a later
	// AddAuction reusing the id must serialize on the same lock
	return nil
}

// RemoveParticipant deletes a participant holding no bid in any auction
func (m *AuctionManager) RemoveParticipant(ctx context.Context, participantID string) error {
	if _, err := m.FindParticipant(ctx, participantID); err != nil {
		return err
	}
	count, err := m.repo.CountBidsByParticipant(ctx, participantID)
	if err != nil {
		return fmt.Errorf("service: failed to count bids of participant %s: %w", participantID, err)
	}
	if count > 0 {
		return fmt.Errorf("service: remove participant %s: %w - %d bids", participantID, auctionerrors.ErrHasBids, count)
	}
	if err := m.repo.DeleteParticipant(ctx, participantID); err != nil {
		return fmt.Errorf("service: failed to remove participant %s: %w", participantID, err)
	}
	return nil
}

// ProcessDue opens every INACTIVE auction whose start has arrived and closes every
// OPEN auction whose end has passed. Per-auction failures are joined, not fatal.
func (m *AuctionManager) ProcessDue(ctx context.Context, now time.Time) (ProcessSummary, error) {
	var summary ProcessSummary

	records, err := m.repo.ListAuctions(ctx)
	if err != nil {
		return summary, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	var errs []error
	for _, rec := range records {
		state := rec.State
		if state == models.StateInactive && !now.Before(rec.StartTime) {
			if _, err := m.OpenAuction(ctx, rec.ID, now); err != nil {
				if !errors.Is(err, auctionerrors.ErrInvalidState) { // changed since listing
					errs = append(errs, err)
				}
				continue
			}
			summary.Opened = append(summary.Opened, rec.ID)
			state = models.StateOpen
		}
		if state == models.StateOpen && !now.Before(rec.EndTime) {
			if _, err := m.CloseAuction(ctx, rec.ID, now); err != nil {
				if !errors.Is(err, auctionerrors.ErrInvalidState) {
					errs = append(errs, err)
				}
				continue
			}
			summary.Closed = append(summary.Closed, rec.ID)
		}
	}
	return summary, errors.Join(errs...)
}
