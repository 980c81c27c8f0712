package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"auction-tracker/internal/auctionerrors"
	model "auction-tracker/internal/models"
)

// AuctionDB defines the storage interface for auctions, participants and bids
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction model.AuctionRecord) error
	GetAuction(ctx context.Context, auctionID string) (model.AuctionRecord, error)
	UpdateAuction(ctx context.Context, auction model.AuctionRecord) error
	DeleteAuction(ctx context.Context, auctionID string) error
	ListAuctions(ctx context.Context) ([]model.AuctionRecord, error)

	RecordBid(ctx context.Context, bid model.Bid) error
	CountBidsByParticipant(ctx context.Context, participantID string) (int, error)

	CreateParticipant(ctx context.Context, participant model.Participant) error
	GetParticipant(ctx context.Context, participantID string) (model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)
	DeleteParticipant(ctx context.Context, participantID string) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu           sync.RWMutex
	auctions     map[string]model.AuctionRecord // key: auctionID -> value: auction without bids
	bids         map[string][]model.Bid         // key: auctionID -> value: bids in acceptance order
	participants map[string]model.Participant   // key: participantID -> value: participant
	userBids     map[string]int                 // key: participantID -> value: number of recorded bids
	order        []string                       // auction ids in creation order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:     make(map[string]model.AuctionRecord),
		bids:         make(map[string][]model.Bid),
		participants: make(map[string]model.Participant),
		userBids:     make(map[string]int),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.AuctionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if auction.ID == "" {
		return fmt.Errorf("create auction: %w - empty auction id", auctionerrors.ErrInvalidArgument)
	}
	if _, ok := r.auctions[auction.ID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.ID, auctionerrors.ErrAlreadyExists)
	}

	r.auctions[auction.ID] = stripBids(auction)
	r.order = append(r.order, auction.ID)
	for _, bid := range auction.Bids {
		r.appendBid(bid)
	}
	return nil
}

// GetAuction returns an auction together with its bids
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.AuctionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.AuctionRecord{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return r.withBids(auction), nil
}

// UpdateAuction persists name, minimum bid, window and state. Bids are untouched.
func (r *MemoryRepo) UpdateAuction(_ context.Context, auction model.AuctionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.ID]; !ok {
		return fmt.Errorf("update auction %s: %w", auction.ID, auctionerrors.ErrAuctionNotFound)
	}
	r.auctions[auction.ID] = stripBids(auction)
	return nil
}

// DeleteAuction removes an auction and any bids stored with it
func (r *MemoryRepo) DeleteAuction(_ context.Context, auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	for _, bid := range r.bids[auctionID] {
		r.userBids[bid.ParticipantID]--
		if r.userBids[bid.ParticipantID] <= 0 {
			delete(r.userBids, bid.ParticipantID)
		}
	}
	delete(r.bids, auctionID)
	delete(r.auctions, auctionID)

	for i, id := range r.order {
		if id == auctionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListAuctions returns every auction in creation order
func (r *MemoryRepo) ListAuctions(_ context.Context) ([]model.AuctionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctions := make([]model.AuctionRecord, 0, len(r.order))
	for _, id := range r.order {
		auctions = append(auctions, r.withBids(r.auctions[id]))
	}
	return auctions, nil
}

// RecordBid appends an accepted bid to its auction. Both the auction and the
// bidding participant must exist.
func (r *MemoryRepo) RecordBid(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if _, ok := r.participants[bid.ParticipantID]; !ok {
		return fmt.Errorf("record bid by participant %s: %w", bid.ParticipantID, auctionerrors.ErrParticipantNotFound)
	}
	r.appendBid(bid)
	return nil
}

// CountBidsByParticipant returns how many bids a participant holds across all auctions
func (r *MemoryRepo) CountBidsByParticipant(_ context.Context, participantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.userBids[participantID], nil
}

// CreateParticipant registers a participant; identifiers are unique
func (r *MemoryRepo) CreateParticipant(_ context.Context, participant model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if participant.ID == "" {
		return fmt.Errorf("create participant: %w - empty identifier", auctionerrors.ErrInvalidArgument)
	}
	if _, ok := r.participants[participant.ID]; ok {
		return fmt.Errorf("create participant %s: %w", participant.ID, auctionerrors.ErrAlreadyExists)
	}
	r.participants[participant.ID] = participant
	return nil
}

// GetParticipant returns a participant by identifier
func (r *MemoryRepo) GetParticipant(_ context.Context, participantID string) (model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participant, ok := r.participants[participantID]
	if !ok {
		return model.Participant{}, fmt.Errorf("get participant %s: %w", participantID, auctionerrors.ErrParticipantNotFound)
	}
	return participant, nil
}

// ListParticipants returns all participants sorted by identifier
func (r *MemoryRepo) ListParticipants(_ context.Context) ([]model.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants := make([]model.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		participants = append(participants, p)
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })
	return participants, nil
}

// DeleteParticipant removes a participant that holds no recorded bid
func (r *MemoryRepo) DeleteParticipant(_ context.Context, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[participantID]; !ok {
		return fmt.Errorf("delete participant %s: %w", participantID, auctionerrors.ErrParticipantNotFound)
	}
	if n := r.userBids[participantID]; n > 0 {
		return fmt.Errorf("delete participant %s: %w - %d bids", participantID, auctionerrors.ErrHasBids, n)
	}
	delete(r.participants, participantID)
	return nil
}

// appendBid must be called with the write lock held
func (r *MemoryRepo) appendBid(bid model.Bid) {
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	r.userBids[bid.ParticipantID]++
}

// withBids must be called with a lock held
func (r *MemoryRepo) withBids(auction model.AuctionRecord) model.AuctionRecord {
	auction.Bids = append([]model.Bid(nil), r.bids[auction.ID]...)
	return auction
}

func stripBids(auction model.AuctionRecord) model.AuctionRecord {
	auction.Bids = nil
	return auction
}
