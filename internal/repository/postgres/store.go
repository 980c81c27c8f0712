package postgres

import (
	"context"
	"errors"
	"fmt"

	"auction-tracker/internal/auctionerrors"
	model "auction-tracker/internal/models"
	"auction-tracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	bidsAuctionFK = "bids_auction_id_fkey"
)

// Connect opens a connection pool and verifies it with a ping
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: unable to connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}
	return pool, nil
}

// Store implements repository.AuctionDB on PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

var _ repository.AuctionDB = (*Store)(nil)

// NewStore creates a Store over an open pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CreateAuction inserts an auction and any bids it already carries
func (s *Store) CreateAuction(ctx context.Context, auction model.AuctionRecord) error {
	if auction.ID == "" {
		return fmt.Errorf("create auction: %w - empty auction id", auctionerrors.ErrInvalidArgument)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create auction %s: begin: %w", auction.ID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO auctions (id, name, minimum_bid, start_time, end_time, state)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		auction.ID, auction.Name, auction.MinimumBid, auction.StartTime.UTC(), auction.EndTime.UTC(), string(auction.State))
	if err != nil {
		return fmt.Errorf("create auction %s: %w", auction.ID, mapError(err))
	}
	for _, bid := range auction.Bids {
		if err := insertBid(ctx, tx, bid); err != nil {
			return fmt.Errorf("create auction %s: %w", auction.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// GetAuction returns an auction together with its bids in acceptance order
func (s *Store) GetAuction(ctx context.Context, auctionID string) (model.AuctionRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, minimum_bid, start_time, end_time, state
		FROM auctions
		WHERE id = $1`, auctionID)

	auction, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionRecord{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return model.AuctionRecord{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT bid_id, auction_id, participant_id, amount, created_at
		FROM bids
		WHERE auction_id = $1
		ORDER BY seq ASC`, auctionID)
	if err != nil {
		return model.AuctionRecord{}, fmt.Errorf("get bids of auction %s: %w", auctionID, err)
	}
	auction.Bids, err = pgx.CollectRows(rows, scanBid)
	if err != nil {
		return model.AuctionRecord{}, fmt.Errorf("get bids of auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// UpdateAuction persists name, minimum bid, window and state. Bids are untouched.
func (s *Store) UpdateAuction(ctx context.Context, auction model.AuctionRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE auctions
		SET name = $2, minimum_bid = $3, start_time = $4, end_time = $5, state = $6
		WHERE id = $1`,
		auction.ID, auction.Name, auction.MinimumBid, auction.StartTime.UTC(), auction.EndTime.UTC(), string(auction.State))
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auction.ID, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update auction %s: %w", auction.ID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// DeleteAuction removes an auction; its bids go with it
func (s *Store) DeleteAuction(ctx context.Context, auctionID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM auctions WHERE id = $1`, auctionID)
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// ListAuctions returns every auction in creation order
func (s *Store) ListAuctions(ctx context.Context) ([]model.AuctionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, minimum_bid, start_time, end_time, state
		FROM auctions
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	auctions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuctionRecord, error) {
		return scanAuction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT bid_id, auction_id, participant_id, amount, created_at
		FROM bids
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	bids, err := pgx.CollectRows(rows, scanBid)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	byAuction := make(map[string][]model.Bid)
	for _, b := range bids {
		byAuction[b.AuctionID] = append(byAuction[b.AuctionID], b)
	}
	for i := range auctions {
		auctions[i].Bids = byAuction[auctions[i].ID]
	}
	return auctions, nil
}

// RecordBid appends an accepted bid. The auction row is locked for the insert.
func (s *Store) RecordBid(ctx context.Context, bid model.Bid) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("record bid: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id string
	err = tx.QueryRow(ctx, `SELECT id FROM auctions WHERE id = $1 FOR UPDATE`, bid.AuctionID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
		}
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, err)
	}
	if err := insertBid(ctx, tx, bid); err != nil {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, err)
	}
	return tx.Commit(ctx)
}

// CountBidsByParticipant returns how many bids a participant holds across all auctions
func (s *Store) CountBidsByParticipant(ctx context.Context, participantID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM bids WHERE participant_id = $1`, participantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bids of participant %s: %w", participantID, err)
	}
	return count, nil
}

// CreateParticipant registers a participant; identifiers are unique
func (s *Store) CreateParticipant(ctx context.Context, participant model.Participant) error {
	if participant.ID == "" {
		return fmt.Errorf("create participant: %w - empty identifier", auctionerrors.ErrInvalidArgument)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO participants (id, name, email, birth_date)
		VALUES ($1, $2, $3, $4)`,
		participant.ID, participant.Name, participant.Email, participant.BirthDate.UTC())
	if err != nil {
		return fmt.Errorf("create participant %s: %w", participant.ID, mapError(err))
	}
	return nil
}

// GetParticipant returns a participant by identifier
func (s *Store) GetParticipant(ctx context.Context, participantID string) (model.Participant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, email, birth_date
		FROM participants
		WHERE id = $1`, participantID)
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participant{}, fmt.Errorf("get participant %s: %w", participantID, auctionerrors.ErrParticipantNotFound)
		}
		return model.Participant{}, fmt.Errorf("get participant %s: %w", participantID, err)
	}
	return p, nil
}

// ListParticipants returns all participants sorted by identifier
func (s *Store) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, birth_date
		FROM participants
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Participant, error) {
		return scanParticipant(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes a participant. Referenced participants fail with ErrHasBids.
func (s *Store) DeleteParticipant(ctx context.Context, participantID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, participantID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("delete participant %s: %w", participantID, auctionerrors.ErrHasBids)
		}
		return fmt.Errorf("delete participant %s: %w", participantID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete participant %s: %w", participantID, auctionerrors.ErrParticipantNotFound)
	}
	return nil
}

func insertBid(ctx context.Context, tx pgx.Tx, bid model.Bid) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bids (bid_id, auction_id, participant_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bid.BidID, bid.AuctionID, bid.ParticipantID, bid.Amount, bid.CreatedAt.UTC())
	if err != nil {
		return mapError(err)
	}
	return nil
}

// mapError translates constraint violations into domain errors
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %s", auctionerrors.ErrAlreadyExists, pgErr.ConstraintName)
	case foreignKeyViolation:
		if pgErr.ConstraintName == bidsAuctionFK {
			return auctionerrors.ErrAuctionNotFound
		}
		return auctionerrors.ErrParticipantNotFound
	}
	return err
}

func scanAuction(row pgx.Row) (model.AuctionRecord, error) {
	var (
		a     model.AuctionRecord
		state string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.MinimumBid, &a.StartTime, &a.EndTime, &state); err != nil {
		return model.AuctionRecord{}, err
	}
	a.State = model.AuctionState(state)
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	return a, nil
}

func scanBid(row pgx.CollectableRow) (model.Bid, error) {
	var b model.Bid
	if err := row.Scan(&b.BidID, &b.AuctionID, &b.ParticipantID, &b.Amount, &b.CreatedAt); err != nil {
		return model.Bid{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

func scanParticipant(row pgx.Row) (model.Participant, error) {
	var p model.Participant
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.BirthDate); err != nil {
		return model.Participant{}, err
	}
	p.BirthDate = p.BirthDate.UTC()
	return p, nil
}
