package models

import (
	"errors"
	"testing"
	"time"

	"auction-tracker/internal/auctionerrors"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// Helper to create a new open auction
func newOpenAuction(t *testing.T, minimum float64) *Auction {
	t.Helper()
	a, err := NewAuction("auction1", "Widget", minimum, t0, t0.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, a.Open(t0))
	return a
}

// Helper to create a new Bid
func newBid(participantID string, amount float64) Bid {
	return Bid{
		BidID:         participantID + "-bid",
		AuctionID:     "auction1",
		ParticipantID: participantID,
		Amount:        amount,
		CreatedAt:     t0,
	}
}

// Test NewAuction
func TestNewAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantError error
	}{
		{name: "valid_window", start: t0, end: t0.Add(time.Hour)},
		{name: "one_nanosecond_window", start: t0, end: t0.Add(time.Nanosecond)},
		{name: "end_equals_start", start: t0, end: t0, wantError: auctionerrors.ErrInvalidRange},
		{name: "end_before_start", start: t0, end: t0.Add(-time.Hour), wantError: auctionerrors.ErrInvalidRange},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAuction("id", "Widget", 100, tc.start, tc.end)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				require.Nil(t, a)
				return
			}
			require.NoError(t, err)
			require.Equal(t, StateInactive, a.State())
			require.Empty(t, a.Bids())
			require.False(t, a.HasBids())
			require.Equal(t, "Widget", a.Name())
			require.Equal(t, 100.0, a.MinimumBid())
		})
	}
}

// Test Open
func TestAuction_Open(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setup     func(t *testing.T, a *Auction)
		now       time.Time
		wantError error
	}{
		{name: "at_start_time", setup: func(t *testing.T, a *Auction) {}, now: t0},
		{name: "after_start_time", setup: func(t *testing.T, a *Auction) {}, now: t0.Add(30 * time.Second)},
		{name: "before_start_time", setup: func(t *testing.T, a *Auction) {}, now: t0.Add(-time.Second), wantError: auctionerrors.ErrTooEarly},
		{
			name:      "already_open",
			setup:     func(t *testing.T, a *Auction) { require.NoError(t, a.Open(t0)) },
			now:       t0,
			wantError: auctionerrors.ErrInvalidState,
		},
		{
			name: "closed_no_bids",
			setup: func(t *testing.T, a *Auction) {
				require.NoError(t, a.Open(t0))
				require.NoError(t, a.Close(t0.Add(time.Minute)))
			},
			now:       t0.Add(2 * time.Minute),
			wantError: auctionerrors.ErrInvalidState,
		},
		{
			name:      "state_checked_before_time",
			setup:     func(t *testing.T, a *Auction) { require.NoError(t, a.Open(t0)) },
			now:       t0.Add(-time.Hour),
			wantError: auctionerrors.ErrInvalidState,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAuction("id", "Widget", 100, t0, t0.Add(time.Minute))
			require.NoError(t, err)
			tc.setup(t, a)

			err = a.Open(tc.now)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, StateOpen, a.State())
			require.Empty(t, a.Bids())
		})
	}
}

// Test SubmitBid admission rule
func TestAuction_SubmitBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		accepted  []Bid
		bid       Bid
		wantError error
	}{
		{name: "first_bid_equals_minimum", bid: newBid("alice", 100)},
		{name: "first_bid_above_minimum", bid: newBid("alice", 250)},
		{name: "first_bid_below_minimum", bid: newBid("alice", 99.99), wantError: auctionerrors.ErrBidTooLow},
		{name: "strictly_greater", accepted: []Bid{newBid("alice", 100)}, bid: newBid("bob", 100.01)},
		{name: "equal_to_last", accepted: []Bid{newBid("alice", 100)}, bid: newBid("bob", 100), wantError: auctionerrors.ErrBidTooLow},
		{name: "lower_than_last", accepted: []Bid{newBid("alice", 150)}, bid: newBid("bob", 120), wantError: auctionerrors.ErrBidTooLow},
		{name: "consecutive_bidder", accepted: []Bid{newBid("alice", 100)}, bid: newBid("alice", 200), wantError: auctionerrors.ErrConsecutiveBidder},
		{
			name:     "same_bidder_after_another",
			accepted: []Bid{newBid("alice", 100), newBid("bob", 150)},
			bid:      newBid("alice", 200),
		},
		{
			name:      "too_low_reported_before_consecutive",
			accepted:  []Bid{newBid("alice", 100)},
			bid:       newBid("alice", 50),
			wantError: auctionerrors.ErrBidTooLow,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := newOpenAuction(t, 100)
			for _, b := range tc.accepted {
				require.NoError(t, a.SubmitBid(b))
			}

			err := a.SubmitBid(tc.bid)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				require.Len(t, a.Bids(), len(tc.accepted))
				return
			}
			require.NoError(t, err)
			bids := a.Bids()
			require.Len(t, bids, len(tc.accepted)+1)
			require.Equal(t, tc.bid, bids[len(bids)-1])
		})
	}
}

func TestAuction_SubmitBid_RequiresOpen(t *testing.T) {
	t.Parallel()

	inactive, err := NewAuction("id", "Widget", 100, t0, t0.Add(time.Minute))
	require.NoError(t, err)
	require.ErrorIs(t, inactive.SubmitBid(newBid("alice", 100)), auctionerrors.ErrInvalidState)

	closed := newOpenAuction(t, 100)
	require.NoError(t, closed.SubmitBid(newBid("alice", 100)))
	require.NoError(t, closed.Close(t0.Add(time.Minute)))
	require.ErrorIs(t, closed.SubmitBid(newBid("bob", 500)), auctionerrors.ErrInvalidState)
	require.Len(t, closed.Bids(), 1)
}

// The accepted sequence is strictly increasing with no consecutive repeats
func TestAuction_SubmitBid_SequenceInvariant(t *testing.T) {
	t.Parallel()

	a := newOpenAuction(t, 10)
	attempts := []Bid{
		newBid("alice", 5), newBid("alice", 10), newBid("alice", 11), newBid("bob", 10),
		newBid("bob", 12), newBid("carol", 12), newBid("carol", 13), newBid("carol", 14),
		newBid("alice", 20), newBid("bob", 19.9999), newBid("bob", 21),
	}
	for _, b := range attempts {
		_ = a.SubmitBid(b)
	}

	bids := a.Bids()
	require.Equal(t, []float64{10, 12, 13, 20, 21}, amounts(bids))
	for i := 1; i < len(bids); i++ {
		require.Greater(t, bids[i].Amount, bids[i-1].Amount)
		require.NotEqual(t, bids[i].ParticipantID, bids[i-1].ParticipantID)
	}
}

// Test Close
func TestAuction_Close(t *testing.T) {
	t.Parallel()

	t.Run("too_early_with_bids", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.SubmitBid(newBid("alice", 100)))
		require.ErrorIs(t, a.Close(t0.Add(59*time.Second)), auctionerrors.ErrTooEarly)
		require.Equal(t, StateOpen, a.State())
	})

	t.Run("too_early_without_bids", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.ErrorIs(t, a.Close(t0), auctionerrors.ErrTooEarly)
	})

	t.Run("not_open", func(t *testing.T) {
		a, err := NewAuction("id", "Widget", 100, t0, t0.Add(time.Minute))
		require.NoError(t, err)
		require.ErrorIs(t, a.Close(t0.Add(time.Hour)), auctionerrors.ErrInvalidState)
		require.Equal(t, StateInactive, a.State())
	})

	t.Run("no_bids", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.Close(t0.Add(time.Minute)))
		require.Equal(t, StateClosedNoBids, a.State())
	})

	t.Run("with_bids", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.SubmitBid(newBid("alice", 100)))
		require.NoError(t, a.Close(t0.Add(2*time.Minute)))
		require.Equal(t, StateClosedWithWinner, a.State())
	})

	t.Run("terminal_states_are_final", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.Close(t0.Add(time.Minute)))
		later := t0.Add(time.Hour)
		require.ErrorIs(t, a.Close(later), auctionerrors.ErrInvalidState)
		require.ErrorIs(t, a.Open(later), auctionerrors.ErrInvalidState)
		require.ErrorIs(t, a.SubmitBid(newBid("alice", 1000)), auctionerrors.ErrInvalidState)
		require.Equal(t, StateClosedNoBids, a.State())
	})
}

// Test WinningBid
func TestAuction_WinningBid(t *testing.T) {
	t.Parallel()

	t.Run("not_resolved_while_open", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.SubmitBid(newBid("alice", 100)))
		_, err := a.WinningBid()
		require.ErrorIs(t, err, auctionerrors.ErrNotResolved)
	})

	t.Run("not_resolved_without_bids", func(t *testing.T) {
		a := newOpenAuction(t, 100)
		require.NoError(t, a.Close(t0.Add(time.Minute)))
		_, err := a.WinningBid()
		require.ErrorIs(t, err, auctionerrors.ErrNotResolved)
	})

	t.Run("takes_maximum_not_last", func(t *testing.T) {
		a := RestoreAuction(AuctionRecord{
			ID:    "restored",
			State: StateClosedWithWinner,
			Bids:  []Bid{newBid("alice", 100), newBid("bob", 300), newBid("carol", 200)},
		})
		winner, err := a.WinningBid()
		require.NoError(t, err)
		require.Equal(t, "bob", winner.ParticipantID)
		require.Equal(t, 300.0, winner.Amount)
	})

	t.Run("closed_with_winner_but_empty_list", func(t *testing.T) {
		a := RestoreAuction(AuctionRecord{ID: "broken", State: StateClosedWithWinner})
		_, err := a.WinningBid()
		require.True(t, errors.Is(err, auctionerrors.ErrNotResolved))
	})
}

func TestAuction_BidValues(t *testing.T) {
	t.Parallel()

	a := newOpenAuction(t, 100)
	require.Equal(t, 0.0, a.HighestBidValue())
	require.Equal(t, 0.0, a.LowestBidValue())
	require.Empty(t, a.OrderedBids())

	require.NoError(t, a.SubmitBid(newBid("alice", 2100)))
	require.NoError(t, a.SubmitBid(newBid("bob", 2300)))
	require.NoError(t, a.SubmitBid(newBid("carol", 2500)))
	require.NoError(t, a.SubmitBid(newBid("alice", 2700)))

	require.Equal(t, 2700.0, a.HighestBidValue())
	require.Equal(t, 2100.0, a.LowestBidValue())
	require.True(t, a.HasBidFrom("carol"))
	require.False(t, a.HasBidFrom("dave"))

	restored := RestoreAuction(AuctionRecord{
		ID:    "unordered",
		State: StateOpen,
		Bids:  []Bid{newBid("x", 30), newBid("y", 10), newBid("z", 20)},
	})
	require.Equal(t, []float64{10, 20, 30}, amounts(restored.OrderedBids()))
	require.Equal(t, []float64{30, 10, 20}, amounts(restored.Bids()))
}

// The bid list handed out is a copy
func TestAuction_BidsAreEncapsulated(t *testing.T) {
	t.Parallel()

	a := newOpenAuction(t, 100)
	require.NoError(t, a.SubmitBid(newBid("alice", 100)))

	bids := a.Bids()
	bids[0].Amount = 1
	bids = append(bids, newBid("bob", 5000))
	ordered := a.OrderedBids()
	ordered[0].ParticipantID = "mallory"

	require.Len(t, a.Bids(), 1)
	require.Equal(t, 100.0, a.Bids()[0].Amount)
	require.Equal(t, "alice", a.Bids()[0].ParticipantID)
	require.Len(t, bids, 2)
}

// Test Edit
func TestAuction_Edit(t *testing.T) {
	t.Parallel()

	a, err := NewAuction("id", "Widget", 100, t0, t0.Add(time.Minute))
	require.NoError(t, err)

	name := "Gadget"
	require.NoError(t, a.Edit(&name, nil))
	require.Equal(t, "Gadget", a.Name())
	require.Equal(t, 100.0, a.MinimumBid())

	minimum := 250.0
	require.NoError(t, a.Edit(nil, &minimum))
	require.Equal(t, "Gadget", a.Name())
	require.Equal(t, 250.0, a.MinimumBid())

	require.NoError(t, a.Open(t0))
	other := "Other"
	require.ErrorIs(t, a.Edit(&other, nil), auctionerrors.ErrInvalidState)
	require.Equal(t, "Gadget", a.Name())
}

func TestAuction_RecordRoundTrip(t *testing.T) {
	t.Parallel()

	a := newOpenAuction(t, 100)
	require.NoError(t, a.SubmitBid(newBid("alice", 100)))

	rec := a.Record()
	restored := RestoreAuction(rec)
	require.Equal(t, a.ID(), restored.ID())
	require.Equal(t, a.State(), restored.State())
	require.Equal(t, a.Bids(), restored.Bids())

	rec.Bids[0].Amount = 1
	require.Equal(t, 100.0, a.Bids()[0].Amount)
}

// Widget walkthrough: minimum, strict increase, consecutive bidder, resolution
func TestAuction_WidgetScenario(t *testing.T) {
	t.Parallel()

	a, err := NewAuction("widget", "Widget", 100, t0, t0.Add(60*time.Second))
	require.NoError(t, err)
	require.NoError(t, a.Open(t0))
	require.Equal(t, StateOpen, a.State())

	require.ErrorIs(t, a.SubmitBid(newBid("alice", 90)), auctionerrors.ErrBidTooLow)
	require.NoError(t, a.SubmitBid(newBid("alice", 100)))
	require.ErrorIs(t, a.SubmitBid(newBid("bob", 100)), auctionerrors.ErrBidTooLow)
	require.ErrorIs(t, a.SubmitBid(newBid("alice", 150)), auctionerrors.ErrConsecutiveBidder)
	require.NoError(t, a.SubmitBid(newBid("bob", 150)))

	require.NoError(t, a.Close(t0.Add(60*time.Second)))
	require.Equal(t, StateClosedWithWinner, a.State())

	winner, err := a.WinningBid()
	require.NoError(t, err)
	require.Equal(t, 150.0, winner.Amount)
	require.Equal(t, "bob", winner.ParticipantID)
}

func TestAuction_NoBidsScenario(t *testing.T) {
	t.Parallel()

	a, err := NewAuction("empty", "Widget", 100, t0, t0.Add(60*time.Second))
	require.NoError(t, err)
	require.NoError(t, a.Open(t0))
	require.NoError(t, a.Close(t0.Add(60*time.Second)))

	require.Equal(t, StateClosedNoBids, a.State())
	require.Equal(t, 0.0, a.HighestBidValue())
	_, err = a.WinningBid()
	require.ErrorIs(t, err, auctionerrors.ErrNotResolved)
}

func TestParseAuctionState(t *testing.T) {
	t.Parallel()

	for _, s := range []AuctionState{StateInactive, StateOpen, StateClosedWithWinner, StateClosedNoBids} {
		got, err := ParseAuctionState(string(s))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	got, err := ParseAuctionState(" open ")
	require.NoError(t, err)
	require.Equal(t, StateOpen, got)
	_, err = ParseAuctionState("FINISHED")
	require.Error(t, err)

	require.True(t, StateClosedNoBids.Closed())
	require.True(t, StateClosedWithWinner.Closed())
	require.False(t, StateOpen.Closed())
}

func TestNewBid(t *testing.T) {
	t.Parallel()

	bid, err := NewBid("b1", "a1", "alice", 10, t0)
	require.NoError(t, err)
	require.Equal(t, Bid{BidID: "b1", AuctionID: "a1", ParticipantID: "alice", Amount: 10, CreatedAt: t0}, bid)

	_, err = NewBid("b2", "a1", "alice", 0, t0)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)
	_, err = NewBid("b3", "a1", "alice", -5, t0)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)
	_, err = NewBid("b4", "a1", "", 10, t0)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)

	p := Participant{ID: "111.111.111-11", Name: "Alice"}
	require.True(t, p.Same(Participant{ID: "111.111.111-11", Name: "Other name"}))
	require.False(t, p.Same(Participant{ID: "222.222.222-22", Name: "Alice"}))
}

func amounts(bids []Bid) []float64 {
	out := make([]float64, 0, len(bids))
	for _, b := range bids {
		out = append(out, b.Amount)
	}
	return out
}
