package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	auction "auction-tracker/internal/auctionService"
	model "auction-tracker/internal/models"
)

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	m := newManager(b, 2)
	ids := openAuctions(b, m, b.N, 50)
	ctx := context.Background()
	now := benchStart.Add(time.Minute)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		participantID := fmt.Sprintf("user_%d", i%2)
		bidAmount := float64(50 + rand.Intn(100))
		if _, err := m.PlaceBid(ctx, ids[i], participantID, bidAmount, now); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	const participants = 64
	m := newManager(b, participants)
	id := openAuctions(b, m, 1, 50)[0]
	ctx := context.Background()
	now := benchStart.Add(time.Minute)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50
	var accepted int64

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			participantID := fmt.Sprintf("user_%d", rnd.Intn(participants))
			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			// out-of-order and consecutive bids are rejected under contention
			if _, err := m.PlaceBid(ctx, id, participantID, float64(nextBid), now); err == nil {
				atomic.AddInt64(&accepted, 1)
			}
		}
	})
	b.ReportMetric(float64(accepted)/float64(b.N), "accepted/op")
}

// Benchmark 3: ListAuctions - state filter over a populated store
func Benchmark_ListAuctions_StateFilter(b *testing.B) {
	m := newManager(b, 0)
	openAuctions(b, m, 500, 10)
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		if _, err := m.CreateAuction(ctx, fmt.Sprintf("Pending %d", i), 10, benchStart.Add(time.Hour), benchStart.Add(2*time.Hour)); err != nil {
			b.Fatalf("failed to create auction: %v", err)
		}
	}
	state := model.StateOpen
	filter := auction.AuctionFilter{State: &state}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctions, err := m.ListAuctions(ctx, filter)
		if err != nil {
			b.Fatalf("failed to list auctions: %v", err)
		}
		if len(auctions) != 500 {
			b.Fatalf("expected 500 open auctions, got %d", len(auctions))
		}
	}
}

// Benchmark 4: FindAuction + WinningBid view - Concurrent readers on a shared auction
func Benchmark_FindAuction_ConcurrentSharedAuction(b *testing.B) {
	m := newManager(b, 2)
	id := openAuctions(b, m, 1, 50)[0]
	ctx := context.Background()
	now := benchStart.Add(time.Minute)

	for j := 0; j < 100; j++ {
		if _, err := m.PlaceBid(ctx, id, fmt.Sprintf("user_%d", j%2), float64(50+j), now); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a, err := m.FindAuction(ctx, id)
			if err != nil {
				b.Fatalf("failed to find auction: %v", err)
			}
			if a.HighestBidValue() != 149 {
				b.Fatalf("unexpected highest bid %v", a.HighestBidValue())
			}
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	const participants = 32
	m := newManager(b, participants)
	id := openAuctions(b, m, 1, 50)[0]
	ctx := context.Background()
	now := benchStart.Add(time.Minute)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				participantID := fmt.Sprintf("user_%d", rnd.Intn(participants))
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = m.PlaceBid(ctx, id, participantID, float64(nextBid), now)
				continue
			}
			if _, err := m.FindAuction(ctx, id); err != nil {
				b.Fatalf("failed to find auction: %v", err)
			}
		}
	})
}

// Benchmark 6: ProcessDue - one scheduler pass closing every open auction
func Benchmark_ProcessDue_CloseAll(b *testing.B) {
	ctx := context.Background()
	end := benchStart.Add(24 * time.Hour)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := newManager(b, 2)
		ids := openAuctions(b, m, 100, 10)
		for j, id := range ids {
			if _, err := m.PlaceBid(ctx, id, fmt.Sprintf("user_%d", j%2), 20, benchStart); err != nil {
				b.Fatalf("failed to seed bid: %v", err)
			}
		}
		b.StartTimer()

		summary, err := m.ProcessDue(ctx, end)
		if err != nil {
			b.Fatalf("process due failed: %v", err)
		}
		if len(summary.Closed) != len(ids) {
			b.Fatalf("expected %d closed, got %d", len(ids), len(summary.Closed))
		}
	}
}
