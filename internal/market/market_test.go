package market

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/investjournal/backend/internal/yahoo"
)

// fakeClient counts upstream calls and serves a configurable price.
type fakeClient struct {
	mu    sync.Mutex
	price float64
	err   error
	calls int
}

func (f *fakeClient) QuoteSymbol(symbol string) (yahoo.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return yahoo.Quote{}, f.err
	}
	return yahoo.Quote{Symbol: symbol, Price: f.price, AsOf: time.Now()}, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// TestPriceService_Quote tests cache behavior around the TTL.
//
// WHY: Quote caching is what keeps report endpoints from hammering the
// upstream API. Entries must be reused within the TTL and refetched after it.
func TestPriceService_Quote(t *testing.T) {
	t.Run("serves cached quote within TTL", func(t *testing.T) {
		client := &fakeClient{price: 100}
		svc := NewPriceService(client, 5*time.Minute)

		for i := 0; i < 3; i++ {
			quote, err := svc.Quote("AAPL")
			if err != nil {
				t.Fatalf("Quote() returned unexpected error: %v", err)
			}
			if quote.Price != 100 {
				t.Errorf("Expected price 100, got %v", quote.Price)
			}
		}

		if got := client.callCount(); got != 1 {
			t.Errorf("Expected 1 upstream call, got %d", got)
		}
	})

	t.Run("refetches after TTL expires", func(t *testing.T) {
		client := &fakeClient{price: 100}
		svc := NewPriceService(client, 5*time.Minute)

		current := time.Now()
		svc.now = func() time.Time { return current }

		if _, err := svc.Quote("AAPL"); err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}

		client.mu.Lock()
		client.price = 110
		client.mu.Unlock()

		// Advance past the TTL
		current = current.Add(6 * time.Minute)

		quote, err := svc.Quote("AAPL")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}
		if quote.Price != 110 {
			t.Errorf("Expected refreshed price 110, got %v", quote.Price)
		}
		if got := client.callCount(); got != 2 {
			t.Errorf("Expected 2 upstream calls, got %d", got)
		}
	})

	t.Run("concurrent requests share one upstream fetch", func(t *testing.T) {
		client := &fakeClient{price: 100}
		svc := NewPriceService(client, 5*time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.Quote("AAPL"); err != nil {
					t.Errorf("Quote() returned unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if got := client.callCount(); got != 1 {
			t.Errorf("Expected 1 upstream call for concurrent requests, got %d", got)
		}
	})

	t.Run("propagates upstream errors", func(t *testing.T) {
		client := &fakeClient{err: fmt.Errorf("upstream down")}
		svc := NewPriceService(client, 5*time.Minute)

		if _, err := svc.Quote("AAPL"); err == nil {
			t.Fatal("Expected error from failing upstream, got nil")
		}
	})
}

// TestPriceService_RefreshAll tests the forced refresh used by the background job.
//
// WHY: The scheduled refresh must bypass the TTL but never evict a good cached
// quote because one fetch failed; reports prefer a stale price over none.
func TestPriceService_RefreshAll(t *testing.T) {
	t.Run("refreshes all symbols regardless of TTL", func(t *testing.T) {
		client := &fakeClient{price: 100}
		svc := NewPriceService(client, 5*time.Minute)

		if _, err := svc.Quote("AAPL"); err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}

		client.mu.Lock()
		client.price = 120
		client.mu.Unlock()

		if err := svc.RefreshAll([]string{"AAPL"}); err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		quote, err := svc.Quote("AAPL")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}
		if quote.Price != 120 {
			t.Errorf("Expected refreshed price 120, got %v", quote.Price)
		}
	})

	t.Run("keeps stale entry when refresh fails", func(t *testing.T) {
		client := &fakeClient{price: 100}
		svc := NewPriceService(client, 5*time.Minute)

		if _, err := svc.Quote("AAPL"); err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}

		client.mu.Lock()
		client.err = fmt.Errorf("upstream down")
		client.mu.Unlock()

		if err := svc.RefreshAll([]string{"AAPL"}); err == nil {
			t.Fatal("Expected error from failing refresh, got nil")
		}

		quote, err := svc.Quote("AAPL")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}
		if quote.Price != 100 {
			t.Errorf("Expected stale price 100 to survive, got %v", quote.Price)
		}
	})
}
