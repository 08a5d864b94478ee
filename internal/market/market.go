// Package market provides cached access to current security prices. It wraps
// the Yahoo Finance client with a short-lived per-symbol cache so report
// requests do not hammer the upstream API, and collapses concurrent fetches
// for the same symbol into a single upstream call.
package market

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/investjournal/backend/internal/yahoo"
)

// cachedQuote pairs a fetched quote with the time it was stored.
type cachedQuote struct {
	quote     yahoo.Quote
	fetchedAt time.Time
}

// PriceService serves current market quotes from a TTL cache backed by a
// yahoo.Client. It is safe for concurrent use.
type PriceService struct {
	client yahoo.Client
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote

	group singleflight.Group

	// now is swappable for tests.
	now func() time.Time
}

// NewPriceService creates a PriceService with the given upstream client and
// cache TTL. Quotes younger than the TTL are served from the cache.
func NewPriceService(client yahoo.Client, ttl time.Duration) *PriceService {
	return &PriceService{
		client: client,
		ttl:    ttl,
		cache:  make(map[string]cachedQuote),
		now:    time.Now,
	}
}

// Quote returns the current quote for a symbol, fetching it from upstream if
// the cached entry is missing or older than the TTL. Concurrent requests for
// the same uncached symbol share a single upstream fetch.
func (s *PriceService) Quote(symbol string) (yahoo.Quote, error) {
	s.mu.RLock()
	entry, ok := s.cache[symbol]
	s.mu.RUnlock()

	if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.quote, nil
	}

	result, err, _ := s.group.Do(symbol, func() (any, error) {
		// Re-check under the group: another caller may have refreshed the
		// entry while this one waited.
		s.mu.RLock()
		entry, ok := s.cache[symbol]
		s.mu.RUnlock()
		if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
			return entry.quote, nil
		}

		quote, err := s.client.QuoteSymbol(symbol)
		if err != nil {
			return yahoo.Quote{}, err
		}

		s.mu.Lock()
		s.cache[symbol] = cachedQuote{quote: quote, fetchedAt: s.now()}
		s.mu.Unlock()

		return quote, nil
	})
	if err != nil {
		return yahoo.Quote{}, err
	}

	return result.(yahoo.Quote), nil
}

// RefreshAll forcibly refreshes the cache for the given symbols, regardless of
// entry age. Fetch failures leave the previous cached entry in place; the last
// error encountered is returned after all symbols have been attempted.
func (s *PriceService) RefreshAll(symbols []string) error {
	var lastErr error
	for _, symbol := range symbols {
		quote, err := s.client.QuoteSymbol(symbol)
		if err != nil {
			lastErr = err
			continue
		}

		s.mu.Lock()
		s.cache[symbol] = cachedQuote{quote: quote, fetchedAt: s.now()}
		s.mu.Unlock()
	}
	return lastErr
}
