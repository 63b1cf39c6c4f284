// Package resilience holds the fault-tolerance pieces around the upstream feed.
//
// Subpackages:
//   - circuitbreaker: a gobreaker wrapper with a prometheus state gauge, used
//     by the RSS fetcher so a failing feed is skipped until it recovers
//
// Failed fetches are not retried. The next refresh cycle is the retry.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig(refreshInterval))
//	items, err := circuitbreaker.Do(cb, func() ([]fetch.RawItem, error) {
//	    return fetchFeed(ctx)
//	})
//	if circuitbreaker.Rejected(err) {
//	    // upstream is being skipped
//	}
package resilience
