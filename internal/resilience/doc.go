// Package resilience groups the fault tolerance building blocks used when
// talking to external menu sites and backing stores.
//
// The package supports:
//   - Retry logic with exponential backoff and jitter (retry subpackage)
//
// Circuit breaking is handled per source by the orchestrator, which keeps
// one breaker per registered menu provider.
//
// Usage Example:
//
//	err := retry.WithBackoff(ctx, retry.FetchConfig(), func() error {
//	    return fetchMenuPage()
//	})
package resilience
