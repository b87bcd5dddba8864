// Package retry re-runs Wikibase reads that failed for transient reasons.
//
// The wikibase client routes every GET through an Executor: the connection
// check, the label search behind item reuse, and property reads used to
// pick a statement's value kind. Item, property and statement creation are
// POSTs and bypass the Executor. A create that timed out may still have
// landed on the instance, and repeating it leaves a duplicate entity or a
// second statement that the next upload would then reuse.
//
// Retries are off unless wikibase.retry_attempts is positive:
//
//	executor := retry.NewExecutor(
//	    retry.NewHTTPErrorClassifier(),
//	    retry.NewExponentialBackoff(cfg.Wikibase.RetryAttempts),
//	)
//	client, err := wikibase.NewClient(wc, wikibase.WithRetry(executor))
//
// # What counts as transient
//
// HTTPErrorClassifier retries the statuses a Wikibase instance or its proxy
// returns while overloaded or restarting (408, 425, 429, 500, 502, 503,
// 504). Refused or reset connections, unreachable hosts, temporary DNS
// failures and timeouts are retried too. A 404 for a missing property, a
// 401 for bad credentials and any other 4xx are final.
//
// Executor values are immutable after construction and can be shared by
// concurrent uploads.
package retry
