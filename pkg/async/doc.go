// Package async provides a small Future abstraction for running work off the
// calling goroutine while keeping its result and error observable.
//
// The authentication service uses it for best-effort side work such as
// dispatching reset emails, where the caller must not block on an external
// provider:
//
//	future := async.Async(ctx, params, func(ctx context.Context, p email.SendEmailParams) (struct{}, error) {
//	    return struct{}{}, sender.SendEmail(ctx, p)
//	})
//	// ... later, or never:
//	if _, err := future.AwaitWithTimeout(5 * time.Second); err != nil { ... }
package async
