// Package async provides a small generic Future type for running
// computations in their own goroutine and joining on them later.
//
// Go starts a function and returns a *Future immediately; Await blocks until
// it finishes, AwaitContext and AwaitWithTimeout bound the wait, IsComplete
// polls. Resolved and Rejected build futures that are already complete,
// which is handy for predicates that only sometimes need to suspend.
//
// Panics inside a task are recovered and reported as an error wrapping
// ErrPanic, so a misbehaving task never takes the process down.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) (bool, error) {
//		return lookupUsername(ctx, name)
//	})
//
//	taken, err := f.Await()
//
// WaitAll joins several futures and returns results in argument order,
// regardless of completion order.
package async
