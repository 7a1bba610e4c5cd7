// Package pool provides a bounded, thread-safe free list for reusable
// objects. The validation executor uses it to recycle result records instead
// of allocating one per rule evaluation.
//
// Unlike sync.Pool the free list has a hard upper bound, is never drained by
// the garbage collector behind the caller's back, and keeps counters that
// make reuse observable:
//
//	p := pool.New[validator.Result](pool.WithInitialSize(10), pool.WithMaxSize(100))
//	r := p.Acquire()
//	defer p.Release(r)
//
// Release zeroes the object before storing it, so an acquired object is
// always indistinguishable from a freshly created one. When the free list is
// full, released objects are simply dropped and left to the garbage collector.
package pool
