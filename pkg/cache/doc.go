// Package cache provides a generic, thread-safe, bounded result cache used by
// the validation engine to memoize rule outcomes.
//
// Entries are keyed by a short string produced by GenerateKey from the
// validated value, the rule name and any extra parameters. When the cache is
// full the oldest inserted entry is evicted (FIFO). Reads never change an
// entry's position, so a frequently read entry is evicted just like any other
// once it becomes the oldest.
//
// # Expiry
//
// With WithTTL every entry is stamped with now+ttl when it is Set. Get and Has
// treat a lapsed entry as absent and remove it on the spot. CleanExpired
// removes all lapsed entries in one pass; WithAutoCleanup runs it from a
// background goroutine until Destroy is called.
//
// # Usage
//
//	c := cache.New[validator.Result](
//		cache.WithMaxSize(500),
//		cache.WithTTL(5*time.Minute),
//		cache.WithAutoCleanup(time.Minute),
//	)
//	defer c.Destroy()
//
//	key := cache.GenerateKey("john@example.com", "email")
//	if res, ok := c.Get(key); ok {
//		return res
//	}
//
// Configuration can also come from the environment:
//
//	cfg, err := config.Load[cache.Config]()
//	c := cache.NewFromConfig[validator.Result](cfg)
//
// # Statistics
//
// Stats reports cumulative hits and misses since the last Clear or
// ResetStats together with the derived hit rate in percent.
//
// # Disabling
//
// Disable makes every Get a miss and every Set a no-op without dropping the
// stored entries. They are visible again after Enable.
package cache
