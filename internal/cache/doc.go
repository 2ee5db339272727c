// Package cache provides the generic caches behind the outline engine.
//
// # Memo[K, V]
//
// A compute-once map: the first caller for a key runs the constructor,
// concurrent callers for the same key block until it finishes, and callers
// for other keys proceed in parallel. The engine memoizes stroked component
// base glyphs with it.
//
//	m := cache.NewMemo[string, *outliner.Path]()
//	outline, created := m.GetOrCreate("A", build)
//
// # Cache[K, V]
//
// A small thread-safe LRU cache with a soft limit and 25% eviction, used for
// parsed font faces.
//
//	c := cache.New[string, *font.Face](8)
//	c.Set(path, face)
//	face, ok := c.Get(path)
//
// Neither type should be copied after creation (they contain mutexes).
package cache
