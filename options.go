package wad

// Option configures a Wad at Load time.
type Option func(w *Wad) error

// WithMutex makes the returned Wad safe to share across goroutines by
// taking an internal mutex for the full duration of every query and
// mutation call (spec.md §5: "an implementation SHOULD guard the engine
// with a mutex if it exposes the API to a multithreaded host").
//
// Without this option the engine assumes the single-writer, non-overlapping
// call discipline described in §5 and takes no lock.
func WithMutex() Option {
	return func(w *Wad) error {
		w.guarded = true
		return nil
	}
}
