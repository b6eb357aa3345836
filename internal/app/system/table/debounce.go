// internal/app/system/table/debounce.go
package table

import "time"

// DefaultDebounce is the quiet period a text search waits for before
// triggering a fetch, so a burst of keystrokes costs one request.
// List screens hand it to their templates as milliseconds; the search
// input holds off submitting until it elapses.
const DefaultDebounce = 400 * time.Millisecond
