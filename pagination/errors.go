package pagination

import "errors"

// Sentinel errors returned by the pagination engine. Callers are expected to
// test them with errors.Is since most of them come back wrapped with context.
var (
	// ErrPageSize is returned when a page size below 1 is requested.
	ErrPageSize = errors.New("page size must be at least 1")

	// ErrEmptySource is returned by NewView when WithStrictEmpty is set and
	// the data source has no items. Without strict mode an empty source
	// renders a single empty page instead.
	ErrEmptySource = errors.New("data source is empty")

	// ErrAlreadyStarted is returned when Start or StartAt is called on a
	// view that already owns a message.
	ErrAlreadyStarted = errors.New("view already started")

	// ErrOutOfRange is returned by ChangePage for a target outside
	// [0, MaxPages). The built-in navigation controls clamp before calling,
	// so seeing this error means a programmatic caller passed a bad page.
	ErrOutOfRange = errors.New("page out of range")

	// ErrBadRender is returned when a page formatter produces a value the
	// engine does not know how to turn into a message.
	ErrBadRender = errors.New("unsupported render result")
)
