package errs

// Caller-visible error kinds. Use cases mark every failure with exactly one
// of these; the API layer decides how each kind is presented.
var (
	ErrNotFound    = New("not found")
	ErrForbidden   = New("forbidden")
	ErrInvalid     = New("invalid")
	ErrConflict    = New("conflict")
	ErrUnavailable = New("unavailable")

	// Store outages. The only retryable kind.
	ErrTransient = New("temporarily unavailable")
)

type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindForbidden   Kind = "forbidden"
	KindInvalid     Kind = "invalid"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindTransient   Kind = "transient"
	KindInternal    Kind = "internal"
)

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrNotFound):
		return KindNotFound
	case Is(err, ErrForbidden):
		return KindForbidden
	case Is(err, ErrInvalid):
		return KindInvalid
	case Is(err, ErrConflict):
		return KindConflict
	case Is(err, ErrUnavailable):
		return KindUnavailable
	case Is(err, ErrTransient):
		return KindTransient
	default:
		return KindInternal
	}
}

func (k Kind) Retryable() bool {
	return k == KindTransient
}
