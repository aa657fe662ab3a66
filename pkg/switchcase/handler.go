// Package switchcase implements labeled case dispatch: a group of handlers,
// each tagged with a comparison label, plus one default. Activating a group
// with a reference value runs the first handler whose label equals the
// reference and returns its result, falling back to the default when nothing
// matches.
package switchcase

// HandlerFunc is a unit of behavior: it receives the reference value that
// selected it plus any extra activation arguments and returns a result.
type HandlerFunc[L comparable, R any] func(ref L, args ...any) R

// Handler pairs a behavior with the label it answers to. A handler is either
// a case (selected by label equality) or the group default (runs when no
// case matched). Handlers are immutable once constructed.
type Handler[L comparable, R any] struct {
	label     L
	isDefault bool
	fn        HandlerFunc[L, R]
}

// Case tags fn with a comparison label.
func Case[L comparable, R any](label L, fn HandlerFunc[L, R]) Handler[L, R] {
	return Handler[L, R]{label: label, fn: fn}
}

// Default tags fn as the group's fallback handler.
func Default[L comparable, R any](fn HandlerFunc[L, R]) Handler[L, R] {
	return Handler[L, R]{isDefault: true, fn: fn}
}

// Label returns the handler's label. The second return is false for the
// default handler, which carries no label of its own.
func (h Handler[L, R]) Label() (L, bool) {
	return h.label, !h.isDefault
}

// IsDefault reports whether this is the group's fallback handler.
func (h Handler[L, R]) IsDefault() bool {
	return h.isDefault
}

// Offer compares ref against the handler's label. On equality the behavior
// runs and its result is carried in the returned Match; otherwise no
// behavior runs and NoMatch is returned. The default handler never matches
// during an Offer scan; Activate invokes it directly after the scan.
func (h Handler[L, R]) Offer(ref L, args ...any) Match[R] {
	if h.isDefault || ref != h.label {
		return NoMatch[R]()
	}
	return Matched(h.fn(ref, args...))
}

// run invokes the behavior unconditionally. Used for the default handler,
// which is selected by elimination rather than comparison.
func (h Handler[L, R]) run(ref L, args ...any) R {
	return h.fn(ref, args...)
}
