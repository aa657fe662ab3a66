package switchcase

// Match is the outcome of offering a reference value to a single handler:
// either the handler's label equaled the reference and its behavior produced
// a result, or it did not match and the search moves on. The result travels
// inside the Match value and nowhere else.
type Match[R any] struct {
	matched bool
	result  R
}

// Matched wraps a handler result in a successful match.
func Matched[R any](result R) Match[R] {
	return Match[R]{matched: true, result: result}
}

// NoMatch reports that a handler's label did not equal the reference.
func NoMatch[R any]() Match[R] {
	return Match[R]{}
}

// Ok reports whether the handler matched.
func (m Match[R]) Ok() bool {
	return m.matched
}

// Result returns the matched handler's result. It is the zero value of R
// when Ok is false.
func (m Match[R]) Result() R {
	return m.result
}
