package switchcase

// Activate dispatches ref against the group. Case handlers are offered the
// reference in declaration order and the first match wins; its result is the
// activation's result. When no case matches, the default handler runs with
// the same reference. When no default is declared either, a DispatchError
// with type ErrorTypeMissingDefault is returned. Extra args are passed to
// whichever handler runs, untouched.
//
// The result may itself be fed back as the reference of the next activation;
// a caller looping that way drives the group as a state machine, one
// transition per call.
func (g *Group[L, R]) Activate(ref L, args ...any) (R, error) {
	for _, h := range g.cases {
		if m := h.Offer(ref, args...); m.Ok() {
			return m.Result(), nil
		}
	}

	if !g.hasDef {
		var zero R
		return zero, newDispatchError(ErrorTypeMissingDefault, g.name, "", ErrMissingDefault)
	}

	return g.def.run(ref, args...), nil
}
