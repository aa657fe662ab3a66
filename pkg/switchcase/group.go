package switchcase

import "fmt"

// Group is a declared switch: case handlers in declaration order plus at
// most one default. A built group is read-only and may be activated any
// number of times, including concurrently, provided handler bodies are free
// of shared-state side effects.
type Group[L comparable, R any] struct {
	name   string
	cases  []Handler[L, R]
	def    Handler[L, R]
	hasDef bool
}

// Name returns the group's declared name.
func (g *Group[L, R]) Name() string {
	return g.name
}

// Len returns the number of case handlers, excluding the default.
func (g *Group[L, R]) Len() int {
	return len(g.cases)
}

// HasDefault reports whether the group declares a fallback handler.
func (g *Group[L, R]) HasDefault() bool {
	return g.hasDef
}

// Builder accumulates handler declarations for a Group. Malformed
// declarations (a duplicate label, a second default, a nil behavior) are
// reported by Build rather than surfacing at first activation.
type Builder[L comparable, R any] struct {
	name     string
	handlers []Handler[L, R]
}

// New starts a group declaration.
func New[L comparable, R any](name string) *Builder[L, R] {
	return &Builder[L, R]{name: name}
}

// Case declares a labeled handler.
func (b *Builder[L, R]) Case(label L, fn HandlerFunc[L, R]) *Builder[L, R] {
	b.handlers = append(b.handlers, Case(label, fn))
	return b
}

// Default declares the group's fallback handler.
func (b *Builder[L, R]) Default(fn HandlerFunc[L, R]) *Builder[L, R] {
	b.handlers = append(b.handlers, Default[L, R](fn))
	return b
}

// Handle appends an already-constructed handler, preserving declaration
// order. Lets callers assemble groups from prebuilt handler slices.
func (b *Builder[L, R]) Handle(h Handler[L, R]) *Builder[L, R] {
	b.handlers = append(b.handlers, h)
	return b
}

// Build validates the declaration and returns the immutable group.
func (b *Builder[L, R]) Build() (*Group[L, R], error) {
	g := &Group[L, R]{name: b.name}
	seen := make(map[L]struct{}, len(b.handlers))

	for _, h := range b.handlers {
		if h.fn == nil {
			label := ""
			if !h.isDefault {
				label = fmt.Sprintf("%v", h.label)
			}
			return nil, newDispatchError(ErrorTypeNilHandler, b.name, label, ErrNilHandler)
		}

		if h.isDefault {
			if g.hasDef {
				return nil, newDispatchError(ErrorTypeDuplicateDefault, b.name, "", ErrDuplicateDefault)
			}
			g.def = h
			g.hasDef = true
			continue
		}

		if _, dup := seen[h.label]; dup {
			return nil, newDispatchError(ErrorTypeDuplicateLabel, b.name, fmt.Sprintf("%v", h.label), ErrDuplicateLabel)
		}
		seen[h.label] = struct{}{}
		g.cases = append(g.cases, h)
	}

	return g, nil
}

// MustBuild is Build for declaration sites where a malformed group is a
// programming error, in the manner of regexp.MustCompile.
func (b *Builder[L, R]) MustBuild() *Group[L, R] {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
