package kernel

import "infigrid/internal/core"

// Selector is the active kernel: either one of the built-in tags or the
// caller-supplied custom function.
type Selector struct {
	tag      Tag
	custom   Func
	builtins Builtins
}

// NewSelector returns a selector on Blank using the given built-in
// parameters and the registry's default custom kernel.
func NewSelector(b Builtins) Selector {
	return Selector{tag: Blank, custom: DefaultCustom(), builtins: b}
}

// Tag returns the active tag.
func (s *Selector) Tag() Tag { return s.tag }

// Select switches to tag t. Unknown tags fall back to Blank.
func (s *Selector) Select(t Tag) {
	if t > Custom {
		t = Blank
	}
	s.tag = t
}

// Next advances to the following tag in the cycle and returns it.
func (s *Selector) Next() Tag {
	s.tag = s.tag.Next()
	return s.tag
}

// SetCustom replaces the custom kernel. A nil f restores the default one.
func (s *Selector) SetCustom(f Func) {
	if f == nil {
		f = DefaultCustom()
	}
	s.custom = f
}

// Builtins returns the parameters of the built-in kernels.
func (s *Selector) Builtins() Builtins { return s.builtins }

// SetBuiltins replaces the parameters of the built-in kernels.
func (s *Selector) SetBuiltins(b Builtins) { s.builtins = b }

// Apply runs the active kernel for index i.
func (s *Selector) Apply(i core.Index, out *Attributes) {
	switch s.tag {
	case Checkerboard:
		s.builtins.CheckerboardKernel(i, out)
	case Circle:
		s.builtins.CircleKernel(i, out)
	case Custom:
		s.custom(i, out)
	default:
		s.builtins.BlankKernel(i, out)
	}
}
