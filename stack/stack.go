package stack

// A last-in-first-out stack, generic so that the resolver can stack its
// scopes and anyone else can stack whatever they please.

type Stack[T any] struct {
	vals []T
}

func NewStack[T any]() *Stack[T] { return &Stack[T]{vals: []T{}} }

func (s *Stack[T]) Push(val T) {
	s.vals = append(s.vals, val)
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) HeadValue() (T, bool) {
	if len(s.vals) == 0 {
		var zero T
		return zero, false
	}
	top := s.vals[len(s.vals)-1]
	return top, true
}

func (s *Stack[T]) Len() int { return len(s.vals) }

// View returns the item at the given depth, 0 being the top of the
// stack. The second value is false if the stack isn't that deep.
func (s *Stack[T]) View(depth int) (T, bool) {
	if depth < 0 || depth >= len(s.vals) {
		var zero T
		return zero, false
	}
	return s.vals[len(s.vals)-1-depth], true
}
