package options

// Option represents a functional option for configuring any type T. Package
// symtab uses Option[*tableConfig] as the type of its With* constructors.
type Option[T any] interface {
	apply(T) error
}

// Func is a generic functional option that wraps a function.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// Apply applies multiple options to a target object in order, stopping at
// the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError creates a functional option from a function that doesn't return an
// error — every With* constructor in this module is one of these, since none
// of their settings can fail validation.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
