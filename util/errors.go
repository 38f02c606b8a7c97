package util

// ErrWrap returns a closure which resolves a (value, error)
// pair to the value itself, falling back to the given
// default when the error is set
func ErrWrap[T any](fallback T) func(T, error) T {
	return func(value T, err error) T {
		if err != nil {
			return fallback
		}
		return value
	}
}

// ErrOnly drops the value of a (value, error) pair
func ErrOnly[T any](_ T, err error) error {
	return err
}

// ErrSuppress swallows an error on purpose
func ErrSuppress(_ error) {
	// nothing to do
}

// First returns the first non-zero value
func First[T comparable](values ...T) (result T) {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return
}
