package patch

// Coalesce dereferences ptr, or returns current when the field was omitted
// from a partial update.
func Coalesce[T any](ptr *T, current T) T {
	if ptr == nil {
		return current
	}
	return *ptr
}
