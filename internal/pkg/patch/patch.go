package patch

// Coalesce returns *ptr unless ptr is nil or points at the zero value, in
// which case fallback is used. Optional JSON fields sent as "" or a zero
// timestamp are treated the same as omitted ones.
func Coalesce[T comparable](ptr *T, fallback T) T {
	var zero T
	if ptr == nil || *ptr == zero {
		return fallback
	}
	return *ptr
}
