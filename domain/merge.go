package domain

// Keyed is any record with a stable server-assigned id.
type Keyed interface {
	Key() int
}

// MergePage appends the items of a fetched page that are not already held,
// preserving the order of both the accumulated list and the page. Fetching
// with a stale offset therefore never duplicates or reorders anything.
func MergePage[T Keyed](list, page []T) []T {
	seen := make(map[int]struct{}, len(list))
	for _, item := range list {
		seen[item.Key()] = struct{}{}
	}
	for _, item := range page {
		if _, ok := seen[item.Key()]; ok {
			continue
		}
		seen[item.Key()] = struct{}{}
		list = append(list, item)
	}
	return list
}

// RemoveById drops the record with the given id, keeping order.
func RemoveById[T Keyed](list []T, id int) []T {
	for i, item := range list {
		if item.Key() == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// ReplaceById swaps the held copy for the server-returned authoritative one.
// No-op when the id is not present.
func ReplaceById[T Keyed](list []T, item T) []T {
	for i, held := range list {
		if held.Key() == item.Key() {
			list[i] = item
			return list
		}
	}
	return list
}
