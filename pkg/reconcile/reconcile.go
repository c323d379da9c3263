// Package reconcile implements the merge rule clients apply when a relayed
// change event arrives: insert-if-absent, replace-if-present,
// remove-if-present, keyed by row id. The HTTP response to the originating
// request and the relayed event are independent delivery paths, so the same
// change can arrive twice; every function here is a no-op on redelivery.
package reconcile

// Created prepends item unless an element with the same id already exists.
func Created[T any](list []T, item T, id func(T) int) []T {
	if indexOf(list, id(item), id) >= 0 {
		return list
	}
	return append([]T{item}, list...)
}

// Updated replaces the element with item's id, if present.
func Updated[T any](list []T, item T, id func(T) int) []T {
	if i := indexOf(list, id(item), id); i >= 0 {
		list[i] = item
	}
	return list
}

// Deleted removes the element with the given id, if present.
func Deleted[T any](list []T, deletedID int, id func(T) int) []T {
	if i := indexOf(list, deletedID, id); i >= 0 {
		return append(list[:i], list[i+1:]...)
	}
	return list
}

func indexOf[T any](list []T, want int, id func(T) int) int {
	for i, it := range list {
		if id(it) == want {
			return i
		}
	}
	return -1
}
