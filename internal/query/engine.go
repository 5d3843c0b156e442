// Package query applies search, filtering and pagination over an in-memory
// collection. All functions are pure: the same collection and inputs always
// produce the same result, and the source slice is never mutated.
package query

import "strings"

// Predicate decides whether a record passes one filter.
type Predicate[T any] func(T) bool

// TextSearch matches records whose configured textual fields contain the
// query substring, case-insensitively. An empty query matches everything.
func TextSearch[T any](search string, fields func(T) []string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" || fields == nil {
		return func(T) bool { return true }
	}
	return func(record T) bool {
		for _, field := range fields(record) {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

// FieldEquals matches records whose extracted field equals the wanted value
// exactly. An empty wanted value is a no-op filter.
func FieldEquals[T any](want string, extract func(T) string) Predicate[T] {
	if want == "" || extract == nil {
		return func(T) bool { return true }
	}
	return func(record T) bool { return extract(record) == want }
}

// Apply evaluates all predicates against the collection, ANDing them, and
// returns the passing records in their original order.
func Apply[T any](collection []T, predicates ...Predicate[T]) []T {
	filtered := make([]T, 0, len(collection))
	for _, record := range collection {
		pass := true
		for _, predicate := range predicates {
			if predicate != nil && !predicate(record) {
				pass = false
				break
			}
		}
		if pass {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Page is one window over a filtered collection.
type Page[T any] struct {
	Items       []T
	PageIndex   int
	PageSize    int
	TotalItems  int
	TotalPages  int
	PageNumbers []int
}

// Paginate slices a contiguous 1-based window out of the filtered collection.
// Out-of-range indexes clamp to the nearest valid page rather than erroring;
// an empty collection yields page 1 of 1 with no items.
func Paginate[T any](filtered []T, pageIndex, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > totalPages {
		pageIndex = totalPages
	}
	start := (pageIndex - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:       filtered[start:end],
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(pageIndex, totalPages),
	}
}

// PageNumbers produces the sliding window of page buttons: at most five,
// centered on the current page, shifted at the boundaries so exactly
// min(5, totalPages) buttons show.
func PageNumbers(current, totalPages int) []int {
	const window = 5
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	start := current - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > totalPages {
		end = totalPages
		start = end - window + 1
		if start < 1 {
			start = 1
		}
	}
	numbers := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}
