package query

import (
	"fmt"
	"testing"
)

type item struct {
	ID     string
	Name   string
	Status string
}

func sampleItems(n int) []item {
	items := make([]item, 0, n)
	for i := 1; i <= n; i++ {
		status := "active"
		if i%3 == 0 {
			status = "archived"
		}
		items = append(items, item{
			ID:     fmt.Sprintf("id-%d", i),
			Name:   fmt.Sprintf("Document %d", i),
			Status: status,
		})
	}
	return items
}

func itemFields(it item) []string { return []string{it.Name, it.ID} }

func TestApplyEmptySearchReturnsCollectionUnchanged(t *testing.T) {
	items := sampleItems(7)
	filtered := Apply(items, TextSearch("", itemFields))
	if len(filtered) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(filtered))
	}
	for i := range items {
		if filtered[i].ID != items[i].ID {
			t.Errorf("order changed at %d: got %s expected %s", i, filtered[i].ID, items[i].ID)
		}
	}
}

func TestTextSearchCaseInsensitiveAnyField(t *testing.T) {
	items := sampleItems(5)
	filtered := Apply(items, TextSearch("DOCUMENT 3", itemFields))
	if len(filtered) != 1 || filtered[0].ID != "id-3" {
		t.Fatalf("expected only id-3, got %v", filtered)
	}
	// Matching on the second configured field.
	filtered = Apply(items, TextSearch("id-4", itemFields))
	if len(filtered) != 1 || filtered[0].ID != "id-4" {
		t.Fatalf("expected only id-4, got %v", filtered)
	}
}

func TestFieldEqualsUnsetIsNoOp(t *testing.T) {
	items := sampleItems(6)
	filtered := Apply(items, FieldEquals("", func(it item) string { return it.Status }))
	if len(filtered) != 6 {
		t.Fatalf("unset categorical filter must match everything, got %d", len(filtered))
	}
	filtered = Apply(items, FieldEquals("archived", func(it item) string { return it.Status }))
	if len(filtered) != 2 {
		t.Fatalf("expected 2 archived items, got %d", len(filtered))
	}
}

func TestPredicatesAreANDed(t *testing.T) {
	items := sampleItems(12)
	filtered := Apply(items,
		TextSearch("document 1", itemFields), // matches 1, 10, 11, 12
		FieldEquals("archived", func(it item) string { return it.Status }), // 3, 6, 9, 12
	)
	if len(filtered) != 1 || filtered[0].ID != "id-12" {
		t.Fatalf("expected only id-12, got %v", filtered)
	}
}

func TestPaginateWindowSizes(t *testing.T) {
	items := sampleItems(23)
	cases := []struct {
		pageIndex, pageSize int
		expectLen           int
		expectIndex         int
	}{
		{1, 10, 10, 1},
		{2, 10, 10, 2},
		{3, 10, 3, 3},
		{4, 10, 3, 3}, // clamps to last page
		{0, 10, 10, 1},
		{1, 50, 23, 1},
	}
	for _, tc := range cases {
		page := Paginate(items, tc.pageIndex, tc.pageSize)
		if len(page.Items) != tc.expectLen {
			t.Errorf("page %d size %d: got %d items, expected %d", tc.pageIndex, tc.pageSize, len(page.Items), tc.expectLen)
		}
		if page.PageIndex != tc.expectIndex {
			t.Errorf("page %d size %d: clamped index %d, expected %d", tc.pageIndex, tc.pageSize, page.PageIndex, tc.expectIndex)
		}
	}
}

func TestPaginateOutOfRangeClampsToLastPageContent(t *testing.T) {
	items := sampleItems(12)
	page := Paginate(items, 3, 10)
	if page.TotalPages != 2 {
		t.Fatalf("expected 2 total pages, got %d", page.TotalPages)
	}
	if page.PageIndex != 2 {
		t.Fatalf("expected clamp to page 2, got %d", page.PageIndex)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "id-11" || page.Items[1].ID != "id-12" {
		t.Fatalf("expected page 2 content id-11,id-12, got %v", page.Items)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]item{}, 5, 10)
	if page.PageIndex != 1 || page.TotalPages != 1 || len(page.Items) != 0 {
		t.Fatalf("empty collection: got index=%d pages=%d items=%d", page.PageIndex, page.TotalPages, len(page.Items))
	}
}

func TestPageNumbersWindow(t *testing.T) {
	cases := []struct {
		current, total int
		expected       []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{3, 5, []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		got := PageNumbers(tc.current, tc.total)
		if len(got) != len(tc.expected) {
			t.Errorf("PageNumbers(%d,%d) = %v, expected %v", tc.current, tc.total, got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("PageNumbers(%d,%d) = %v, expected %v", tc.current, tc.total, got, tc.expected)
				break
			}
		}
	}
}
