// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package algorithms

import "fmt"

// DuplicatePolicy decides how repeated (user, item) ratings collapse.
type DuplicatePolicy string

const (
	// DuplicateLast keeps the last occurrence in input order.
	DuplicateLast DuplicatePolicy = "last"

	// DuplicateMean averages all occurrences.
	DuplicateMean DuplicatePolicy = "mean"
)

// ParseDuplicatePolicy converts a config string into a DuplicatePolicy.
// An empty string selects DuplicateLast.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicateLast:
		return DuplicateLast, nil
	case DuplicateMean:
		return DuplicateMean, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want %q or %q)", s, DuplicateLast, DuplicateMean)
	}
}

// Triple is a single (user, item, value) rating event.
type Triple struct {
	UserID int
	ItemID int
	Value  float64
}

// UserItemMatrix is a dense user x item rating pivot.
//
// Rows are users and columns are items, both in first-seen input order and
// both derived only from the observed events. A cell value of 0 means
// "unrated"; events with value 0 are dropped during the build.
type UserItemMatrix struct {
	users     []int
	items     []int
	userIndex map[int]int
	itemIndex map[int]int
	cells     [][]float64
	dropped   int
}

// BuildUserItemMatrix pivots rating events into a UserItemMatrix.
func BuildUserItemMatrix(events []Triple, policy DuplicatePolicy) *UserItemMatrix {
	m := &UserItemMatrix{
		userIndex: make(map[int]int),
		itemIndex: make(map[int]int),
	}

	for _, ev := range events {
		if ev.Value == 0 {
			m.dropped++
			continue
		}
		if _, ok := m.userIndex[ev.UserID]; !ok {
			m.userIndex[ev.UserID] = len(m.users)
			m.users = append(m.users, ev.UserID)
		}
		if _, ok := m.itemIndex[ev.ItemID]; !ok {
			m.itemIndex[ev.ItemID] = len(m.items)
			m.items = append(m.items, ev.ItemID)
		}
	}

	m.cells = make([][]float64, len(m.users))
	for u := range m.cells {
		m.cells[u] = make([]float64, len(m.items))
	}

	var counts [][]int
	if policy == DuplicateMean {
		counts = make([][]int, len(m.users))
		for u := range counts {
			counts[u] = make([]int, len(m.items))
		}
	}

	for _, ev := range events {
		if ev.Value == 0 {
			continue
		}
		u := m.userIndex[ev.UserID]
		i := m.itemIndex[ev.ItemID]

		if policy == DuplicateMean {
			counts[u][i]++
			m.cells[u][i] += (ev.Value - m.cells[u][i]) / float64(counts[u][i])
			continue
		}
		m.cells[u][i] = ev.Value
	}

	return m
}

// NumUsers returns the number of rows.
func (m *UserItemMatrix) NumUsers() int {
	return len(m.users)
}

// NumItems returns the number of columns.
func (m *UserItemMatrix) NumItems() int {
	return len(m.items)
}

// Users returns the row user IDs in row order.
func (m *UserItemMatrix) Users() []int {
	out := make([]int, len(m.users))
	copy(out, m.users)
	return out
}

// Items returns the column item IDs in column order.
func (m *UserItemMatrix) Items() []int {
	out := make([]int, len(m.items))
	copy(out, m.items)
	return out
}

// UserIndex resolves a user ID to its row.
func (m *UserItemMatrix) UserIndex(userID int) (int, bool) {
	u, ok := m.userIndex[userID]
	return u, ok
}

// ItemIndex resolves an item ID to its column.
func (m *UserItemMatrix) ItemIndex(itemID int) (int, bool) {
	i, ok := m.itemIndex[itemID]
	return i, ok
}

// Value returns the cell at row u, column i.
func (m *UserItemMatrix) Value(u, i int) float64 {
	return m.cells[u][i]
}

// Row returns a copy of row u.
func (m *UserItemMatrix) Row(u int) []float64 {
	out := make([]float64, len(m.cells[u]))
	copy(out, m.cells[u])
	return out
}

// RatedItems returns the item IDs row u has a rating for, in column order.
func (m *UserItemMatrix) RatedItems(u int) []int {
	var rated []int
	for i, v := range m.cells[u] {
		if v != 0 {
			rated = append(rated, m.items[i])
		}
	}
	return rated
}

// Dropped returns how many zero-valued events were discarded.
func (m *UserItemMatrix) Dropped() int {
	return m.dropped
}

// ColumnMeans averages each column over the given rows, skipping unrated
// cells. The second slice reports whether a column had any rating at all.
func (m *UserItemMatrix) ColumnMeans(rows []int) ([]float64, []bool) {
	means := make([]float64, len(m.items))
	present := make([]bool, len(m.items))
	counts := make([]int, len(m.items))

	for _, u := range rows {
		for i, v := range m.cells[u] {
			if v == 0 {
				continue
			}
			means[i] += v
			counts[i]++
		}
	}

	for i, c := range counts {
		if c > 0 {
			means[i] /= float64(c)
			present[i] = true
		}
	}

	return means, present
}
