package treeview

import (
	"fmt"
	"sort"
)

// Remap translates an index from before a structural change to the index the
// same row has afterwards. ok is false when the row was removed.
type Remap func(old int) (idx int, ok bool)

// Store is the ordered row sequence with per-row heights and a cumulative
// height index. Indices are renumbered after every insert or remove.
type Store struct {
	rows    []Row
	heights []int
	index   map[Row]int
	sums    heightIndex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{index: make(map[Row]int)}
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Row returns the row at i.
func (s *Store) Row(i int) (Row, bool) {
	if i < 0 || i >= len(s.rows) {
		return nil, false
	}
	return s.rows[i], true
}

// Rows returns a copy of the row sequence.
func (s *Store) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// IndexOf returns the current index of r.
func (s *Store) IndexOf(r Row) (int, bool) {
	i, ok := s.index[r]
	return i, ok
}

// Insert places rows at pos, shifting later rows down. pos must lie in
// [0, Len()]. Either every row is inserted or none is.
func (s *Store) Insert(pos int, rows ...Row) (Remap, error) {
	if pos < 0 || pos > len(s.rows) {
		return nil, fmt.Errorf("insert at %d of %d: %w", pos, len(s.rows), ErrInsertPosition)
	}
	heights := make([]int, len(rows))
	seen := make(map[Row]struct{}, len(rows))
	for i, r := range rows {
		if _, dup := s.index[r]; dup {
			return nil, fmt.Errorf("insert row %d: %w", i, ErrDuplicateRow)
		}
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("insert row %d: %w", i, ErrDuplicateRow)
		}
		seen[r] = struct{}{}
		h := r.Height()
		if h <= 0 {
			return nil, fmt.Errorf("insert row %d (height %d): %w", i, h, ErrRowHeight)
		}
		heights[i] = h
	}

	n, oldLen := len(rows), len(s.rows)
	merged := make([]Row, 0, oldLen+n)
	merged = append(append(append(merged, s.rows[:pos]...), rows...), s.rows[pos:]...)
	mergedHeights := make([]int, 0, oldLen+n)
	mergedHeights = append(append(append(mergedHeights, s.heights[:pos]...), heights...), s.heights[pos:]...)
	s.rows = merged
	s.heights = mergedHeights
	s.reindex(pos)

	return func(old int) (int, bool) {
		if old < 0 || old >= oldLen {
			return 0, false
		}
		if old >= pos {
			return old + n, true
		}
		return old, true
	}, nil
}

// Append adds rows at the end.
func (s *Store) Append(rows ...Row) (Remap, error) {
	return s.Insert(len(s.rows), rows...)
}

// Remove deletes the given rows. Rows not in the store are skipped. It
// returns the removed rows in their former order and the index remap, which
// is nil when nothing was removed.
func (s *Store) Remove(rows ...Row) ([]Row, Remap) {
	var gone []int
	for _, r := range rows {
		if i, ok := s.index[r]; ok {
			gone = append(gone, i)
			delete(s.index, r)
		}
	}
	if len(gone) == 0 {
		return nil, nil
	}
	sort.Ints(gone)
	gone = dedupe(gone)

	removed := make([]Row, 0, len(gone))
	keptRows := s.rows[:0:0]
	keptHeights := s.heights[:0:0]
	g := 0
	for i, r := range s.rows {
		if g < len(gone) && gone[g] == i {
			removed = append(removed, r)
			g++
			continue
		}
		keptRows = append(keptRows, r)
		keptHeights = append(keptHeights, s.heights[i])
	}
	oldLen := len(s.rows)
	s.rows = keptRows
	s.heights = keptHeights
	s.reindex(gone[0])

	return removed, func(old int) (int, bool) {
		if old < 0 || old >= oldLen {
			return 0, false
		}
		k := sort.SearchInts(gone, old)
		if k < len(gone) && gone[k] == old {
			return 0, false
		}
		return old - k, true
	}
}

// Resize re-reads the height of r and updates the cumulative index. It
// returns the height delta.
func (s *Store) Resize(r Row) (int, error) {
	i, ok := s.index[r]
	if !ok {
		return 0, ErrUnknownRow
	}
	h := r.Height()
	if h <= 0 {
		return 0, fmt.Errorf("resize row %d (height %d): %w", i, h, ErrRowHeight)
	}
	delta := h - s.heights[i]
	if delta != 0 {
		s.heights[i] = h
		s.sums.add(i, delta)
	}
	return delta, nil
}

// HeightOf returns the cached height of row i.
func (s *Store) HeightOf(i int) int {
	if i < 0 || i >= len(s.heights) {
		return 0
	}
	return s.heights[i]
}

// Top returns the cumulative offset of row i's top edge.
func (s *Store) Top(i int) int {
	return s.sums.prefix(i)
}

// TotalHeight returns the sum of all row heights.
func (s *Store) TotalHeight() int { return s.sums.total() }

// VisibleRange maps a scroll offset and page size to the rows that intersect
// the page [offset, offset+page). Row intervals are half-open, so every
// coordinate belongs to exactly one row. first is the row containing offset,
// last is one past the row containing the page's last unit (or Len() when
// the rows end before the page does) and top is first's cumulative top. ok
// is false for an empty store or an offset past the end.
func (s *Store) VisibleRange(offset, page int) (first, last, top int, ok bool) {
	if len(s.rows) == 0 {
		return 0, 0, 0, false
	}
	if offset < 0 {
		offset = 0
	}
	if page < 1 {
		page = 1
	}
	first = s.sums.search(offset)
	if first >= len(s.rows) {
		return 0, 0, 0, false
	}
	last = s.sums.search(offset+page-1) + 1
	if last > len(s.rows) {
		last = len(s.rows)
	}
	return first, last, s.sums.prefix(first), true
}

// RowAt returns the row whose interval [top, top+height) contains content
// coordinate y.
func (s *Store) RowAt(y int) (int, bool) {
	if y < 0 || len(s.rows) == 0 {
		return 0, false
	}
	i := s.sums.search(y)
	if i >= len(s.rows) {
		return 0, false
	}
	return i, true
}

func (s *Store) reindex(from int) {
	for i := from; i < len(s.rows); i++ {
		s.index[s.rows[i]] = i
	}
	s.sums.build(s.heights)
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
