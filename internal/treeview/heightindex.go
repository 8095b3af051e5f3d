package treeview

// heightIndex is a Fenwick tree over row heights. It answers "sum of the
// first n heights" and "first row whose bottom reaches y" in O(log n).
type heightIndex struct {
	tree []int // 1-based
	n    int
	top  int // highest power of two <= n
}

func (h *heightIndex) build(heights []int) {
	h.n = len(heights)
	h.tree = make([]int, h.n+1)
	for i, v := range heights {
		h.tree[i+1] += v
		if p := i + 1 + (i+1)&-(i+1); p <= h.n {
			h.tree[p] += h.tree[i+1]
		}
	}
	h.top = 1
	for h.top*2 <= h.n {
		h.top *= 2
	}
}

// add adds delta to row i.
func (h *heightIndex) add(i, delta int) {
	for p := i + 1; p <= h.n; p += p & -p {
		h.tree[p] += delta
	}
}

// prefix returns the sum of the first n heights.
func (h *heightIndex) prefix(n int) int {
	if n > h.n {
		n = h.n
	}
	sum := 0
	for p := n; p > 0; p -= p & -p {
		sum += h.tree[p]
	}
	return sum
}

func (h *heightIndex) total() int { return h.prefix(h.n) }

// search returns the number of rows whose bottom edge is at or above y,
// which is the index of the row whose half-open interval [top, top+height)
// contains y. It returns n when y is at or below the content bottom.
func (h *heightIndex) search(y int) int {
	if h.n == 0 {
		return 0
	}
	pos, rem := 0, y
	for step := h.top; step > 0; step >>= 1 {
		if next := pos + step; next <= h.n && h.tree[next] <= rem {
			pos = next
			rem -= h.tree[next]
		}
	}
	return pos
}
