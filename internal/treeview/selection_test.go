package treeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(s *Selection, row int, mods Modifiers) {
	s.Press(row, true, mods, ClickSingle)
	s.Release(row, true)
}

func anchorOf(t *testing.T, s *Selection) int {
	t.Helper()
	a, ok := s.Anchor()
	if !ok {
		return -1
	}
	return a
}

func TestSelectionPlainClick(t *testing.T) {
	s := NewSelection(true, true)
	for _, row := range []int{3, 0, 7, 2} {
		click(s, row, ModNone)
		assert.Equal(t, []int{row}, s.Rows())
		assert.Equal(t, row, anchorOf(t, s))
	}
}

func TestSelectionShiftClickKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		anchor int
		target int
		want   []int
	}{
		{"forward", 2, 5, []int{2, 3, 4, 5}},
		{"backward", 2, 0, []int{0, 1, 2}},
		{"on anchor collapses", 4, 4, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(true, true)
			click(s, tt.anchor, ModNone)
			click(s, tt.target, ModShift)
			assert.Equal(t, tt.want, s.Rows())
			assert.Equal(t, tt.anchor, anchorOf(t, s))
		})
	}
}

func TestSelectionShiftClickSequence(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)

	click(s, 0, ModShift)
	assert.Equal(t, []int{0, 1, 2}, s.Rows())

	click(s, 2, ModShift)
	assert.Equal(t, []int{2}, s.Rows())
	assert.Equal(t, 2, anchorOf(t, s))
}

func TestSelectionShiftClickWithoutAnchor(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 3, ModShift)
	assert.Equal(t, []int{3}, s.Rows())
	assert.Equal(t, 3, anchorOf(t, s))
}

func TestSelectionCtrlClickToggles(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 1, ModNone)
	click(s, 5, ModCtrl)
	prior := s.Rows()

	click(s, 3, ModCtrl)
	assert.Equal(t, []int{1, 3, 5}, s.Rows())
	assert.Equal(t, 3, anchorOf(t, s))

	click(s, 3, ModCtrl)
	assert.Equal(t, prior, s.Rows())
}

func TestSelectionCtrlRemoveAnchor(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 1, ModNone)
	click(s, 4, ModCtrl)
	click(s, 6, ModCtrl)
	assert.Equal(t, 6, anchorOf(t, s))

	click(s, 1, ModCtrl)
	assert.Equal(t, 6, anchorOf(t, s), "removing a non-anchor row keeps the anchor")

	click(s, 6, ModCtrl)
	assert.Equal(t, 4, anchorOf(t, s), "anchor returns to the row that was anchor when 6 was added")

	click(s, 4, ModCtrl)
	assert.Empty(t, s.Rows())
	assert.Equal(t, -1, anchorOf(t, s))
}

func TestSelectionCtrlDoubleToggleRestoresAnchor(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 4, ModShift)
	require.Equal(t, []int{2, 3, 4}, s.Rows())

	click(s, 6, ModCtrl)
	assert.Equal(t, 6, anchorOf(t, s))
	click(s, 6, ModCtrl)
	assert.Equal(t, []int{2, 3, 4}, s.Rows())
	assert.Equal(t, 2, anchorOf(t, s))

	click(s, 0, ModShift)
	assert.Equal(t, []int{0, 1, 2}, s.Rows())
}

func TestSelectionCtrlRestoreFollowsRemap(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 5, ModCtrl)

	// Two rows inserted above everything.
	s.Remap(func(old int) (int, bool) { return old + 2, true })
	click(s, 7, ModCtrl)
	assert.Equal(t, []int{4}, s.Rows())
	assert.Equal(t, 4, anchorOf(t, s))
}

func TestSelectionCtrlRestoreForgottenAfterSetRows(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 1, ModNone)
	click(s, 4, ModCtrl)
	s.SetRows(1, 2, 4)

	click(s, 4, ModCtrl)
	assert.Equal(t, []int{1, 2}, s.Rows())
	assert.Equal(t, 2, anchorOf(t, s), "a replaced selection falls back to the latest row")
}

func TestSelectionPressOnNothingClears(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 1, ModNone)
	click(s, 3, ModShift)

	s.Press(0, false, ModNone, ClickSingle)
	s.Release(0, false)
	assert.Empty(t, s.Rows())
	assert.Equal(t, -1, anchorOf(t, s))
}

func TestSelectionDragExtend(t *testing.T) {
	s := NewSelection(true, true)
	s.Press(4, true, ModNone, ClickSingle)

	assert.True(t, s.Motion(6, true, ModNone))
	assert.Equal(t, []int{4, 5, 6}, s.Rows())

	assert.True(t, s.Motion(2, true, ModNone))
	assert.Equal(t, []int{2, 3, 4}, s.Rows())

	assert.False(t, s.Motion(0, false, ModNone), "no row under pointer")
	assert.Equal(t, []int{2, 3, 4}, s.Rows())

	assert.False(t, s.Motion(7, true, ModCtrl), "modifier suppresses drag-extend")

	s.Release(2, true)
	assert.False(t, s.Motion(8, true, ModNone), "released button does not drag")
	assert.Equal(t, 4, anchorOf(t, s))
}

func TestSelectionDragRequiresMultiSelect(t *testing.T) {
	s := NewSelection(false, true)
	s.Press(1, true, ModNone, ClickSingle)
	assert.False(t, s.Motion(3, true, ModNone))
	assert.Equal(t, []int{1}, s.Rows())

	click(s, 4, ModShift)
	assert.Equal(t, []int{4}, s.Rows(), "shift acts as a plain click")
}

func TestSelectionPressInsideSelectionDefersCollapse(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 5, ModShift)

	s.Press(3, true, ModNone, ClickSingle)
	assert.Equal(t, []int{2, 3, 4, 5}, s.Rows(), "selection kept until release")
	p, ok := s.Pending()
	assert.True(t, ok)
	assert.Equal(t, 3, p)

	s.Motion(3, true, ModNone)
	_, ok = s.Pending()
	assert.True(t, ok, "motion within the pressed row keeps the pending collapse")

	s.Release(3, true)
	assert.Equal(t, []int{3}, s.Rows())
	assert.Equal(t, 3, anchorOf(t, s))
}

func TestSelectionLeavingPressedRowCancelsCollapse(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 5, ModShift)

	s.Press(3, true, ModNone, ClickSingle)
	s.Motion(6, true, ModNone)
	_, ok := s.Pending()
	assert.False(t, ok)
	s.Release(6, true)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, s.Rows(), "drag extended from the anchor")
}

func TestSelectionWithoutDragCollapsesImmediately(t *testing.T) {
	s := NewSelection(true, false)
	click(s, 2, ModNone)
	click(s, 5, ModShift)

	s.Press(3, true, ModNone, ClickSingle)
	assert.Equal(t, []int{3}, s.Rows())
}

func TestSelectionRePressResetsAnchor(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 4, ModShift)
	assert.Equal(t, 2, anchorOf(t, s))

	click(s, 8, ModNone)
	assert.Equal(t, 8, anchorOf(t, s))

	click(s, 6, ModShift)
	assert.Equal(t, []int{6, 7, 8}, s.Rows())
}

func TestSelectionClickDispatch(t *testing.T) {
	tests := []struct {
		name     string
		press    int
		class    ClickClass
		release  int
		released bool
		want     ClickClass
	}{
		{"single on same row", 3, ClickSingle, 3, true, ClickSingle},
		{"double on same row", 3, ClickDouble, 3, true, ClickDouble},
		{"row zero qualifies", 0, ClickDouble, 0, true, ClickDouble},
		{"released elsewhere", 3, ClickSingle, 4, true, ClickNone},
		{"released over nothing", 3, ClickDouble, 0, false, ClickNone},
		{"unclassified press", 3, ClickNone, 3, true, ClickNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(true, true)
			s.Press(tt.press, true, ModNone, tt.class)
			assert.Equal(t, tt.want, s.Release(tt.release, tt.released))
			assert.Equal(t, ClickNone, s.Release(tt.release, tt.released), "a release without press never fires")
		})
	}
}

func TestSelectionNotifiesOnlyTransitions(t *testing.T) {
	s := NewSelection(true, true)
	changes := map[int][]bool{}
	s.OnChange(func(row int, selected bool) {
		changes[row] = append(changes[row], selected)
	})

	click(s, 2, ModNone)
	click(s, 4, ModShift)
	assert.Equal(t, map[int][]bool{2: {true}, 3: {true}, 4: {true}}, changes)

	changes = map[int][]bool{}
	click(s, 3, ModShift)
	assert.Equal(t, map[int][]bool{4: {false}}, changes)
}

func TestSelectionRemap(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 1, ModNone)
	click(s, 3, ModShift)

	// Row 2 deleted; rows after it shift up by one.
	s.Remap(func(old int) (int, bool) {
		switch {
		case old == 2:
			return 0, false
		case old > 2:
			return old - 1, true
		}
		return old, true
	})
	assert.Equal(t, []int{1, 2}, s.Rows())
	assert.Equal(t, 1, anchorOf(t, s))

	// Anchor row deleted.
	s.Remap(func(old int) (int, bool) {
		if old == 1 {
			return 0, false
		}
		if old > 1 {
			return old - 1, true
		}
		return old, true
	})
	assert.Equal(t, []int{1}, s.Rows())
	assert.Equal(t, -1, anchorOf(t, s))
}

func TestSelectionAllAndBound(t *testing.T) {
	s := NewSelection(true, true)
	s.All(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Rows())
	assert.Equal(t, 0, anchorOf(t, s))

	s.Bound(3)
	assert.Equal(t, []int{0, 1, 2}, s.Rows())

	s.SetRows(2, 0)
	assert.Equal(t, []int{0, 2}, s.Rows())
	assert.Equal(t, 0, anchorOf(t, s))

	s.SetRows()
	assert.Empty(t, s.Rows())
}

func TestSelectionPendingPressKeepsAnchorUntilRelease(t *testing.T) {
	s := NewSelection(true, true)
	click(s, 2, ModNone)
	click(s, 5, ModShift)

	s.Press(4, true, ModNone, ClickSingle)
	assert.Equal(t, 2, anchorOf(t, s), "a press inside the selection defers")
	assert.Equal(t, []int{2, 3, 4, 5}, s.Rows())

	s.Release(4, true)
	assert.Equal(t, []int{4}, s.Rows())
	assert.Equal(t, 4, anchorOf(t, s))
}
