// seehuhn.de/go/visibility - 2D visibility polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package visibility

import (
	"fmt"
	"slices"
)

// SortMode selects the algorithm used to order the sweep events.
type SortMode int

const (
	// SortFast uses an unstable comparison sort with O(n log n) expected
	// running time.
	SortFast SortMode = iota

	// SortStableHybrid uses a stable merge sort which switches to insertion
	// sort for runs at or below the insertion threshold.
	SortStableHybrid
)

// DefaultInsertionThreshold is the run length at or below which
// SortStableHybrid uses insertion sort.
const DefaultInsertionThreshold = 10

func (m SortMode) String() string {
	switch m {
	case SortFast:
		return "fast"
	case SortStableHybrid:
		return "stable"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode converts a textual sort mode into a SortMode.
// The short forms "q" (quick) and "m" (merge) are accepted as well as
// "fast" and "stable".
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "q", "fast":
		return SortFast, nil
	case "m", "stable":
		return SortStableHybrid, nil
	}
	return 0, fmt.Errorf("%w: unknown sort mode %q", ErrInvalidArgument, s)
}

// MarshalText implements [encoding.TextMarshaler].
func (m SortMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: unknown sort mode %d", ErrInvalidArgument, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *SortMode) UnmarshalText(text []byte) error {
	mode, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m SortMode) valid() bool {
	return m == SortFast || m == SortStableHybrid
}

// SortFastFunc sorts s in place using cmp.  The sort is not stable.
func SortFastFunc[E any](s []E, cmp func(a, b E) int) {
	slices.SortFunc(s, cmp)
}

// SortStableFunc sorts s in place using cmp.  Elements which compare as
// equal keep their relative order.  Runs of length at most threshold are
// sorted by insertion sort; a threshold below 2 gives a pure merge sort.
func SortStableFunc[E any](s []E, cmp func(a, b E) int, threshold int) {
	if len(s) < 2 {
		return
	}
	buf := make([]E, len(s))
	mergeSort(s, buf, cmp, threshold)
}

// mergeSort sorts s using buf (of the same length) as scratch space.
func mergeSort[E any](s, buf []E, cmp func(a, b E) int, threshold int) {
	n := len(s)
	if n <= threshold {
		insertionSort(s, cmp)
		return
	}
	if n < 2 {
		return
	}

	mid := n / 2
	mergeSort(s[:mid], buf[:mid], cmp, threshold)
	mergeSort(s[mid:], buf[mid:], cmp, threshold)

	// already in order
	if cmp(s[mid-1], s[mid]) <= 0 {
		return
	}

	copy(buf, s)
	i, j, k := 0, mid, 0
	for i < mid && j < n {
		// take from the left run on ties to keep the sort stable
		if cmp(buf[j], buf[i]) < 0 {
			s[k] = buf[j]
			j++
		} else {
			s[k] = buf[i]
			i++
		}
		k++
	}
	k += copy(s[k:], buf[i:mid])
	copy(s[k:], buf[j:n])
}

// insertionSort is a stable in-place insertion sort.
func insertionSort[E any](s []E, cmp func(a, b E) int) {
	for i := 1; i < len(s); i++ {
		x := s[i]
		j := i
		for j > 0 && cmp(s[j-1], x) > 0 {
			s[j] = s[j-1]
			j--
		}
		s[j] = x
	}
}

// sortWith dispatches to the sort selected by mode.
func sortWith[E any](mode SortMode, s []E, cmp func(a, b E) int, threshold int) {
	if mode == SortStableHybrid {
		SortStableFunc(s, cmp, threshold)
		return
	}
	SortFastFunc(s, cmp)
}
