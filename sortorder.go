package main

import (
	"cmp"
	"fmt"
	"strings"
)

type SortOrder int

const (
	SortNameAscending SortOrder = iota
	SortNameDescending
	SortModifiedAscending
	SortModifiedDescending
	SortSizeAscending
	SortSizeDescending
)

// SortOrders lists every order in the order they are offered to the user
var SortOrders = []SortOrder{
	SortNameAscending,
	SortNameDescending,
	SortModifiedAscending,
	SortModifiedDescending,
	SortSizeAscending,
	SortSizeDescending,
}

var sortOrderKeys = map[SortOrder]string{
	SortNameAscending:      "name-asc",
	SortNameDescending:     "name-desc",
	SortModifiedAscending:  "modified-asc",
	SortModifiedDescending: "modified-desc",
	SortSizeAscending:      "size-asc",
	SortSizeDescending:     "size-desc",
}

var sortOrderMenuNames = map[SortOrder]string{
	SortNameAscending:      "A-Z",
	SortNameDescending:     "Z-A",
	SortModifiedAscending:  "First Modified",
	SortModifiedDescending: "Last Modified",
	SortSizeAscending:      "Smallest",
	SortSizeDescending:     "Largest",
}

func ParseSortOrder(s string) (SortOrder, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for order, k := range sortOrderKeys {
		if k == key {
			return order, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sort order %q", ErrValidation, s)
}

func (so SortOrder) String() string {
	if k, ok := sortOrderKeys[so]; ok {
		return k
	}
	return fmt.Sprintf("SortOrder(%d)", int(so))
}

// MenuName is the human readable label for the order
func (so SortOrder) MenuName() string {
	return sortOrderMenuNames[so]
}

func (so SortOrder) MarshalText() ([]byte, error) {
	if _, ok := sortOrderKeys[so]; !ok {
		return nil, fmt.Errorf("%w: invalid sort order %d", ErrValidation, int(so))
	}
	return []byte(so.String()), nil
}

func (so *SortOrder) UnmarshalText(text []byte) error {
	order, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*so = order
	return nil
}

// Compare orders two image files. Ties fall back to the name so listings
// are stable across reloads.
func (so SortOrder) Compare(a, b ImageFile) int {
	var c int
	switch so {
	case SortNameAscending, SortNameDescending:
		c = strings.Compare(a.Name, b.Name)
	case SortModifiedAscending, SortModifiedDescending:
		c = a.ModTime.Compare(b.ModTime)
	case SortSizeAscending, SortSizeDescending:
		c = cmp.Compare(a.Size, b.Size)
	}

	if so.descending() {
		c = -c
	}
	if c == 0 {
		c = strings.Compare(a.Name, b.Name)
	}
	return c
}

func (so SortOrder) descending() bool {
	switch so {
	case SortNameDescending, SortModifiedDescending, SortSizeDescending:
		return true
	}
	return false
}
