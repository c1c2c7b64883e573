package grouping

import (
	"fmt"

	"github.com/ChristianF88/buddyx/radix"
)

// UserRecord is one user and their declared favorite items.
type UserRecord struct {
	ID    int
	Items []string
	// Signature is empty until BuildSignatures has run.
	Signature string
}

// PaddedItem is an item padded to a fixed width together with its original
// length, so the padding can be removed exactly.
type PaddedItem struct {
	Padded string
	Length int
}

// Dataset is the full set of users for one run.
type Dataset struct {
	Users []UserRecord
	// MaxItemWidth is the longest single item across all users. The
	// signature width is only known after a run, see Result.
	MaxItemWidth int
}

// Group is a set of users whose sorted item lists are identical.
type Group struct {
	Items     []string
	MemberIDs []int
}

// ValidateRecord checks the ingestion invariants of a single user: at least
// one item, no empty item, and only A-Z bytes.
func ValidateRecord(u UserRecord) error {
	if len(u.Items) == 0 {
		return &RecordError{ID: u.ID, Err: ErrEmptyItemList}
	}
	for _, item := range u.Items {
		if item == "" {
			return &RecordError{ID: u.ID, Err: fmt.Errorf("%w: empty item", ErrMalformedRecord)}
		}
		for i := 0; i < len(item); i++ {
			if !radix.Letter(item[i]) {
				return &RecordError{ID: u.ID, Err: fmt.Errorf("%w: %q in item %q", ErrInvalidAlphabet, item[i], item)}
			}
		}
	}
	return nil
}

// NewDataset validates users and computes MaxItemWidth. Users keep their
// input order.
func NewDataset(users []UserRecord) (*Dataset, error) {
	seen := make(map[int]struct{}, len(users))
	ds := &Dataset{Users: users}
	for _, u := range users {
		if err := ValidateRecord(u); err != nil {
			return nil, err
		}
		if _, dup := seen[u.ID]; dup {
			return nil, &RecordError{ID: u.ID, Err: ErrDuplicateID}
		}
		seen[u.ID] = struct{}{}
		if w := itemWidth(u.Items); w > ds.MaxItemWidth {
			ds.MaxItemWidth = w
		}
	}
	return ds, nil
}

// itemWidth returns the length of the longest item.
func itemWidth(items []string) int {
	width := 0
	for _, item := range items {
		if len(item) > width {
			width = len(item)
		}
	}
	return width
}
