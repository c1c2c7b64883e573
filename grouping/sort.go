package grouping

import "github.com/ChristianF88/buddyx/radix"

// SortItems orders one user's padded items alphabetically in place. width is
// the padded width of every item.
func SortItems(padded []PaddedItem, width int) {
	radix.Sort(padded, width, func(p *PaddedItem) string { return p.Padded })
}

// SortUserItems returns a copy of users where each user's items are in
// alphabetical order. Each user is padded to their own longest item, sorted,
// and stripped again.
func SortUserItems(users []UserRecord) []UserRecord {
	out := make([]UserRecord, len(users))
	for i, u := range users {
		width := itemWidth(u.Items)
		padded := PadItems(u.Items, width)
		SortItems(padded, width)
		out[i] = UserRecord{ID: u.ID, Items: StripPadding(padded)}
	}
	return out
}

// SortBySignature returns a copy of users ordered by signature. Users with
// equal signatures keep their relative order. Every signature must be exactly
// width bytes long.
func SortBySignature(users []UserRecord, width int) []UserRecord {
	out := make([]UserRecord, len(users))
	copy(out, users)
	radix.Sort(out, width, func(u *UserRecord) string { return u.Signature })
	return out
}
