package grouping

import (
	"github.com/ChristianF88/buddyx/pools"
	"github.com/ChristianF88/buddyx/radix"
)

// signatureLength is the unpadded length of the signature for items: the
// items plus one separator between each pair.
func signatureLength(items []string) int {
	n := len(items) - 1
	for _, item := range items {
		n += len(item)
	}
	return n
}

// BuildSignatures returns a copy of users with Signature set, and the width
// every signature was padded to.
//
// A signature is the user's sorted items joined with radix.Pad and then
// right-padded with radix.Pad to the longest signature in the set. The
// separator sorts below every letter, so signature order matches the
// lexicographic order of the item lists, and lists such as [AB C] and
// [A BC] never collide. Groups therefore come out item by item: [A C]
// sorts before [AB], where plain concatenation would compare "AC" with
// "AB" and put [AB] first.
func BuildSignatures(users []UserRecord) ([]UserRecord, int) {
	width := 0
	for _, u := range users {
		if n := signatureLength(u.Items); n > width {
			width = n
		}
	}

	out := make([]UserRecord, len(users))
	builder := pools.GetBuilderFromPool(pools.Signatures)
	defer pools.ReturnBuilderToPool(pools.Signatures, builder)

	for i, u := range users {
		builder.Reset()
		builder.Grow(width)
		for j, item := range u.Items {
			if j > 0 {
				builder.WriteByte(radix.Pad)
			}
			builder.WriteString(item)
		}
		for builder.Len() < width {
			builder.WriteByte(radix.Pad)
		}
		out[i] = UserRecord{ID: u.ID, Items: u.Items, Signature: builder.String()}
	}
	return out, width
}
