package grouping

import (
	"strings"

	"github.com/ChristianF88/buddyx/radix"
)

// PadTo right-pads s with radix.Pad up to width. width must be at least len(s).
func PadTo(s string, width int) string {
	if len(s) == width {
		return s
	}
	return s + strings.Repeat(string(radix.Pad), width-len(s))
}

// PadItems pads every item to width and records its original length.
func PadItems(items []string, width int) []PaddedItem {
	padded := make([]PaddedItem, len(items))
	for i, item := range items {
		padded[i] = PaddedItem{Padded: PadTo(item, width), Length: len(item)}
	}
	return padded
}

// StripPadding undoes PadItems.
func StripPadding(padded []PaddedItem) []string {
	items := make([]string, len(padded))
	for i, p := range padded {
		items[i] = p.Padded[:p.Length]
	}
	return items
}
