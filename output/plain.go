package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ChristianF88/buddyx/grouping"
	"github.com/ChristianF88/buddyx/pools"
	"github.com/ChristianF88/buddyx/topk"
)

// WriteGroupReport writes one block per group, numbered from 1, with a blank
// line between blocks:
//
//	GROUP 1
//	Movies: CAT,DOG
//	Buddies: 1,2
func WriteGroupReport(w io.Writer, groups []grouping.Group) error {
	builder := pools.GetBuilderFromPool(pools.Lines)
	defer pools.ReturnBuilderToPool(pools.Lines, builder)

	for i, g := range groups {
		builder.Reset()
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString("GROUP ")
		builder.WriteString(strconv.Itoa(i + 1))
		builder.WriteString("\nMovies: ")
		for j, item := range g.Items {
			if j > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(item)
		}
		builder.WriteString("\nBuddies: ")
		for j, id := range g.MemberIDs {
			if j > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.Itoa(id))
		}
		builder.WriteByte('\n')

		if _, err := io.WriteString(w, builder.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTopK writes one ranked line per pair, starting at rank 1.
func WriteTopK(w io.Writer, pairs []topk.Pair) error {
	for i, p := range pairs {
		if _, err := fmt.Fprintf(w, "#%d: User ID: %d Time spent: %d\n", i+1, p.ID, p.Score); err != nil {
			return err
		}
	}
	return nil
}

// FormatNumber renders n with comma thousands separators.
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
