package grouping

import "iter"

// Span is a half-open range [Start, End) of users sharing one signature.
type Span struct {
	Start int
	End   int
}

// Len returns the number of users in the span.
func (r Span) Len() int {
	return r.End - r.Start
}

// Runs yields every maximal run of equal signatures in users, left to right.
// users must already be ordered by signature. The sequence can be ranged over
// any number of times.
func Runs(users []UserRecord) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		start := 0
		for start < len(users) {
			end := start + 1
			for end < len(users) && users[end].Signature == users[start].Signature {
				end++
			}
			if !yield(Span{Start: start, End: end}) {
				return
			}
			start = end
		}
	}
}

// ScanGroups partitions signature-sorted users into groups of two or more
// members. Users whose signature matches nobody else are returned as solitary
// ids, in sorted order.
func ScanGroups(users []UserRecord) (groups []Group, solitary []int) {
	for run := range Runs(users) {
		if run.Len() < 2 {
			solitary = append(solitary, users[run.Start].ID)
			continue
		}
		members := make([]int, 0, run.Len())
		for _, u := range users[run.Start:run.End] {
			members = append(members, u.ID)
		}
		items := make([]string, len(users[run.Start].Items))
		copy(items, users[run.Start].Items)
		groups = append(groups, Group{Items: items, MemberIDs: members})
	}
	return groups, solitary
}
