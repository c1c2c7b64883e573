package radix

// Pad is the padding byte. It sorts before 'A' and is never part of an item.
const Pad byte = '@'

// Buckets is the alphabet size: Pad followed by 'A' through 'Z'.
const Buckets = 27

// Bucket maps a key byte to its bucket: Pad is 0, 'A' is 1, ..., 'Z' is 26.
func Bucket(c byte) int {
	if c == Pad {
		return 0
	}
	return int(c-'A') + 1
}

// Letter reports whether c may appear in an item: the sort alphabet without Pad.
func Letter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// Sort performs a stable LSD radix sort of data on the first width bytes of
// each element's key. This is O(n*width) and never compares two keys directly.
//
// Every key must be at least width bytes long and contain only alphabet
// bytes; keys outside the alphabet panic. Callers validate at ingestion.
//
// One counting pass runs per column, rightmost column first. The scratch
// buffer is allocated once and the two buffers swap roles between passes.
func Sort[T any](data []T, width int, key func(*T) string) {
	n := len(data)
	if n <= 1 || width <= 0 {
		return
	}

	scratch := make([]T, n)
	src, dst := data, scratch
	for col := width - 1; col >= 0; col-- {
		radixPass(src, dst, col, key)
		src, dst = dst, src
	}

	// An odd number of passes leaves the result in scratch
	if width%2 == 1 {
		copy(data, src)
	}
}

// radixPass performs one counting sort pass on column col, src -> dst.
func radixPass[T any](src, dst []T, col int, key func(*T) string) {
	var counts [Buckets]int

	for i := range src {
		counts[Bucket(key(&src[i])[col])]++
	}

	// Convert counts to starting offsets
	total := 0
	for i := range counts {
		count := counts[i]
		counts[i] = total
		total += count
	}

	// Place elements; scanning src in order keeps equal keys stable
	for i := range src {
		b := Bucket(key(&src[i])[col])
		dst[counts[b]] = src[i]
		counts[b]++
	}
}
