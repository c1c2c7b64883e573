package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleItems is the vocabulary generated records draw from. Prefix pairs
// such as CAT/CATS and AB/ABC exercise the padding rules.
var sampleItems = []string{
	"AB", "ABC", "ALIEN", "AMELIE", "BRAVEHEART", "CAT", "CATS", "DUNE",
	"FARGO", "HEAT", "JAWS", "MEMENTO", "PSYCHO", "ROCKY", "SEVEN", "ZODIAC",
}

// GenerateTestRecordFile writes numUsers records of the form id:ITEM,ITEM,...
// to a file in a test temp dir and returns its path. Every user picks one to
// four items from a small vocabulary with a fixed seed, so files are
// reproducible and contain many groups.
func GenerateTestRecordFile(t testing.TB, numUsers int) string {
	t.Helper()

	rng := rand.New(rand.NewSource(int64(numUsers)))
	var content strings.Builder
	for id := 1; id <= numUsers; id++ {
		n := 1 + rng.Intn(4)
		content.WriteString(fmt.Sprintf("%d:", id))
		for j := 0; j < n; j++ {
			if j > 0 {
				content.WriteByte(',')
			}
			content.WriteString(sampleItems[rng.Intn(len(sampleItems))])
		}
		content.WriteByte('\n')
	}

	return WriteTempFile(t, "favoriteMovies.txt", content.String())
}

// GenerateTestScoreFile writes numUsers id:score lines and returns the path.
func GenerateTestScoreFile(t testing.TB, numUsers int) string {
	t.Helper()

	rng := rand.New(rand.NewSource(int64(numUsers) + 1))
	var content strings.Builder
	for id := 1; id <= numUsers; id++ {
		content.WriteString(fmt.Sprintf("%d:%d\n", id, rng.Intn(1000)))
	}
	return WriteTempFile(t, "timeSpent.txt", content.String())
}

// WriteTempFile writes content to name inside a fresh temp dir.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

// TempFilePath returns a path inside a fresh temp dir. Does not create the file.
func TempFilePath(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
