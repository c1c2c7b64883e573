package output

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// WriteFileLocked replaces filename with content while holding an advisory
// lock on filename+".lock", so two runs writing the same report never
// interleave. The content goes to a temporary file first and is renamed into
// place.
func WriteFileLocked(filename string, content []byte) error {
	lock := flock.New(filename + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", filename, err)
	}
	defer lock.Unlock()

	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
