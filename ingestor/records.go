// Package ingestor reads record and score files into the in-memory types
// used by the grouping and topk packages. Every record is validated here, so
// nothing outside the sort alphabet ever reaches the radix sorter.
package ingestor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ChristianF88/buddyx/grouping"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Options control record parsing.
type Options struct {
	// NormalizeCase upper-cases items before validation.
	NormalizeCase bool
}

// ParseRecordFile opens path and parses it with ParseRecords.
func ParseRecordFile(path string, opts Options) (*grouping.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ParseRecords(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ParseRecords reads one "<id>:<item>,<item>,..." record per line. Lines are
// trimmed and blank lines skipped. The first invalid line aborts parsing.
func ParseRecords(r io.Reader, opts Options) (*grouping.Dataset, error) {
	var upper cases.Caser
	if opts.NormalizeCase {
		upper = cases.Upper(language.Und)
	}

	var users []grouping.UserRecord
	seen := make(map[int]int)
	lineNo := 0

	scanner := newScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if opts.NormalizeCase {
			line = upper.String(line)
		}
		u, err := parseRecordLine(line)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		if err := grouping.ValidateRecord(u); err != nil {
			var re *grouping.RecordError
			if errors.As(err, &re) {
				re.Line = lineNo
			}
			return nil, err
		}
		if first, dup := seen[u.ID]; dup {
			return nil, &grouping.RecordError{
				Line: lineNo,
				ID:   u.ID,
				Err:  fmt.Errorf("%w: first seen on line %d", grouping.ErrDuplicateID, first),
			}
		}
		seen[u.ID] = lineNo
		users = append(users, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	ds, err := grouping.NewDataset(users)
	if err != nil {
		return nil, err
	}
	slog.Info("records parsed", "users", len(users), "lines", lineNo, "maxItemWidth", ds.MaxItemWidth)
	return ds, nil
}

// parseRecordLine splits a trimmed line at its first colon. Item content is
// checked later by grouping.ValidateRecord.
func parseRecordLine(line string) (grouping.UserRecord, *grouping.RecordError) {
	idStr, itemStr, ok := strings.Cut(line, ":")
	if !ok {
		return grouping.UserRecord{}, &grouping.RecordError{
			Err: fmt.Errorf("%w: missing ':' in %q", grouping.ErrMalformedRecord, line),
		}
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return grouping.UserRecord{}, &grouping.RecordError{
			Err: fmt.Errorf("%w: bad id %q", grouping.ErrMalformedRecord, idStr),
		}
	}
	if itemStr == "" {
		return grouping.UserRecord{}, &grouping.RecordError{ID: id, Err: grouping.ErrEmptyItemList}
	}
	return grouping.UserRecord{ID: id, Items: strings.Split(itemStr, ",")}, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return scanner
}
