package ingestor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ChristianF88/buddyx/grouping"
	"github.com/ChristianF88/buddyx/topk"
)

// ParseScoreFile opens path and parses it with ParseScores.
func ParseScoreFile(path string) ([]topk.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := ParseScores(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// ParseScores reads one "<id>:<score>" pair per line, in file order.
func ParseScores(r io.Reader) ([]topk.Pair, error) {
	var pairs []topk.Pair
	lineNo := 0

	scanner := newScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		idStr, scoreStr, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &grouping.RecordError{
				Line: lineNo,
				Err:  fmt.Errorf("%w: missing ':' in %q", grouping.ErrMalformedRecord, line),
			}
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, &grouping.RecordError{
				Line: lineNo,
				Err:  fmt.Errorf("%w: bad id %q", grouping.ErrMalformedRecord, idStr),
			}
		}
		score, err := strconv.Atoi(scoreStr)
		if err != nil {
			return nil, &grouping.RecordError{
				Line: lineNo,
				ID:   id,
				Err:  fmt.Errorf("%w: bad score %q", grouping.ErrMalformedRecord, scoreStr),
			}
		}
		pairs = append(pairs, topk.Pair{ID: id, Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	slog.Info("scores parsed", "pairs", len(pairs), "lines", lineNo)
	return pairs, nil
}
