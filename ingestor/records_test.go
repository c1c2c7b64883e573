package ingestor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ChristianF88/buddyx/grouping"
	"github.com/ChristianF88/buddyx/topk"
)

func TestParseRecords(t *testing.T) {
	input := "1:CAT,DOG\n\n  2:DOG,CAT  \n3:FISH\n"
	ds, err := ParseRecords(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ParseRecords returned error: %v", err)
	}

	want := []grouping.UserRecord{
		{ID: 1, Items: []string{"CAT", "DOG"}},
		{ID: 2, Items: []string{"DOG", "CAT"}},
		{ID: 3, Items: []string{"FISH"}},
	}
	if diff := cmp.Diff(want, ds.Users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	if ds.MaxItemWidth != 4 {
		t.Errorf("expected MaxItemWidth 4, got %d", ds.MaxItemWidth)
	}
}

func TestParseRecords_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     error
		wantLine int
	}{
		{"missing colon", "1:A\nCAT,DOG\n", grouping.ErrMalformedRecord, 2},
		{"bad id", "x:CAT\n", grouping.ErrMalformedRecord, 1},
		{"padded id", "1 :CAT\n", grouping.ErrMalformedRecord, 1},
		{"empty list", "1:A\n\n2:\n", grouping.ErrEmptyItemList, 3},
		{"empty item", "1:CAT,,DOG\n", grouping.ErrMalformedRecord, 1},
		{"trailing comma", "1:CAT,\n", grouping.ErrMalformedRecord, 1},
		{"lowercase", "1:cat\n", grouping.ErrInvalidAlphabet, 1},
		{"space in item", "1:CAT, DOG\n", grouping.ErrInvalidAlphabet, 1},
		{"sentinel", "1:C@T\n", grouping.ErrInvalidAlphabet, 1},
		{"duplicate", "4:A\n5:B\n4:C\n", grouping.ErrDuplicateID, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ParseRecords(strings.NewReader(tt.input), Options{})
			if ds != nil {
				t.Errorf("expected no dataset on error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var re *grouping.RecordError
			if !errors.As(err, &re) {
				t.Fatalf("expected *grouping.RecordError, got %T", err)
			}
			if re.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, re.Line)
			}
		})
	}
}

func TestParseRecords_NormalizeCase(t *testing.T) {
	ds, err := ParseRecords(strings.NewReader("1:cat,Dog\n2:DOG,CAT\n"), Options{NormalizeCase: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"CAT", "DOG"}, ds.Users[0].Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	res, err := grouping.Run(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Groups) != 1 {
		t.Errorf("expected folded records to group, got %d groups", len(res.Groups))
	}
}

func TestParseRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favoriteMovies.txt")
	if err := os.WriteFile(path, []byte("1:CAT,DOG\n2:DOG,CAT\n3:FISH\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ds, err := ParseRecordFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseRecordFile returned error: %v", err)
	}
	if len(ds.Users) != 3 {
		t.Errorf("expected 3 users, got %d", len(ds.Users))
	}

	if _, err := ParseRecordFile(filepath.Join(t.TempDir(), "missing.txt"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestParseRecordFile_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("1:cat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ParseRecordFile(path, Options{})
	if err == nil || !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("expected error mentioning file, got %v", err)
	}
}

func TestParseScores(t *testing.T) {
	pairs, err := ParseScores(strings.NewReader("1:50\n\n2:80\n 3:80 \n"))
	if err != nil {
		t.Fatalf("ParseScores returned error: %v", err)
	}
	want := []topk.Pair{{ID: 1, Score: 50}, {ID: 2, Score: 80}, {ID: 3, Score: 80}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScores_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing colon", "1 50\n"},
		{"bad id", "a:50\n"},
		{"bad score", "1:fifty\n"},
		{"empty score", "1:\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScores(strings.NewReader(tt.input)); !errors.Is(err, grouping.ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func FuzzParseRecords(f *testing.F) {
	f.Add("1:CAT,DOG\n2:DOG,CAT\n")
	f.Add("1:\n")
	f.Add("x:y")
	f.Add("1:A,,B")
	f.Add("1:AB,C\n2:A,BC\n")

	f.Fuzz(func(t *testing.T, input string) {
		ds, err := ParseRecords(strings.NewReader(input), Options{})
		if err != nil {
			if ds != nil {
				t.Fatal("dataset returned alongside error")
			}
			return
		}
		// anything accepted must survive the pipeline
		if _, err := grouping.Run(ds); err != nil {
			t.Fatalf("accepted input failed grouping: %v", err)
		}
	})
}
