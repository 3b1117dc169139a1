package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in        string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"1950-1980", "1950", "1980", false},
		{"1900-2000", "1900", "2000", false},
		{"1950", "", "", true},
		{"195-1980", "", "", true},
		{"1950-80", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		start, end, err := parseInterval(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseInterval(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("parseInterval(%q) = %q, %q, want %q, %q", tt.in, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestReadBibcodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibcodes.txt")
	content := "1968IAUS...29...11A\n" +
		"\n" +
		"  1963RvMP...35..947B  \n" +
		"2012ASSL..386...11D trailing junk\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readBibcodeFile(path)
	if err != nil {
		t.Fatalf("readBibcodeFile: %v", err)
	}

	want := []string{"1968IAUS...29...11A", "1963RvMP...35..947B", "2012ASSL..386...11D"}
	if len(got) != len(want) {
		t.Fatalf("got %d bibcodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bibcode %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadBibcodeFileMissing(t *testing.T) {
	if _, err := readBibcodeFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("readBibcodeFile succeeded on a missing file")
	}
}
