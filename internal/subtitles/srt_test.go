package subtitles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseReadsEntries(t *testing.T) {
	raw := "\ufeff1\r\n00:00:01,000 --> 00:00:03,500\r\n- Hello there!\r\n- <i>General Kenobi.</i>\r\n\r\n" +
		"2\r\n00:01:04.250 --> 00:01:06,000 X1:10\r\nSecond line\r\n"

	entries, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.Index != 1 || first.Start != time.Second || first.End != 3500*time.Millisecond {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if len(first.Lines) != 2 {
		t.Fatalf("expected 2 physical lines, got %q", first.Lines)
	}
	if got := first.Text(); got != "Hello there! General Kenobi." {
		t.Fatalf("got %q want %q", got, "Hello there! General Kenobi.")
	}
	second := entries[1]
	if second.Start != time.Minute+4250*time.Millisecond {
		t.Fatalf("unexpected start: %v", second.Start)
	}
	if second.End != time.Minute+6*time.Second {
		t.Fatalf("unexpected end: %v", second.End)
	}
}

func TestParseSkipsBlocksWithoutTiming(t *testing.T) {
	raw := "1\nno timing here\n\n00:00:02,000 --> 00:00:03,000\nUnnumbered\n\n\n\n3\n00:00:04,000 --> 00:00:05,000\nLast\n"
	entries, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Index != 1 || entries[0].Text() != "Unnumbered" {
		t.Fatalf("unexpected unnumbered entry: %+v", entries[0])
	}
	if entries[1].Index != 3 {
		t.Fatalf("expected explicit index 3, got %d", entries[1].Index)
	}
}

func TestParseEmptyInput(t *testing.T) {
	entries, err := Parse(strings.NewReader("  \n\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestParseSRTTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "00:01", "aa:bb:cc,ddd", "00:00:01"} {
		if _, err := parseSRTTimestamp(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestOpenDecodesLatin2(t *testing.T) {
	// "Dzień" with ń encoded as 0xF1 in ISO-8859-2.
	raw := []byte("1\n00:00:01,000 --> 00:00:02,000\nDzie\xf1 dobry\n")
	path := filepath.Join(t.TempDir(), "show 1x02.srt")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	entries, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].Text(); got != "Dzień dobry" {
		t.Fatalf("got %q want %q", got, "Dzień dobry")
	}
}

func TestOpenUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nCafé\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	entries, err := Open(path, "UTF-8")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if entries[0].Text() != "Café" {
		t.Fatalf("unexpected text %q", entries[0].Text())
	}
}

func TestOpenUnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nx\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := Open(path, "klingon-8")
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.srt"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
