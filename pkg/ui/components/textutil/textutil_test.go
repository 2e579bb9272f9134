package textutil

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.text, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestSplitByWidth(t *testing.T) {
	got := SplitByWidth("abcdefg", 3)
	want := []string{"abc", "def", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWrapLine(t *testing.T) {
	got := WrapLine("Line 1: 120 units, Downtime: 45 min", 12)
	want := []string{"Line 1: 120", "units,", "Downtime: 45", "min"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWrapLine_LongWord(t *testing.T) {
	got := WrapLine("a abcdefghij b", 4)
	want := []string{"a", "abcd", "efgh", "ij b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWrapLine_WideRunes(t *testing.T) {
	for _, line := range WrapLine("機械 状態 確認 です", 5) {
		if runewidth.StringWidth(line) > 5 {
			t.Errorf("Line %q exceeds width 5", line)
		}
	}
}

func TestWrap_KeepsBreaks(t *testing.T) {
	got := Wrap("first\n\nsecond", 20)
	want := []string{"first", "", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize("ok\x1b[31m\r\nnext\tcol\x07")
	want := "ok[31m\nnext\tcol"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	got = Sanitize("a\u009b2Jb\u0085c\u00a0d")
	want = "a2Jbc\u00a0d"
	if got != want {
		t.Errorf("Expected C1 controls to be dropped, got %q want %q", got, want)
	}
}
