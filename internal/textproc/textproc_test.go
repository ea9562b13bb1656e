package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"snaptex/internal/domain"
)

func TestRemoveLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no runs", "a\nb\n\nc", "a\nb\n\nc"},
		{"triple collapsed", "a\n\n\nb", "a\n\nb"},
		{"storm collapsed", "a\n\n\n\n\n\nb", "a\n\nb"},
		{"double preserved", "para one\n\npara two", "para one\n\npara two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveLineBreaks(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n\n\n")
		})
	}
}

func TestMergeSpaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single untouched", "a b c", "a b c"},
		{"run collapsed", "a    b", "a b"},
		{"tabs collapsed", "a\t\tb \t c", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeSpaces(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "  ")
			assert.NotContains(t, got, "\t")
		})
	}
}

func TestRemovePageNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"page n", "intro\nPage 5\noutro", "intro\noutro"},
		{"page n case insensitive", "a\npage 12\nb", "a\nb"},
		{"n of m", "a\n3 of 12\nb", "a\nb"},
		{"dashed", "a\n- 7 -\nb", "a\nb"},
		{"bare number", "a\n42\nb", "a\nb"},
		{"inline reference preserved", "See Page 5 for details", "See Page 5 for details"},
		{"blank lines pass", "a\n\nPage 1\n\nb", "a\n\n\nb"},
		{"padded line still dropped", "a\n  Page 9  \nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemovePageNumbers(tt.in))
		})
	}
}

func TestRemoveHeaders_RepeatedLineDropped(t *testing.T) {
	in := strings.Join([]string{
		"Quarterly Report",
		"unique one",
		"Quarterly Report",
		"unique two",
		"Quarterly Report",
		"unique three",
	}, "\n")

	got := RemoveHeaders(in)

	assert.NotContains(t, got, "Quarterly Report")
	assert.Equal(t, "unique one\nunique two\nunique three", got)
}

func TestRemoveHeaders_TwoOccurrencesKept(t *testing.T) {
	in := "header\nbody\nheader"
	assert.Equal(t, in, RemoveHeaders(in))
}

func TestRemoveHeaders_ListItemsExempt(t *testing.T) {
	line := "- repeated list item"
	in := strings.Repeat(line+"\n", 5) + "tail"
	got := RemoveHeaders(in)
	assert.Equal(t, 5, strings.Count(got, line))
}

func TestRemoveHeaders_EnumerationAndQuotesExempt(t *testing.T) {
	for _, line := range []string{
		"1. first step",
		"a) option a",
		"• bullet",
		"*starred",
		`"Who goes there?"`,
		"“So it begins.”",
		"「こんにちは」",
		"《引用》",
	} {
		in := strings.Repeat(line+"\n", 4) + "tail"
		got := RemoveHeaders(in)
		assert.Equal(t, 4, strings.Count(got, line), "line %q should survive", line)
	}
}

func TestRemoveHeaders_LongLinesNeverHeaders(t *testing.T) {
	long := strings.Repeat("x", 81)
	in := strings.Repeat(long+"\n", 4) + "tail"
	got := RemoveHeaders(in)
	assert.Equal(t, 4, strings.Count(got, long))
}

func TestRemoveHeaders_WhitespaceNormalizationInsensitive(t *testing.T) {
	// The same header printed with inconsistent spacing still collapses to
	// one repeated-key bucket.
	in := strings.Join([]string{
		"Annual   Review",
		"body one",
		"Annual Review",
		"body two",
		"  Annual\tReview",
	}, "\n")

	got := RemoveHeaders(in)

	assert.NotContains(t, got, "Annual")
	assert.Contains(t, got, "body one")
	assert.Contains(t, got, "body two")
}

func TestRemoveHeaders_BlankLinesUntouched(t *testing.T) {
	in := "a\n\n\n\nb"
	assert.Equal(t, in, RemoveHeaders(in))
}

func TestRemoveHeaderFooter_Composition(t *testing.T) {
	in := strings.Join([]string{
		"Running Header",
		"content one",
		"Page 1",
		"Running Header",
		"content two",
		"Page 2",
		"Running Header",
		"content three",
		"Page 3",
	}, "\n")

	got := RemoveHeaderFooter(in)

	assert.NotContains(t, got, "Running Header")
	assert.NotContains(t, got, "Page")
	assert.Equal(t, "content one\ncontent two\ncontent three", got)
}

func TestProcess(t *testing.T) {
	opts := domain.CleanupOptions{RemoveLineBreaks: true, MergeSpaces: true}

	in := "a   b\n\n\n\nc\td"
	want := "a b\n\nc d"
	assert.Equal(t, want, Process(in, opts))

	assert.Equal(t, "", Process("", opts))

	// Disabled toggles leave the text alone.
	assert.Equal(t, in, Process(in, domain.CleanupOptions{}))
}

func TestProcess_Idempotent(t *testing.T) {
	opts := domain.CleanupOptions{
		RemoveLineBreaks:   true,
		MergeSpaces:        true,
		RemoveHeaderFooter: true,
	}
	inputs := []string{
		"",
		"plain text",
		"a   b\n\n\n\nc",
		strings.Repeat("hdr\n", 3) + "body\nPage 2\nmore",
	}
	for _, in := range inputs {
		once := Process(in, opts)
		assert.Equal(t, once, Process(once, opts), "input %q", in)
	}
}
