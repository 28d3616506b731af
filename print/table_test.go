package print

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []string{"id", "name"}, [][]string{
		{"1", "Ann"},
		{"2", "Bob"},
	}, Options{})

	expected := strings.Join([]string{
		"+----+------+",
		"| id | name |",
		"+====+======+",
		"| 1  | Ann  |",
		"| 2  | Bob  |",
		"+----+------+",
		"",
	}, "\n")

	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestRenderTableTruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []string{"text"}, [][]string{
		{"abcdefghij"},
	}, Options{MaxWidth: 8})

	if !strings.Contains(buf.String(), "abcde...") {
		t.Errorf("expected truncated cell in output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "abcdefghij") {
		t.Errorf("cell was not truncated:\n%s", buf.String())
	}
}

func TestRenderTableNoRows(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []string{"id"}, nil, Options{})

	if !strings.Contains(buf.String(), "| id |") {
		t.Errorf("expected header in output:\n%s", buf.String())
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, nil, nil, Options{})

	if !strings.Contains(buf.String(), "(no columns)") {
		t.Errorf("expected placeholder in output:\n%s", buf.String())
	}
}
