package lang

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []Token
	}{
		{
			"plain words",
			"show users",
			[]Token{{Value: "show"}, {Value: "users"}},
		},
		{
			"double quoted value with spaces",
			`add in users name "John Doe"`,
			[]Token{{Value: "add"}, {Value: "in"}, {Value: "users"}, {Value: "name"}, {Value: "John Doe", Quoted: true}},
		},
		{
			"single quoted value",
			"add in users name 'Jane'",
			[]Token{{Value: "add"}, {Value: "in"}, {Value: "users"}, {Value: "name"}, {Value: "Jane", Quoted: true}},
		},
		{
			"empty quoted token",
			`name ""`,
			[]Token{{Value: "name"}, {Value: "", Quoted: true}},
		},
		{
			"embedded other quote kind",
			`note "it's fine"`,
			[]Token{{Value: "note"}, {Value: "it's fine", Quoted: true}},
		},
		{
			"tabs and repeated spaces",
			"show\t\t  users  ",
			[]Token{{Value: "show"}, {Value: "users"}},
		},
		{
			"empty line",
			"   ",
			nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := Tokenize(test.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", test.line, err)
			}
			if !reflect.DeepEqual(tokens, test.expected) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", test.line, tokens, test.expected)
			}
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	if _, err := Tokenize(`name "John`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}
