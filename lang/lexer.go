package lang

import "fmt"

// Token is one raw word of a command line. Quoted marks tokens read from a
// quoted string, so they are never mistaken for keywords and may contain
// whitespace.
type Token struct {
	Value  string
	Quoted bool
}

func (token Token) is(keyword string) bool {
	return !token.Quoted && token.Value == keyword
}

// Tokenize splits a command line on whitespace, keeping quoted substrings
// together as a single token. Both double and single quotes are accepted;
// the quotes themselves are stripped.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token

	i := 0
	for i < len(line) {
		ch := line[i]

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		if ch == '"' || ch == '\'' {
			end := i + 1
			for end < len(line) && line[end] != ch {
				end++
			}
			if end >= len(line) {
				return nil, fmt.Errorf("%w: unterminated quote", ErrMalformedCommand)
			}
			tokens = append(tokens, Token{Value: line[i+1 : end], Quoted: true})
			i = end + 1
			continue
		}

		end := i
		for end < len(line) && !isSpace(line[end]) && line[end] != '"' && line[end] != '\'' {
			end++
		}
		tokens = append(tokens, Token{Value: line[i:end]})
		i = end
	}

	return tokens, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
