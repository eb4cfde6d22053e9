package shell

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote reports input with an unclosed single or double quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split tokenizes a command line into arguments. Double and single quotes
// group words; a backslash escapes the next character except inside single
// quotes, where everything is literal.
func Split(input string) ([]string, error) {
	var args []string
	var current strings.Builder
	inWord := false
	var quote byte

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\\':
			if i+1 >= len(input) {
				return nil, ErrUnterminatedQuote
			}
			i++
			current.WriteByte(input[i])
			inWord = true
		case quote == '"':
			if c == '"' {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inWord = true
		case c == ' ' || c == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteByte(c)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
