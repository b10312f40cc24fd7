package parser

import (
	"unicode"

	"quantity-editor/core/types"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota // digits and dots
	tokenWord                    // ASCII letters
	tokenDash                    // a single '-'
)

type token struct {
	kind tokenKind
	text string
}

type lexState int

const (
	stateBetween lexState = iota
	stateNumber
	stateWord
)

// tokenize splits text into number, word and dash tokens. Whitespace only
// separates tokens; a number directly followed by letters ("5MiB") yields
// two tokens. Any rune outside [0-9a-zA-Z.\s-] fails the whole text.
func tokenize(text string) ([]token, types.ErrorKind) {
	var (
		tokens []token
		state  = stateBetween
		start  int
	)

	flush := func(end int) {
		switch state {
		case stateNumber:
			tokens = append(tokens, token{kind: tokenNumber, text: text[start:end]})
		case stateWord:
			tokens = append(tokens, token{kind: tokenWord, text: text[start:end]})
		}
		state = stateBetween
	}

	for i, r := range text {
		switch {
		case isDigit(r) || r == '.':
			if state != stateNumber {
				flush(i)
				state, start = stateNumber, i
			}
		case isLetter(r):
			if state != stateWord {
				flush(i)
				state, start = stateWord, i
			}
		case r == '-':
			flush(i)
			tokens = append(tokens, token{kind: tokenDash, text: "-"})
		case unicode.IsSpace(r):
			flush(i)
		default:
			return nil, types.InvalidCharacter
		}
	}
	flush(len(text))

	return tokens, types.KindNone
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
