// Package highlight splits code block content into classified tokens.
//
// Tokens carry a coarse class rather than a color so the presentation layer
// decides how each class is drawn.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Class is a coarse token classification.
type Class string

// Token classes.
const (
	ClassText        Class = "text"
	ClassKeyword     Class = "keyword"
	ClassName        Class = "name"
	ClassString      Class = "string"
	ClassNumber      Class = "number"
	ClassComment     Class = "comment"
	ClassOperator    Class = "operator"
	ClassPunctuation Class = "punctuation"
)

// Token is one classified piece of a code block. Concatenating the values of
// all tokens yields the original code.
type Token struct {
	Class Class
	Value string
}

// Tokenize classifies code using the lexer registered for language. When the
// language is empty or unknown, the lexer is guessed from the content; when
// that fails too, the whole code is returned as a single text token.
func Tokenize(language, code string) []Token {
	if code == "" {
		return nil
	}

	lexer := lookupLexer(language, code)
	if lexer == nil {
		return []Token{{Class: ClassText, Value: code}}
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return []Token{{Class: ClassText, Value: code}}
	}

	var tokens []Token
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		class := classify(tok.Type)
		// Merge neighbours of the same class to keep the token list short.
		if n := len(tokens); n > 0 && tokens[n-1].Class == class {
			tokens[n-1].Value += tok.Value
			continue
		}
		tokens = append(tokens, Token{Class: class, Value: tok.Value})
	}
	return trimAddedNewline(tokens, code)
}

// trimAddedNewline drops the trailing newline some lexers append to their
// input, so the tokens always join back to code.
func trimAddedNewline(tokens []Token, code string) []Token {
	n := len(tokens)
	if n == 0 || strings.HasSuffix(code, "\n") {
		return tokens
	}
	last := &tokens[n-1]
	if !strings.HasSuffix(last.Value, "\n") {
		return tokens
	}
	last.Value = strings.TrimSuffix(last.Value, "\n")
	if last.Value == "" {
		return tokens[:n-1]
	}
	return tokens
}

// Language normalizes a fenced code block info string to a language name:
// the first word, lowercased.
func Language(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func lookupLexer(language, code string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	return lexers.Analyse(code)
}

func classify(t chroma.TokenType) Class {
	switch {
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t.InCategory(chroma.Name):
		return ClassName
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case t.InCategory(chroma.Literal):
		return ClassString
	case t.InCategory(chroma.Comment):
		return ClassComment
	case t.InCategory(chroma.Operator):
		return ClassOperator
	case t.InCategory(chroma.Punctuation):
		return ClassPunctuation
	}
	return ClassText
}
