package template

import "strings"

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	KindText Kind = iota
	KindVariable
	KindIf
	KindElse
	KindEndIf
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindVariable:
		return "variable"
	case KindIf:
		return "if"
	case KindElse:
		return "else"
	case KindEndIf:
		return "endif"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a template.
type Token struct {
	Kind Kind

	// Raw is the exact source slice the token covers.
	Raw string

	// Expr is the trimmed path for variable and if tokens, empty otherwise.
	Expr string

	// Start and End are byte offsets into the source.
	Start int
	End   int
}

// Delimiters recognized by the tokenizer.
const (
	openDelim  = "{{"
	closeDelim = "}}"
	ifPrefix   = "{{#if"
	elseTag    = "{{else}}"
	endIfTag   = "{{/if}}"
)

// Tokenize splits source into text, variable, if, else and endif tokens.
// Concatenating the Raw field of every returned token reproduces source.
func Tokenize(source string) []Token {
	var tokens []Token
	textStart := 0
	pos := 0

	for pos < len(source) {
		idx := strings.Index(source[pos:], openDelim)
		if idx < 0 {
			break
		}
		start := pos + idx

		tok, ok := scanDelimited(source, start)
		if !ok {
			// Not a delimiter; the braces are literal text.
			pos = start + 1
			continue
		}

		if start > textStart {
			tokens = append(tokens, Token{
				Kind:  KindText,
				Raw:   source[textStart:start],
				Start: textStart,
				End:   start,
			})
		}
		tokens = append(tokens, tok)
		textStart = tok.End
		pos = tok.End
	}

	if textStart < len(source) {
		tokens = append(tokens, Token{
			Kind:  KindText,
			Raw:   source[textStart:],
			Start: textStart,
			End:   len(source),
		})
	}

	return tokens
}

// scanDelimited classifies the delimiter expression beginning at start,
// which must point at "{{".
func scanDelimited(source string, start int) (Token, bool) {
	rest := source[start:]

	switch {
	case strings.HasPrefix(rest, elseTag):
		return fixedToken(KindElse, start, len(elseTag), source), true
	case strings.HasPrefix(rest, endIfTag):
		return fixedToken(KindEndIf, start, len(endIfTag), source), true
	case strings.HasPrefix(rest, ifPrefix):
		return scanIf(source, start)
	default:
		return scanVariable(source, start)
	}
}

func fixedToken(kind Kind, start, width int, source string) Token {
	return Token{
		Kind:  kind,
		Raw:   source[start : start+width],
		Start: start,
		End:   start + width,
	}
}

// scanIf matches {{#if <ws> expr}} where expr contains no '}'. At least one
// byte must follow the first whitespace, so "{{#if }}" is literal text.
func scanIf(source string, start int) (Token, bool) {
	bodyStart := start + len(ifPrefix)
	if bodyStart >= len(source) || !isSpace(source[bodyStart]) {
		return Token{}, false
	}

	closeAt, ok := findClose(source, bodyStart+1)
	if !ok || closeAt == bodyStart+1 {
		return Token{}, false
	}

	end := closeAt + len(closeDelim)
	return Token{
		Kind:  KindIf,
		Raw:   source[start:end],
		Expr:  strings.TrimSpace(source[bodyStart:closeAt]),
		Start: start,
		End:   end,
	}, true
}

// scanVariable matches {{expr}} where expr does not start with '#', '/'
// or '}' and contains no '}'.
func scanVariable(source string, start int) (Token, bool) {
	bodyStart := start + len(openDelim)
	if bodyStart >= len(source) {
		return Token{}, false
	}
	switch source[bodyStart] {
	case '#', '/', '}':
		return Token{}, false
	}

	closeAt, ok := findClose(source, bodyStart)
	if !ok {
		return Token{}, false
	}

	end := closeAt + len(closeDelim)
	return Token{
		Kind:  KindVariable,
		Raw:   source[start:end],
		Expr:  strings.TrimSpace(source[bodyStart:closeAt]),
		Start: start,
		End:   end,
	}, true
}

// findClose returns the index of the "}}" that terminates a body starting at
// from. The body may not contain '}', so the first '}' must open the closer.
func findClose(source string, from int) (int, bool) {
	idx := strings.IndexByte(source[from:], '}')
	if idx < 0 {
		return 0, false
	}
	at := from + idx
	if !strings.HasPrefix(source[at:], closeDelim) {
		return 0, false
	}
	return at, true
}

// isSpace reports whether b is ASCII whitespace as matched by \s.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
