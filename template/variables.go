package template

import "fmt"

// Variables returns the distinct paths referenced by variable and {{#if}}
// expressions in source, in order of first appearance.
func Variables(source string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, tok := range Tokenize(source) {
		if tok.Kind != KindVariable && tok.Kind != KindIf {
			continue
		}
		if tok.Expr == "" || seen[tok.Expr] {
			continue
		}
		seen[tok.Expr] = true
		result = append(result, tok.Expr)
	}

	return result
}

// ValidateVariables checks that every required path resolves in provided.
// Returns an error wrapping ErrVariable naming the first missing path.
func ValidateVariables(required []string, provided Context) error {
	for _, path := range required {
		if _, ok := Lookup(provided, path); !ok {
			return fmt.Errorf("%w: %s", ErrVariable, path)
		}
	}
	return nil
}
