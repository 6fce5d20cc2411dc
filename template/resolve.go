package template

// frame is one open {{#if}} block awaiting its {{/if}}.
type frame struct {
	cond   bool
	tokens []Token
}

// resolve evaluates every conditional block in tokens against ctx and returns
// the surviving text and variable tokens in order.
//
// Malformed nesting never fails: a stray {{/if}} is dropped, a stray {{else}}
// passes through and renders as nothing, and blocks still open at the end of
// input are discarded. The returned count reports those discarded blocks.
func resolve(tokens []Token, ctx Context) ([]Token, int) {
	var out []Token
	var stack []*frame

	emit := func(toks ...Token) {
		if n := len(stack); n > 0 {
			stack[n-1].tokens = append(stack[n-1].tokens, toks...)
			return
		}
		out = append(out, toks...)
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case KindIf:
			v, _ := Lookup(ctx, tok.Expr)
			stack = append(stack, &frame{cond: IsTruthy(v)})
		case KindEndIf:
			n := len(stack)
			if n == 0 {
				continue
			}
			top := stack[n-1]
			stack = stack[:n-1]
			emit(top.branch()...)
		default:
			emit(tok)
		}
	}

	return out, len(stack)
}

// branch returns the tokens selected by the frame's condition, split at the
// first {{else}} marker.
func (f *frame) branch() []Token {
	for i, tok := range f.tokens {
		if tok.Kind != KindElse {
			continue
		}
		if f.cond {
			return f.tokens[:i]
		}
		return f.tokens[i+1:]
	}
	if f.cond {
		return f.tokens
	}
	return nil
}
