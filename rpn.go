package rpncalc

// ToRPN reorders infix tokens into postfix order using the shunting-yard
// algorithm. It never fails: structural problems are left for Eval to find.
// An open parenthesis that is never closed remains in the output. A close
// parenthesis with no open is dropped unless the StrictParens option is given.
// The input slice is not modified.
func ToRPN(tokens []Token, opts ...Option) []Token {
	s := collect(opts)
	out := make([]Token, 0, len(tokens))
	var ops []Token
	for _, tok := range tokens {
		switch tok.Kind {
		case KindNumber:
			out = append(out, tok)
		case KindOperator:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != KindOperator || !yields(tok.Op, top.Op) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case KindLeftParen:
			ops = append(ops, tok)
		case KindRightParen:
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == KindLeftParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched && s.strayclose {
				out = append(out, tok)
			}
		default:
			// Let Eval reject it.
			out = append(out, tok)
		}
	}
	for len(ops) > 0 {
		out = append(out, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}
	return out
}

// yields reports whether an operator op2 on the stack must be output before
// the incoming operator op1 is pushed.
func yields(op1, op2 Operator) bool {
	p1, p2 := op1.Precedence(), op2.Precedence()
	if op1.RightAssoc() {
		return p1 < p2
	}
	return p1 <= p2
}
