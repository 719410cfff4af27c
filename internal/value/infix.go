package value

// EvalInfix applies a binary operator symbol. Comparison operators yield a
// Boolean.
func EvalInfix(operator string, left, right Value) (Value, error) {
	switch operator {
	case "+":
		return Add(left, right)
	case "-":
		return Subtract(left, right)
	case "*":
		return Multiply(left, right)
	case "/":
		return Divide(left, right)
	case "==":
		return FromBoolean(Equal(left, right)), nil
	case "!=":
		return FromBoolean(NotEqual(left, right)), nil
	case ">":
		return booleanResult(GreaterThan(left, right))
	case ">=":
		return booleanResult(GreaterThanEqual(left, right))
	case "<":
		return booleanResult(LessThan(left, right))
	case "<=":
		return booleanResult(LessThanEqual(left, right))
	default:
		return nil, unsupported(operator, left, right)
	}
}

func EvalPrefix(operator string, right Value) (Value, error) {
	switch operator {
	case "-":
		return Negate(right)
	case "!":
		return Not(right)
	default:
		return nil, unsupportedUnary(operator, right)
	}
}

func booleanResult(b bool, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return FromBoolean(b), nil
}
