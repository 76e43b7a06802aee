package selector

// Expression is one structured requirement, mirroring the
// matchExpressions shape used by workload selector fields.
type Expression struct {
	Key      string   `json:"key"`
	Operator string   `json:"operator"`
	Values   []string `json:"values,omitempty"`
}

// Structured operator names accepted by FromExpressions.
const (
	ExpressionOpIn           = "In"
	ExpressionOpNotIn        = "NotIn"
	ExpressionOpExists       = "Exists"
	ExpressionOpDoesNotExist = "DoesNotExist"
	ExpressionOpEquals       = "Equals"
	ExpressionOpNotEquals    = "NotEquals"
)

func expressionOperator(name string) (Operator, error) {
	switch name {
	case ExpressionOpIn:
		return In, nil
	case ExpressionOpNotIn:
		return NotIn, nil
	case ExpressionOpExists:
		return Exists, nil
	case ExpressionOpDoesNotExist:
		return DoesNotExist, nil
	case ExpressionOpEquals:
		return Equals, nil
	case ExpressionOpNotEquals:
		return NotEquals, nil
	}
	return "", &ValidationError{
		Field:   "operator",
		Value:   name,
		Message: "operator must be one of In, NotIn, Exists, DoesNotExist, Equals, NotEquals",
	}
}

// FromExpressions converts a structured expression list into a
// Selector, preserving order. Each expression is validated with the
// default limits; operator arity rules match NewRequirement.
func FromExpressions(exprs []Expression) (Selector, error) {
	return FromExpressionsWithLimits(exprs, DefaultLimits())
}

// FromExpressionsWithLimits is FromExpressions with caller-supplied limits.
func FromExpressionsWithLimits(exprs []Expression, limits Limits) (Selector, error) {
	sel := make(Selector, 0, len(exprs))
	for _, expr := range exprs {
		op, err := expressionOperator(expr.Operator)
		if err != nil {
			return nil, err
		}
		req, err := NewRequirementWithLimits(expr.Key, op, expr.Values, limits)
		if err != nil {
			return nil, err
		}
		sel = append(sel, req)
	}
	return sel, nil
}

// Expressions returns the selector as a structured expression list.
// Equality operators are rendered as Equals/NotEquals; set operators
// keep their value lists in requirement order.
func (s Selector) Expressions() []Expression {
	exprs := make([]Expression, 0, len(s))
	for _, req := range s {
		expr := Expression{Key: req.key}
		switch req.operator {
		case Equals:
			expr.Operator = ExpressionOpEquals
			expr.Values = req.Values()
		case NotEquals:
			expr.Operator = ExpressionOpNotEquals
			expr.Values = req.Values()
		case In:
			expr.Operator = ExpressionOpIn
			expr.Values = req.Values()
		case NotIn:
			expr.Operator = ExpressionOpNotIn
			expr.Values = req.Values()
		case Exists:
			expr.Operator = ExpressionOpExists
		case DoesNotExist:
			expr.Operator = ExpressionOpDoesNotExist
		}
		exprs = append(exprs, expr)
	}
	return exprs
}
