package service

import (
	"github.com/selector-project/selector-manager/internal/selector"
	"github.com/selector-project/selector-manager/internal/store/model"
)

// compileSelector combines a stored selector's textual expression,
// matchLabels map and matchExpressions list into a single engine
// selector. The three forms are conjoined: a label set matches only if
// it satisfies every requirement from every form.
func compileSelector(db *model.Selector, limits selector.Limits) (selector.Selector, error) {
	sel, err := selector.ParseWithLimits(db.Expression, limits)
	if err != nil {
		return nil, NewInvalidSelectorError("expression", err)
	}

	if len(db.MatchLabels) > 0 {
		sel = sel.Add(selector.FromSet(selector.Set(db.MatchLabels)).Requirements()...)
	}

	if len(db.MatchExpressions) > 0 {
		exprs := make([]selector.Expression, len(db.MatchExpressions))
		for i, e := range db.MatchExpressions {
			exprs[i] = selector.Expression{Key: e.Key, Operator: e.Operator, Values: e.Values}
		}
		fromExprs, err := selector.FromExpressionsWithLimits(exprs, limits)
		if err != nil {
			return nil, NewInvalidSelectorError("matchExpressions", err)
		}
		sel = sel.Add(fromExprs...)
	}

	return sel, nil
}

// validateMatchLabels checks matchLabels keys and values against the
// configured limits. FromSet itself does not validate.
func validateMatchLabels(matchLabels map[string]string, limits selector.Limits) error {
	for key, value := range matchLabels {
		if err := selector.ValidateKey(key, limits); err != nil {
			return NewInvalidSelectorError("matchLabels", err)
		}
		if err := selector.ValidateValue(value, limits); err != nil {
			return NewInvalidSelectorError("matchLabels", err)
		}
	}
	return nil
}
