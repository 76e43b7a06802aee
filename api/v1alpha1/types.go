// Package v1alpha1 defines the wire types of the selector-manager API.
package v1alpha1

import "time"

// MatchExpression is one structured selector requirement, mirroring the
// matchExpressions shape used by workload selector fields.
type MatchExpression struct {
	Key      string   `json:"key"`
	Operator string   `json:"operator"`
	Values   []string `json:"values,omitempty"`
}

// Selector is a named, persisted label selector resource. A selector
// combines (conjunctively) an optional textual expression, an optional
// matchLabels map and an optional matchExpressions list.
type Selector struct {
	Id               *string            `json:"id,omitempty"`
	Path             *string            `json:"path,omitempty"`
	DisplayName      *string            `json:"displayName,omitempty"`
	Description      *string            `json:"description,omitempty"`
	Expression       *string            `json:"expression,omitempty"`
	MatchLabels      *map[string]string `json:"matchLabels,omitempty"`
	MatchExpressions *[]MatchExpression `json:"matchExpressions,omitempty"`
	Enabled          *bool              `json:"enabled,omitempty"`
	CreateTime       *time.Time         `json:"createTime,omitempty"`
	UpdateTime       *time.Time         `json:"updateTime,omitempty"`
}

// SelectorList is a page of selectors.
type SelectorList struct {
	Selectors     []Selector `json:"selectors"`
	NextPageToken *string    `json:"nextPageToken,omitempty"`
}

// EvaluateRequest asks whether a label set satisfies a stored selector.
type EvaluateRequest struct {
	Labels map[string]string `json:"labels"`
}

// AdHocEvaluateRequest asks whether a label set satisfies a selector
// supplied inline. At least one of Expression, MatchLabels or
// MatchExpressions must be present.
type AdHocEvaluateRequest struct {
	Expression       *string            `json:"expression,omitempty"`
	MatchLabels      *map[string]string `json:"matchLabels,omitempty"`
	MatchExpressions *[]MatchExpression `json:"matchExpressions,omitempty"`
	Labels           map[string]string  `json:"labels"`
}

// EvaluateResponse is the outcome of a selector evaluation.
type EvaluateResponse struct {
	Matched bool `json:"matched"`
}

// LabelMatchRequest asks which stored, enabled selectors match a label set.
type LabelMatchRequest struct {
	Labels map[string]string `json:"labels"`
}

// LabelMatchResponse lists the ids of the selectors that matched, in
// list order.
type LabelMatchResponse struct {
	MatchingSelectors []string `json:"matchingSelectors"`
}

// Problem is an RFC 7807 problem document returned on errors.
type Problem struct {
	Type     string  `json:"type"`
	Status   int     `json:"status"`
	Title    string  `json:"title"`
	Detail   *string `json:"detail,omitempty"`
	Instance *string `json:"instance,omitempty"`
}
