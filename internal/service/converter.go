package service

import (
	"fmt"

	"github.com/brunoga/deep/v4"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/internal/store/model"
)

// APIToDBModel converts an API Selector model to a database Selector model.
// All Selector fields are optional in the schema; required fields for create
// are enforced by the service.
func APIToDBModel(api v1alpha1.Selector, id string) model.Selector {
	db := model.Selector{ID: id}

	if api.DisplayName != nil {
		db.DisplayName = *api.DisplayName
	}
	if api.Description != nil {
		db.Description = *api.Description
	}
	if api.Expression != nil {
		db.Expression = *api.Expression
	}
	if api.MatchLabels != nil {
		db.MatchLabels = deep.MustCopy(*api.MatchLabels)
	}
	if api.MatchExpressions != nil {
		db.MatchExpressions = expressionsToDBModel(*api.MatchExpressions)
	}
	if api.Enabled != nil {
		db.Enabled = *api.Enabled
	} else {
		db.Enabled = true
	}

	return db
}

// DBToAPIModel converts a database Selector model to an API Selector model.
// Stored maps and expression lists are copied so callers cannot alias the
// store's data.
func DBToAPIModel(db *model.Selector) v1alpha1.Selector {
	path := fmt.Sprintf("selectors/%s", db.ID)
	displayName := db.DisplayName
	api := v1alpha1.Selector{
		Id:          &db.ID,
		Path:        &path,
		DisplayName: &displayName,
		Enabled:     &db.Enabled,
		CreateTime:  &db.CreateTime,
		UpdateTime:  &db.UpdateTime,
	}
	if db.Description != "" {
		api.Description = &db.Description
	}
	if db.Expression != "" {
		expression := db.Expression
		api.Expression = &expression
	}
	if len(db.MatchLabels) > 0 {
		matchLabels := deep.MustCopy(db.MatchLabels)
		api.MatchLabels = &matchLabels
	}
	if len(db.MatchExpressions) > 0 {
		exprs := expressionsToAPIModel(db.MatchExpressions)
		api.MatchExpressions = &exprs
	}
	return api
}

func expressionsToDBModel(exprs []v1alpha1.MatchExpression) []model.Expression {
	out := make([]model.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = model.Expression{
			Key:      e.Key,
			Operator: e.Operator,
			Values:   deep.MustCopy(e.Values),
		}
	}
	return out
}

func expressionsToAPIModel(exprs []model.Expression) []v1alpha1.MatchExpression {
	out := make([]v1alpha1.MatchExpression, len(exprs))
	for i, e := range exprs {
		out[i] = v1alpha1.MatchExpression{
			Key:      e.Key,
			Operator: e.Operator,
			Values:   deep.MustCopy(e.Values),
		}
	}
	return out
}
