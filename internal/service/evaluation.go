package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/internal/selector"
	"github.com/selector-project/selector-manager/internal/store"
)

// EvaluationService decides whether label sets satisfy selectors.
// Evaluation itself never fails: once a selector compiles, matching a
// label set always yields a boolean.
type EvaluationService interface {
	// EvaluateSelector matches labels against the stored selector with
	// the given ID.
	EvaluateSelector(ctx context.Context, id string, labels map[string]string) (bool, error)

	// EvaluateAdHoc matches labels against a selector supplied inline.
	EvaluateAdHoc(ctx context.Context, req *v1alpha1.AdHocEvaluateRequest) (bool, error)

	// MatchLabels returns the IDs of all enabled stored selectors the
	// labels satisfy, in the store's display order.
	MatchLabels(ctx context.Context, labels map[string]string) ([]string, error)
}

// evaluationService implements EvaluationService
type evaluationService struct {
	selectorStore store.Selector
	limits        selector.Limits
}

var _ EvaluationService = (*evaluationService)(nil)

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(selectorStore store.Selector, limits selector.Limits) EvaluationService {
	return &evaluationService{
		selectorStore: selectorStore,
		limits:        limits,
	}
}

func (s *evaluationService) EvaluateSelector(ctx context.Context, id string, labels map[string]string) (bool, error) {
	dbSelector, err := s.selectorStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSelectorNotFound) {
			return false, NewSelectorNotFoundError(id)
		}
		return false, NewInternalError("Failed to get selector", err.Error(), err)
	}

	// Stored selectors were validated at create/update time; a compile
	// failure here means the store holds data this version cannot read.
	compiled, err := compileSelector(dbSelector, s.limits)
	if err != nil {
		return false, NewInternalError(
			fmt.Sprintf("Stored selector '%s' is not compilable", id),
			err.Error(),
			err,
		)
	}

	return compiled.Matches(selector.Set(labels)), nil
}

func (s *evaluationService) EvaluateAdHoc(ctx context.Context, req *v1alpha1.AdHocEvaluateRequest) (bool, error) {
	compiled, err := s.compileAdHoc(req)
	if err != nil {
		return false, err
	}
	return compiled.Matches(selector.Set(req.Labels)), nil
}

func (s *evaluationService) compileAdHoc(req *v1alpha1.AdHocEvaluateRequest) (selector.Selector, error) {
	hasExpression := req.Expression != nil && strings.TrimSpace(*req.Expression) != ""
	hasMatchLabels := req.MatchLabels != nil && len(*req.MatchLabels) > 0
	hasMatchExpressions := req.MatchExpressions != nil && len(*req.MatchExpressions) > 0
	if !hasExpression && !hasMatchLabels && !hasMatchExpressions {
		return nil, NewInvalidArgumentError(
			"selector content is required",
			"At least one of expression, matchLabels or matchExpressions must be present",
		)
	}

	if req.MatchLabels != nil {
		if err := validateMatchLabels(*req.MatchLabels, s.limits); err != nil {
			return nil, err
		}
	}
	db := APIToDBModel(v1alpha1.Selector{
		Expression:       req.Expression,
		MatchLabels:      req.MatchLabels,
		MatchExpressions: req.MatchExpressions,
	}, "")
	return compileSelector(&db, s.limits)
}

func (s *evaluationService) MatchLabels(ctx context.Context, labels map[string]string) ([]string, error) {
	enabled := true
	result, err := s.selectorStore.List(ctx, &store.SelectorListOptions{
		Filter: &store.SelectorFilter{
			Enabled: &enabled,
		},
		PageSize: 1000, // Get all selectors (assume we won't have more than 1000)
	})
	if err != nil {
		return nil, NewInternalError("Failed to retrieve selectors", err.Error(), err)
	}

	labelSet := selector.Set(labels)
	matching := []string{}
	for _, dbSelector := range result.Selectors {
		compiled, err := compileSelector(&dbSelector, s.limits)
		if err != nil {
			return nil, NewInternalError(
				fmt.Sprintf("Stored selector '%s' is not compilable", dbSelector.ID),
				err.Error(),
				err,
			)
		}
		if compiled.Matches(labelSet) {
			matching = append(matching, dbSelector.ID)
		}
	}

	return matching, nil
}
