package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/internal/selector"
	"github.com/selector-project/selector-manager/internal/store"
)

var (
	// AEP-122 compliant ID format: 1-63 chars, start with lowercase letter,
	// contain only lowercase letters, numbers, and hyphens, end with letter or number
	idPattern = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)
)

// SelectorService defines the interface for selector business logic operations.
type SelectorService interface {
	CreateSelector(ctx context.Context, sel v1alpha1.Selector, clientID *string) (*v1alpha1.Selector, error)
	GetSelector(ctx context.Context, id string) (*v1alpha1.Selector, error)
	ListSelectors(ctx context.Context, filter *string, orderBy *string, pageToken *string, pageSize *int32) (*v1alpha1.SelectorList, error)
	UpdateSelector(ctx context.Context, id string, patch *v1alpha1.Selector) (*v1alpha1.Selector, error)
	DeleteSelector(ctx context.Context, id string) error
}

// SelectorServiceImpl implements the SelectorService interface.
type SelectorServiceImpl struct {
	store  store.Store
	limits selector.Limits
}

var _ SelectorService = (*SelectorServiceImpl)(nil)

// NewSelectorService creates a new SelectorService instance.
func NewSelectorService(store store.Store, limits selector.Limits) *SelectorServiceImpl {
	return &SelectorServiceImpl{
		store:  store,
		limits: limits,
	}
}

func validatePostInput(sel v1alpha1.Selector) error {
	if sel.DisplayName == nil || strings.TrimSpace(*sel.DisplayName) == "" {
		return NewInvalidArgumentError(
			"display_name is required",
			"The display_name field must be present and non-empty",
		)
	}

	hasExpression := sel.Expression != nil && strings.TrimSpace(*sel.Expression) != ""
	hasMatchLabels := sel.MatchLabels != nil && len(*sel.MatchLabels) > 0
	hasMatchExpressions := sel.MatchExpressions != nil && len(*sel.MatchExpressions) > 0
	if !hasExpression && !hasMatchLabels && !hasMatchExpressions {
		return NewInvalidArgumentError(
			"selector content is required",
			"At least one of expression, matchLabels or matchExpressions must be present",
		)
	}

	return nil
}

func getSelectorID(clientID *string) (*string, error) {
	var selectorID string

	if clientID != nil && *clientID != "" {
		selectorID = *clientID
		// Validate ID format (AEP-122 compliant) only for client-specified IDs
		if !idPattern.MatchString(selectorID) {
			return nil, NewInvalidArgumentError(
				"Invalid selector ID format",
				fmt.Sprintf("Selector ID '%s' does not match required format: 1-63 characters, start with lowercase letter, contain only lowercase letters, numbers, and hyphens, end with letter or number", selectorID),
			)
		}
	} else {
		// Generate UUID for server-assigned ID
		selectorID = uuid.New().String()
	}
	return &selectorID, nil
}

// validateCompiles rejects any selector whose content cannot be
// compiled into requirements. This is the only place parse errors can
// enter the system: evaluation later never fails on stored selectors.
func (s *SelectorServiceImpl) validateCompiles(sel v1alpha1.Selector, id string) error {
	if sel.MatchLabels != nil {
		if err := validateMatchLabels(*sel.MatchLabels, s.limits); err != nil {
			return err
		}
	}
	db := APIToDBModel(sel, id)
	if _, err := compileSelector(&db, s.limits); err != nil {
		return err
	}
	return nil
}

// CreateSelector creates a new selector resource.
// Required fields (display_name plus at least one selector form) are enforced here.
func (s *SelectorServiceImpl) CreateSelector(ctx context.Context, sel v1alpha1.Selector, clientID *string) (*v1alpha1.Selector, error) {
	if err := validatePostInput(sel); err != nil {
		return nil, err
	}

	selectorID, err := getSelectorID(clientID)
	if err != nil {
		return nil, err
	}

	if err := s.validateCompiles(sel, *selectorID); err != nil {
		return nil, err
	}

	dbSelector := APIToDBModel(sel, *selectorID)

	// Create selector in store
	created, err := s.store.Selector().Create(ctx, dbSelector)
	if err != nil {
		return nil, processSelectorStoreError(err, dbSelector, "create")
	}

	apiSelector := DBToAPIModel(created)

	return &apiSelector, nil
}

// GetSelector retrieves a selector by ID.
func (s *SelectorServiceImpl) GetSelector(ctx context.Context, id string) (*v1alpha1.Selector, error) {
	dbSelector, err := s.store.Selector().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSelectorNotFound) {
			return nil, NewSelectorNotFoundError(id)
		}
		return nil, NewInternalError("Failed to get selector", err.Error(), err)
	}

	apiSelector := DBToAPIModel(dbSelector)

	return &apiSelector, nil
}

func getListOptions(filter *string, orderBy *string, pageToken *string, pageSize *int32) (*store.SelectorListOptions, error) {
	// Parse filter expression
	var selectorFilter *store.SelectorFilter
	var err error
	if filter != nil && *filter != "" {
		selectorFilter, err = parseFilter(*filter)
		if err != nil {
			return nil, err // Already a ServiceError
		}
	}

	// Parse order by parameter (parseOrderBy handles empty with default)
	orderByStr := ""
	if orderBy != nil {
		orderByStr = *orderBy
	}
	orderByStr, err = parseOrderBy(orderByStr)
	if err != nil {
		return nil, err // Already a ServiceError
	}

	// Validate and set page size (default: 50, max: 1000)
	pageSizeInt := 50
	if pageSize != nil {
		if *pageSize < 1 {
			return nil, NewInvalidArgumentError(
				"Invalid page size",
				"Page size must be at least 1",
			)
		}
		if *pageSize > 1000 {
			return nil, NewInvalidArgumentError(
				"Invalid page size",
				"Page size must not exceed 1000",
			)
		}
		pageSizeInt = int(*pageSize)
	}

	// Build list options
	return &store.SelectorListOptions{
		Filter:    selectorFilter,
		OrderBy:   orderByStr,
		PageToken: pageToken,
		PageSize:  pageSizeInt,
	}, nil
}

// ListSelectors lists selectors with optional filtering, ordering, and pagination.
func (s *SelectorServiceImpl) ListSelectors(ctx context.Context, filter *string, orderBy *string, pageToken *string, pageSize *int32) (*v1alpha1.SelectorList, error) {
	opts, err := getListOptions(filter, orderBy, pageToken, pageSize)
	if err != nil {
		return nil, err
	}

	result, err := s.store.Selector().List(ctx, opts)
	if err != nil {
		return nil, NewInternalError("Failed to list selectors", err.Error(), err)
	}

	// Convert all DB models to API models
	apiSelectors := make([]v1alpha1.Selector, len(result.Selectors))
	for i, dbSelector := range result.Selectors {
		apiSelectors[i] = DBToAPIModel(&dbSelector)
	}

	response := &v1alpha1.SelectorList{
		Selectors: apiSelectors,
	}

	if result.NextPageToken != "" {
		response.NextPageToken = &result.NextPageToken
	}

	return response, nil
}

// mergeSelectorOntoSelector merges a PATCH body (Selector) onto an existing
// selector per RFC 7396. Only non-nil mutable fields in patch are applied.
// Read-only and immutable fields (path, id, create_time, update_time) are ignored.
func mergeSelectorOntoSelector(patch *v1alpha1.Selector, existing v1alpha1.Selector) v1alpha1.Selector {
	merged := existing
	if patch == nil {
		return merged
	}
	if patch.DisplayName != nil {
		merged.DisplayName = patch.DisplayName
	}
	if patch.Description != nil {
		merged.Description = patch.Description
	}
	if patch.Expression != nil {
		merged.Expression = patch.Expression
	}
	if patch.MatchLabels != nil {
		merged.MatchLabels = patch.MatchLabels
	}
	if patch.MatchExpressions != nil {
		merged.MatchExpressions = patch.MatchExpressions
	}
	if patch.Enabled != nil {
		merged.Enabled = patch.Enabled
	}
	// path, id, create_time, update_time are read-only; do not merge
	return merged
}

// validatePatchImmutableFields returns an error if the patch attempts to change
// any readOnly field. Fields present in patch (non-nil) must match the existing
// selector; omitting a field (nil) is allowed.
func validatePatchImmutableFields(patch *v1alpha1.Selector, existing v1alpha1.Selector) error {
	if patch == nil {
		return nil
	}
	if patch.Path != nil {
		if existing.Path == nil || *patch.Path != *existing.Path {
			return NewInvalidArgumentError(
				"path cannot be updated",
				"The path field is read-only and cannot be changed",
			)
		}
	}
	if patch.Id != nil {
		if existing.Id == nil || *patch.Id != *existing.Id {
			return NewInvalidArgumentError(
				"id cannot be updated",
				"The id field is read-only and cannot be changed",
			)
		}
	}
	if patch.CreateTime != nil {
		if existing.CreateTime == nil || !patch.CreateTime.Equal(*existing.CreateTime) {
			return NewInvalidArgumentError(
				"create_time cannot be updated",
				"The create_time field is read-only and cannot be changed",
			)
		}
	}
	if patch.UpdateTime != nil {
		if existing.UpdateTime == nil || !patch.UpdateTime.Equal(*existing.UpdateTime) {
			return NewInvalidArgumentError(
				"update_time cannot be updated",
				"The update_time field is read-only and cannot be changed",
			)
		}
	}
	return nil
}

// UpdateSelector updates an existing selector using partial merge (PATCH).
func (s *SelectorServiceImpl) UpdateSelector(ctx context.Context, id string, patch *v1alpha1.Selector) (*v1alpha1.Selector, error) {
	existingDB, err := s.store.Selector().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSelectorNotFound) {
			return nil, NewSelectorNotFoundError(id)
		}
		return nil, NewInternalError("Failed to get existing selector", err.Error(), err)
	}
	existing := DBToAPIModel(existingDB)
	if err := validatePatchImmutableFields(patch, existing); err != nil {
		return nil, err
	}
	merged := mergeSelectorOntoSelector(patch, existing)

	// The merged result must still carry content and compile
	if err := validatePostInput(merged); err != nil {
		return nil, err
	}
	if err := s.validateCompiles(merged, id); err != nil {
		return nil, err
	}

	// Convert API model to DB model and update store
	dbSelector := APIToDBModel(merged, id)
	updated, err := s.store.Selector().Update(ctx, dbSelector)
	if err != nil {
		return nil, processSelectorStoreError(err, dbSelector, "update")
	}

	apiSelector := DBToAPIModel(updated)

	return &apiSelector, nil
}

// DeleteSelector deletes a selector by ID.
func (s *SelectorServiceImpl) DeleteSelector(ctx context.Context, id string) error {
	err := s.store.Selector().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSelectorNotFound) {
			return NewSelectorNotFoundError(id)
		}
		return NewInternalError("Failed to delete selector", err.Error(), err)
	}

	return nil
}
