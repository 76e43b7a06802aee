package store

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"github.com/selector-project/selector-manager/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSelectorNotFound = errors.New("selector not found")
	ErrSelectorIDTaken  = errors.New("selector ID already taken")
	ErrDisplayNameTaken = errors.New("display_name already taken")
)

// SelectorFilter contains optional fields for filtering selector queries.
// nil fields are ignored (not filtered).
type SelectorFilter struct {
	Enabled *bool
}

// SelectorListOptions contains options for listing selectors.
type SelectorListOptions struct {
	Filter    *SelectorFilter
	OrderBy   string
	PageToken *string
	PageSize  int
}

// SelectorListResult contains the result of a List operation.
type SelectorListResult struct {
	Selectors     model.SelectorList
	NextPageToken string
}

type Selector interface {
	List(ctx context.Context, opts *SelectorListOptions) (*SelectorListResult, error)
	Create(ctx context.Context, sel model.Selector) (*model.Selector, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, sel model.Selector) (*model.Selector, error)
	Get(ctx context.Context, id string) (*model.Selector, error)
}

type SelectorStore struct {
	db *gorm.DB
}

var _ Selector = (*SelectorStore)(nil)

func NewSelector(db *gorm.DB) Selector {
	return &SelectorStore{db: db}
}

func (s *SelectorStore) List(ctx context.Context, opts *SelectorListOptions) (*SelectorListResult, error) {
	var selectors model.SelectorList
	query := s.db.WithContext(ctx)

	// Default page size
	pageSize := 50
	if opts != nil && opts.PageSize > 0 {
		pageSize = opts.PageSize
	}

	// Decode page token to get offset
	offset := 0
	if opts != nil && opts.PageToken != nil && *opts.PageToken != "" {
		decoded, err := base64.StdEncoding.DecodeString(*opts.PageToken)
		if err == nil {
			if parsedOffset, err := strconv.Atoi(string(decoded)); err == nil {
				offset = parsedOffset
			}
		}
	}

	if opts != nil {
		if opts.Filter != nil && opts.Filter.Enabled != nil {
			query = query.Where("enabled = ?", *opts.Filter.Enabled)
		}

		// Apply ordering
		if opts.OrderBy != "" {
			query = query.Order(opts.OrderBy)
		} else {
			// Default order by display_name, id ascending
			query = query.Order("display_name ASC, id ASC")
		}
	} else {
		// Default order when no options provided
		query = query.Order("display_name ASC, id ASC")
	}

	// Query with limit+1 to detect if there are more results
	query = query.Limit(pageSize + 1).Offset(offset)

	if err := query.Find(&selectors).Error; err != nil {
		return nil, err
	}

	// Generate next page token if there are more results
	result := &SelectorListResult{
		Selectors: selectors,
	}

	if len(selectors) > pageSize {
		// Trim to requested page size
		result.Selectors = selectors[:pageSize]
		// Encode next offset as page token
		nextOffset := offset + pageSize
		result.NextPageToken = base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(nextOffset)))
	}

	return result, nil
}

// mapUniqueConstraintError maps a DB unique constraint violation to a store
// sentinel error by querying which constraint would be violated (ID or
// display_name).
func (s *SelectorStore) mapUniqueConstraintError(ctx context.Context, err error, attempted model.Selector, isUpdate bool) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		// Raw driver error (e.g. tests without TranslateError)
		if !strings.Contains(strings.ToLower(err.Error()), "unique") &&
			!strings.Contains(err.Error(), "duplicate key") {
			return err
		}
	}

	checks := []struct {
		sentinel error
		query    *gorm.DB
	}{
		{ErrSelectorIDTaken, s.db.WithContext(ctx).Where("id = ?", attempted.ID).Limit(1)},
		{ErrDisplayNameTaken, s.db.WithContext(ctx).Where("display_name = ?", attempted.DisplayName).Limit(1)},
	}

	for _, c := range checks {
		query := c.query
		if isUpdate {
			query = query.Where("id != ?", attempted.ID)
		}
		var row model.Selector
		dberr := query.First(&row).Error
		if dberr == nil {
			return c.sentinel
		}
		if !errors.Is(dberr, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return err
}

func (s *SelectorStore) Create(ctx context.Context, sel model.Selector) (*model.Selector, error) {
	if err := s.db.WithContext(ctx).Clauses(clause.Returning{}).Select("*").Create(&sel).Error; err != nil {
		return nil, s.mapUniqueConstraintError(ctx, err, sel, false)
	}
	return &sel, nil
}

func (s *SelectorStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Selector{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSelectorNotFound
	}
	return nil
}

func (s *SelectorStore) Update(ctx context.Context, sel model.Selector) (*model.Selector, error) {
	// Use Select to update all mutable fields including zero values
	// Immutable fields (id, create_time) are not updated
	result := s.db.WithContext(ctx).Model(&sel).
		Select("display_name", "description", "expression", "match_labels", "match_expressions", "enabled").
		Clauses(clause.Returning{}).
		Updates(&sel)
	if result.Error != nil {
		return nil, s.mapUniqueConstraintError(ctx, result.Error, sel, true)
	}
	if result.RowsAffected == 0 {
		return nil, ErrSelectorNotFound
	}
	return &sel, nil
}

func (s *SelectorStore) Get(ctx context.Context, id string) (*model.Selector, error) {
	var sel model.Selector
	if err := s.db.WithContext(ctx).First(&sel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSelectorNotFound
		}
		return nil, err
	}
	return &sel, nil
}
