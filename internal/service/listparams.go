package service

import (
	"fmt"
	"strings"

	"github.com/selector-project/selector-manager/internal/store"
)

// parseFilter parses the list filter expression. The only supported
// comparison is `enabled = true|false` (with or without spaces).
func parseFilter(filter string) (*store.SelectorFilter, error) {
	parts := strings.SplitN(filter, "=", 2)
	if len(parts) != 2 {
		return nil, NewInvalidArgumentError(
			"Invalid filter",
			fmt.Sprintf("Filter '%s' is not a supported comparison; expected 'enabled = true|false'", filter),
		)
	}

	field := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if field != "enabled" {
		return nil, NewInvalidArgumentError(
			"Invalid filter field",
			fmt.Sprintf("Field '%s' is not filterable; only 'enabled' is supported", field),
		)
	}

	var enabled bool
	switch value {
	case "true":
		enabled = true
	case "false":
		enabled = false
	default:
		return nil, NewInvalidArgumentError(
			"Invalid filter value",
			fmt.Sprintf("Value '%s' is not a boolean; expected 'true' or 'false'", value),
		)
	}

	return &store.SelectorFilter{Enabled: &enabled}, nil
}

var orderableFields = map[string]string{
	"id":           "id",
	"display_name": "display_name",
	"create_time":  "create_time",
	"update_time":  "update_time",
}

// parseOrderBy validates the order_by parameter and returns the SQL
// ordering clause. Empty input keeps the store's default ordering.
// Accepted forms: "<field>" and "<field> desc".
func parseOrderBy(orderBy string) (string, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return "", nil
	}

	parts := strings.Fields(orderBy)
	if len(parts) > 2 {
		return "", NewInvalidArgumentError(
			"Invalid order_by",
			fmt.Sprintf("Ordering expression '%s' has too many tokens", orderBy),
		)
	}

	column, ok := orderableFields[parts[0]]
	if !ok {
		return "", NewInvalidArgumentError(
			"Invalid order_by field",
			fmt.Sprintf("Field '%s' is not orderable", parts[0]),
		)
	}

	direction := "ASC"
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			direction = "DESC"
		default:
			return "", NewInvalidArgumentError(
				"Invalid order_by direction",
				fmt.Sprintf("Direction '%s' must be 'asc' or 'desc'", parts[1]),
			)
		}
	}

	return column + " " + direction, nil
}
