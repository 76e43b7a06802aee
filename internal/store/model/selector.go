package model

import (
	"time"
)

// Expression mirrors the structured matchExpressions form as stored in
// the database.
type Expression struct {
	Key      string   `json:"key"`
	Operator string   `json:"operator"`
	Values   []string `json:"values,omitempty"`
}

type Selector struct {
	ID               string            `gorm:"primaryKey;type:varchar(63)"`
	DisplayName      string            `gorm:"column:display_name;not null;uniqueIndex"`
	Description      string            `gorm:"column:description"`
	Expression       string            `gorm:"column:expression"`
	MatchLabels      map[string]string `gorm:"column:match_labels;serializer:json"`
	MatchExpressions []Expression      `gorm:"column:match_expressions;serializer:json"`
	Enabled          bool              `gorm:"column:enabled;not null"`
	CreateTime       time.Time         `gorm:"column:create_time;autoCreateTime"`
	UpdateTime       time.Time         `gorm:"column:update_time;autoUpdateTime"`
}

type SelectorList []Selector
