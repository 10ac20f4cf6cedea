package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Recipe is the model for an extracted recipe. Ingredients and Instructions
// are stored as JSON text columns so the same model works on both the
// default SQLite file and a Postgres deployment.
type Recipe struct {
	gorm.Model
	Title          string      `gorm:"size:255;not null" json:"title"`
	Description    string      `gorm:"type:text;not null" json:"description"`
	Ingredients    Ingredients `gorm:"type:text;not null" json:"ingredients"`
	Instructions   StringList  `gorm:"type:text;not null" json:"instructions"`
	PrepTime       string      `gorm:"size:50" json:"prep_time,omitempty"`
	CookTime       string      `gorm:"size:50" json:"cook_time,omitempty"`
	ServingYield   string      `gorm:"size:50;not null" json:"serving_yield"`
	SourceURL      string      `gorm:"size:500" json:"source_url,omitempty"`
	TrustScore     *int        `json:"-"`
	TrustReasoning string      `gorm:"type:text" json:"-"`
	Slug           string      `gorm:"size:255;uniqueIndex" json:"slug"`
	SearchTerm     string      `gorm:"size:255;index" json:"search_term,omitempty"`
}

// SearchTermCount pairs a stored search term with the number of recipes
// saved under it.
type SearchTermCount struct {
	SearchTerm string `json:"search_term"`
	Count      int64  `json:"count"`
}

// Ingredient is a single ingredient with a free-form quantity and an
// optional unit.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// TrustScore is the extraction step's quality judgement for a recipe.
// Absence means "not yet scored"; the score itself is always in [0,100].
type TrustScore struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Trust returns the recipe's trust score, or nil if it was never scored.
func (r *Recipe) Trust() *TrustScore {
	if r.TrustScore == nil {
		return nil
	}
	return &TrustScore{Score: *r.TrustScore, Reasoning: r.TrustReasoning}
}

// TrustValue returns the score used for ranking. Unscored recipes rank as
// exactly 0, not below it.
func (r *Recipe) TrustValue() int {
	if r.TrustScore == nil {
		return 0
	}
	return *r.TrustScore
}

// SetTrust stores a trust score on the recipe.
func (r *Recipe) SetTrust(score int, reasoning string) {
	r.TrustScore = &score
	r.TrustReasoning = reasoning
}

// Ingredients is a JSON-encoded slice of Ingredient.
type Ingredients []Ingredient

// Value implements driver.Valuer.
func (i Ingredients) Value() (driver.Value, error) {
	data, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (i *Ingredients) Scan(value interface{}) error {
	data, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, i)
}

// StringList is a JSON-encoded slice of strings, used for ordered
// instruction steps.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	data, err := jsonColumnBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}

func jsonColumnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	default:
		return nil, errors.New("unsupported type for JSON column")
	}
}
