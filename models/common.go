package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is stored as a JSON array column (jsonb on Postgres).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// EntityType values accepted for polymorphic references (Activity, Task links).
const (
	EntityContact = "contact"
	EntityDeal    = "deal"
	EntityTask    = "task"
	EntityCompany = "company"
)

// ValidEntityType reports whether t is one of the closed set of reference kinds.
func ValidEntityType(t string) bool {
	switch t {
	case EntityContact, EntityDeal, EntityTask, EntityCompany:
		return true
	}
	return false
}
