package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON document in a jsonb column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	bytesToParse, err := jsonBytes(value, "StringSlice")
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// IntSlice stores an []int (the raw answer vector) as a JSON document.
type IntSlice []int

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	bytesToParse, err := jsonBytes(value, "IntSlice")
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*s = IntSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// ScoreMap stores a category-to-score mapping as a JSON document. The
// domain always works with the map form; serialization happens only here.
type ScoreMap map[string]int

// Value implements the driver.Valuer interface
func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *ScoreMap) Scan(value interface{}) error {
	bytesToParse, err := jsonBytes(value, "ScoreMap")
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*m = ScoreMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// jsonBytes normalizes a scanned driver value into a JSON byte slice.
// It returns nil bytes for DB NULL, empty strings and literal "null".
func jsonBytes(value interface{}, typeName string) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// Assessment model
type Assessment struct {
	ID          string         `db:"id"`
	Type        string         `db:"type"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Duration    sql.NullString `db:"duration"`
	Icon        sql.NullString `db:"icon"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Question model. Position is the 1-based order within its assessment.
type Question struct {
	ID             string      `db:"id"`
	AssessmentType string      `db:"assessment_type"`
	Text           string      `db:"text"`
	Options        StringSlice `db:"options"`
	Position       int         `db:"position"`
	Category       string      `db:"category"`
	CreatedAt      time.Time   `db:"created_at"`
}

// Result model. user_id is NULL for anonymous submissions.
type Result struct {
	ID             string         `db:"id"`
	UserID         sql.NullString `db:"user_id"`
	AssessmentType string         `db:"assessment_type"`
	Score          int            `db:"score"`
	Answers        IntSlice       `db:"answers"`
	Categories     ScoreMap       `db:"categories"`
	CompletedAt    time.Time      `db:"completed_at"`
}

// Recommendation model
type Recommendation struct {
	ID             string      `db:"id"`
	AssessmentType string      `db:"assessment_type"`
	Category       string      `db:"category"`
	Title          string      `db:"title"`
	Description    string      `db:"description"`
	Tips           StringSlice `db:"tips"`
	MinScore       int         `db:"min_score"`
	MaxScore       int         `db:"max_score"`
	Priority       string      `db:"priority"`
}

// User model
type User struct {
	ID                string         `db:"id"`
	Username          string         `db:"username"`
	Email             string         `db:"email"`
	PasswordHash      sql.NullString `db:"password_hash"`
	GoogleID          sql.NullString `db:"google_id"`
	DisplayName       sql.NullString `db:"display_name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// JournalEntry model
type JournalEntry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Entry     string    `db:"entry"`
	CreatedAt time.Time `db:"created_at"`
}
