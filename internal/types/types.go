package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UserRecord is a single editable row of the user directory
type UserRecord struct {
	ID        int    `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Age       string `json:"age" yaml:"age"` // Stored as entered
	City      string `json:"city" yaml:"city"`
}

// FullName returns "{first} {last}", the string searched alongside the city
func (u UserRecord) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Field identifies one editable form field
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldAge
	FieldCity
)

// FormFields lists the editable fields in display order
var FormFields = []Field{FieldFirstName, FieldLastName, FieldAge, FieldCity}

// Label returns the placeholder shown for the field
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldAge:
		return "Age"
	case FieldCity:
		return "City"
	}
	return "Unknown"
}

// FormState holds the staging values for add and edit
type FormState struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Age       string `json:"age" yaml:"age"`
	City      string `json:"city" yaml:"city"`
}

// FormFromRecord copies the editable fields of a record
func FormFromRecord(u UserRecord) FormState {
	return FormState{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		City:      u.City,
	}
}

// IsEmpty reports whether every field is blank
func (f FormState) IsEmpty() bool {
	return strings.TrimSpace(f.FirstName) == "" &&
		strings.TrimSpace(f.LastName) == "" &&
		strings.TrimSpace(f.Age) == "" &&
		strings.TrimSpace(f.City) == ""
}

// Get returns the value of a field
func (f FormState) Get(field Field) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldAge:
		return f.Age
	case FieldCity:
		return f.City
	}
	return ""
}

// Set updates the value of a field
func (f *FormState) Set(field Field, value string) {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldAge:
		f.Age = value
	case FieldCity:
		f.City = value
	}
}

// ApplyTo writes the form values onto a record, keeping its ID
func (f FormState) ApplyTo(u UserRecord) UserRecord {
	u.FirstName = f.FirstName
	u.LastName = f.LastName
	u.Age = f.Age
	u.City = f.City
	return u
}

// Age is the remote age value. The directory sends a number while locally
// entered values are free text, so both JSON forms are accepted.
type Age string

// UnmarshalJSON accepts a JSON number, string or null
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Age(n.String())
	return nil
}

// MarshalJSON emits a number when the value is numeric, a string otherwise
func (a Age) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// RemoteAddress is the subset of the directory address object we consume
type RemoteAddress struct {
	City string `json:"city" yaml:"city"`
}

// RemoteUser is the wire shape of a user returned by the directory service
type RemoteUser struct {
	ID        int            `json:"id" yaml:"id"`
	FirstName string         `json:"firstName" yaml:"firstName"`
	LastName  string         `json:"lastName" yaml:"lastName"`
	Age       Age            `json:"age" yaml:"age"`
	Address   *RemoteAddress `json:"address,omitempty" yaml:"address,omitempty"`
}

// Record converts the wire user into a UserRecord
func (r RemoteUser) Record() UserRecord {
	rec := UserRecord{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Age:       string(r.Age),
	}
	if r.Address != nil {
		rec.City = r.Address.City
	}
	return rec
}

// RemoteFromRecord converts a record back into the wire shape
func RemoteFromRecord(u UserRecord) RemoteUser {
	return RemoteUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       Age(u.Age),
		Address:   &RemoteAddress{City: u.City},
	}
}

// Snapshot is an immutable copy of the controller state handed to views
type Snapshot struct {
	Records    []UserRecord `json:"records"`
	View       []UserRecord `json:"view"`
	SearchText string       `json:"searchText"`
	EditIndex  int          `json:"editIndex"` // -1 when not editing
	Form       FormState    `json:"form"`
}

// Editing reports whether a row is in edit mode
func (s Snapshot) Editing() bool {
	return s.EditIndex >= 0
}
