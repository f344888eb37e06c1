// Package contact defines the Contact record and the client-side checks
// applied before a contact is sent to the backend.
package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPhoneDigits is the minimum number of digit characters a phone number
// must contain. Other characters are allowed and kept as typed.
const MinPhoneDigits = 3

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("contact: invalid input")

// ID is the backend-assigned contact identifier. The backend may send it as
// a JSON string or a JSON number; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("contact: decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("contact: id must be a string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string { return string(id) }

// Contact is a name/phone record identified by a backend-assigned id.
type Contact struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Input is the body of a create request. Build it with NewInput so both
// fields are trimmed and validated.
type Input struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Kind classifies a validation failure.
type Kind int

const (
	NameMissing   Kind = iota + 1 // Name was empty after trimming.
	PhoneTooShort                 // Phone had fewer than MinPhoneDigits digits.
)

// ValidationError reports why form input was rejected. Message is suitable
// for showing to the user as-is.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Result is the outcome of ValidatePhone.
type Result struct {
	OK      bool
	Message string
}

// ValidatePhone counts the digit characters in phone and fails when fewer
// than MinPhoneDigits are present.
func ValidatePhone(phone string) Result {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < MinPhoneDigits {
		return Result{Message: fmt.Sprintf("phone number must contain at least %d digits", MinPhoneDigits)}
	}
	return Result{OK: true}
}

// NewInput trims name and phone and validates them in form order: a missing
// name is reported before a short phone number.
func NewInput(name, phone string) (Input, error) {
	in := Input{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
	if in.Name == "" {
		return Input{}, &ValidationError{Kind: NameMissing, Message: "name is required"}
	}
	if res := ValidatePhone(in.Phone); !res.OK {
		return Input{}, &ValidationError{Kind: PhoneTooShort, Message: res.Message}
	}
	return in, nil
}

// Avatar returns the uppercased first character of the trimmed name,
// or "?" when the name is blank.
func Avatar(name string) string {
	name = strings.TrimSpace(name)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
