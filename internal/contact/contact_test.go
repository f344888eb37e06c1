package contact

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"two digits", "12", false},
		{"three digits", "123", true},
		{"digits with dashes", "1-2-3", true},
		{"letters only", "ab", false},
		{"empty", "", false},
		{"formatted international", "+44 (20) 7946-0958", true},
		{"spaces between two digits", " 1 2 ", false},
		{"non-ascii digits do not count", "١٢٣", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.phone)
			if got.OK != tt.ok {
				t.Errorf("ValidatePhone(%q).OK = %v, want %v", tt.phone, got.OK, tt.ok)
			}
			if !got.OK && got.Message == "" {
				t.Errorf("ValidatePhone(%q) failed without a message", tt.phone)
			}
			if got.OK && got.Message != "" {
				t.Errorf("ValidatePhone(%q) passed with message %q", tt.phone, got.Message)
			}
		})
	}
}

func TestNewInput_TrimsFields(t *testing.T) {
	in, err := NewInput("  Ada Lovelace ", "\t555-0100 ")
	if err != nil {
		t.Fatalf("NewInput() error = %v", err)
	}
	if in.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want %q", in.Name, "Ada Lovelace")
	}
	if in.Phone != "555-0100" {
		t.Errorf("Phone = %q, want %q", in.Phone, "555-0100")
	}
}

func TestNewInput_NameMissing(t *testing.T) {
	// Given: a blank name and an invalid phone
	_, err := NewInput("   ", "1")

	// Then: the name is reported first
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("NewInput() error = %v, want *ValidationError", err)
	}
	if ve.Kind != NameMissing {
		t.Errorf("Kind = %d, want NameMissing", ve.Kind)
	}
	if ve.Message != "name is required" {
		t.Errorf("Message = %q, want %q", ve.Message, "name is required")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}
}

func TestNewInput_PhoneTooShort(t *testing.T) {
	_, err := NewInput("Ada", "x-1-y")

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("NewInput() error = %v, want *ValidationError", err)
	}
	if ve.Kind != PhoneTooShort {
		t.Errorf("Kind = %d, want PhoneTooShort", ve.Kind)
	}
	if ve.Message != ValidatePhone("x-1-y").Message {
		t.Errorf("Message = %q, want the ValidatePhone message", ve.Message)
	}
}

func TestAvatar(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"alice", "A"},
		{"  bob", "B"},
		{"", "?"},
		{"   ", "?"},
		{"émile", "É"},
		{"张三", "张"},
		{"<script>", "<"},
	}
	for _, tt := range tests {
		if got := Avatar(tt.name); got != tt.want {
			t.Errorf("Avatar(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    ID
		wantErr bool
	}{
		{"string id", `{"id":"a1b2"}`, "a1b2", false},
		{"integer id", `{"id":42}`, "42", false},
		{"large integer keeps digits", `{"id":12345678901234567890}`, "12345678901234567890", false},
		{"boolean rejected", `{"id":true}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Contact
			err := json.Unmarshal([]byte(tt.body), &c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c.ID != tt.want {
				t.Errorf("ID = %q, want %q", c.ID, tt.want)
			}
		})
	}
}
