package validator

import "testing"

type passwordPayload struct {
	Password string `validate:"required,password"`
}

func TestPasswordRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"letters and digits", "abcdef12", true},
		{"mixed case with digits", "Str0ngPass", true},
		{"too short", "ab1", false},
		{"letters only", "abcdefgh", false},
		{"digits only", "12345678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&passwordPayload{Password: tt.password})
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate(%q) error = %v, wantOK %v", tt.password, err, tt.wantOK)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&passwordPayload{Password: "short"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	formatted := v.FormatValidationErrors(err)
	if len(formatted) != 1 {
		t.Fatalf("expected one field error, got %d", len(formatted))
	}
	if _, ok := formatted["Password"]; !ok {
		t.Errorf("expected an error keyed by Password, got %v", formatted)
	}
}
