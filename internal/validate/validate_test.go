package validate

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", MsgRequired},
		{"whitespace only", "   ", MsgRequired},
		{"single letter", "J", MsgTooShort},
		{"single letter padded", "  J  ", MsgTooShort},
		{"two letters", "Jo", ""},
		{"apostrophe", "O'Brien", ""},
		{"hyphen", "Smith-Jones", ""},
		{"inner space", "Mary Ann", ""},
		{"digits", "J0hn", MsgLettersOnly},
		{"symbol", "Jo!", MsgLettersOnly},
		{"accented", "José", MsgLettersOnly},
		{"short wins over letters", "1", MsgTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range []string{FirstName, LastName} {
				if got := Field(f, tt.input); got != tt.want {
					t.Errorf("Field(%s, %q) = %q, want %q", f, tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestNameProperty(t *testing.T) {
	allowed := func(r rune) bool {
		return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' || r == '\'' || r == '-'
	}

	inputs := []string{
		"", " ", "a", "ab", " ab ", "a b", "a-b", "a'b", "a_b", "ab1", "ab.", "--", "''", "Zoë", "Al\tice",
	}

	for _, s := range inputs {
		trimmed := strings.TrimSpace(s)
		wantErr := trimmed == "" || len([]rune(trimmed)) < 2 || strings.IndexFunc(s, func(r rune) bool {
			return !allowed(r) && r != '\t'
		}) >= 0

		gotErr := Field(FirstName, s) != ""
		if gotErr != wantErr {
			t.Errorf("Field(firstName, %q) error = %v, want %v", s, gotErr, wantErr)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", MsgRequired},
		{"  ", MsgRequired},
		{"jo@x.com", ""},
		{" jo@x.com ", ""},
		{"first.last@sub.example.org", ""},
		{"jo@x", MsgInvalidFormat},
		{"jox.com", MsgInvalidFormat},
		{"jo@@x.com", MsgInvalidFormat},
		{"jo@x@y.com", MsgInvalidFormat},
		{"j o@x.com", MsgInvalidFormat},
		{"@x.com", MsgInvalidFormat},
		{"jo@.com", MsgInvalidFormat},
	}

	for _, tt := range tests {
		if got := Field(Email, tt.input); got != tt.want {
			t.Errorf("Field(email, %q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEmployeeID(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"", true},
		{"EMP-123", true},
		{"EMP-000", true},
		{"EMP-12", false},
		{"EMP-1234", false},
		{"emp-123", false},
		{"EMP123", false},
		{"EMP-12a", false},
		{" EMP-123", false},
		{"EMP-123 ", false},
	}

	for _, tt := range tests {
		got := Field(EmployeeID, tt.input)
		if (got == "") != tt.valid {
			t.Errorf("Field(employeeId, %q) = %q, want valid=%v", tt.input, got, tt.valid)
		}
		if !tt.valid && got != MsgEmployeeID {
			t.Errorf("Field(employeeId, %q) = %q, want %q", tt.input, got, MsgEmployeeID)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"", true},
		{"5551234567", true},
		{"(555) 123-4567", true},
		{"+1 555 123 4567", true},
		{"555-1234", false},
		{"phone", false},
		{" ", false},
	}

	for _, tt := range tests {
		got := Field(Phone, tt.input)
		if (got == "") != tt.valid {
			t.Errorf("Field(phone, %q) = %q, want valid=%v", tt.input, got, tt.valid)
		}
		wantValid := tt.input == "" || len(Digits(tt.input)) >= 10
		if wantValid != tt.valid {
			t.Errorf("digit projection of %q disagrees with table", tt.input)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"NY", MsgLocationShort},
		{"NYC", ""},
		{"Portland, OR", ""},
	}

	for _, tt := range tests {
		if got := Field(Location, tt.input); got != tt.want {
			t.Errorf("Field(location, %q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUnknownFieldIsValid(t *testing.T) {
	if got := Field("nickname", ""); got != "" {
		t.Errorf("unknown field should be valid, got %q", got)
	}
}

func TestAll(t *testing.T) {
	got := All(map[string]string{
		FirstName:  "",
		LastName:   "Doe",
		Email:      "nope",
		EmployeeID: "EMP-12",
	})

	want := map[string]string{
		FirstName:  MsgRequired,
		Email:      MsgInvalidFormat,
		EmployeeID: MsgEmployeeID,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidOptionalFieldsEmpty(t *testing.T) {
	values := map[string]string{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@x.com",
	}
	if !Valid(values) {
		t.Errorf("form with empty optional fields should be valid: %v", All(values))
	}
}

func TestLabelCoversFields(t *testing.T) {
	for _, f := range Fields {
		if Label(f) == "" {
			t.Errorf("Label(%s) is empty", f)
		}
	}
}
