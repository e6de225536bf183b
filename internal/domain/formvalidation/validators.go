package formvalidation

import (
	"net/mail"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator returns nil when v is valid for field.
type Validator func(v Value, form Form, field string) []string

func fail(msg string) []string {
	return []string{msg}
}

func Required(msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		if v.IsEmpty() {
			return fail(msg)
		}
		return nil
	}
}

// Email skips empty values; pair it with Required.
func Email(msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		if v.Text == "" {
			return nil
		}
		addr, err := mail.ParseAddress(v.Text)
		if err != nil || addr.Address != v.Text || !strings.Contains(v.Text[strings.LastIndex(v.Text, "@"):], ".") {
			return fail(msg)
		}
		return nil
	}
}

func MinLength(n int, msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		if v.Text != "" && utf8.RuneCountInString(v.Text) < n {
			return fail(msg)
		}
		return nil
	}
}

func MaxLength(n int, msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		if utf8.RuneCountInString(v.Text) > n {
			return fail(msg)
		}
		return nil
	}
}

func OneOf(msg string, allowed ...string) Validator {
	return func(v Value, _ Form, _ string) []string {
		for _, a := range allowed {
			if v.Text == a {
				return nil
			}
		}
		return fail(msg)
	}
}

// MatchesField compares against the live value of other.
func MatchesField(other, msg string) Validator {
	return func(v Value, form Form, _ string) []string {
		if v.Text != form.Value(other).Text {
			return fail(msg)
		}
		return nil
	}
}

func MustBeChecked(msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		if !v.Checked {
			return fail(msg)
		}
		return nil
	}
}

func IntRange(min, max int, msg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		n, err := strconv.Atoi(v.Text)
		if err != nil || n < min || n > max {
			return fail(msg)
		}
		return nil
	}
}

// RequiredWhen only demands a value while cond holds for the form.
func RequiredWhen(cond func(Form) bool, msg string) Validator {
	return func(v Value, form Form, _ string) []string {
		if cond(form) && v.IsEmpty() {
			return fail(msg)
		}
		return nil
	}
}

// FileConstraints checks extension and size of every file.
func FileConstraints(maxBytes int64, exts []string, formatMsg, sizeMsg string) Validator {
	return func(v Value, _ Form, _ string) []string {
		var out []string
		for _, f := range v.Files {
			ext := strings.ToLower(filepath.Ext(f.Name))
			okExt := false
			for _, e := range exts {
				if ext == e {
					okExt = true
					break
				}
			}
			if !okExt {
				out = append(out, formatMsg)
			}
			if f.Size > maxBytes {
				out = append(out, sizeMsg)
			}
			if len(out) > 0 {
				return out
			}
		}
		return nil
	}
}

// FieldEquals builds a condition on a sibling field.
func FieldEquals(field, value string) func(Form) bool {
	return func(form Form) bool {
		return form.Value(field).Text == value
	}
}
