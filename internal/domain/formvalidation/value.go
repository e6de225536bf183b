package formvalidation

import "strings"

type ValueKind int

const (
	KindText ValueKind = iota
	KindCheckbox
	KindFile
)

// File describes an uploaded file without its content.
type File struct {
	Name        string
	Size        int64
	ContentType string
}

// Value is the normalized value of one form control.
type Value struct {
	Kind    ValueKind
	Text    string
	Checked bool
	Files   []File
}

// Text trims s.
func Text(s string) Value {
	return Value{Kind: KindText, Text: strings.TrimSpace(s)}
}

func Checkbox(checked bool) Value {
	return Value{Kind: KindCheckbox, Checked: checked}
}

func Files(files ...File) Value {
	return Value{Kind: KindFile, Files: files}
}

func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindCheckbox:
		return !v.Checked
	case KindFile:
		return len(v.Files) == 0
	default:
		return v.Text == ""
	}
}

// Form gives validators access to sibling fields.
type Form interface {
	Value(field string) Value
}

// Values is a plain Form, used when validating a decoded request.
type Values map[string]Value

func (v Values) Value(field string) Value {
	return v[field]
}
