package formvalidation

import "strings"

// FormState tracks values, touched fields and errors of one rendered form.
// Errors of untouched fields are computed but not shown.
type FormState struct {
	rules   Rules
	values  Values
	touched map[string]bool
	errors  FieldErrors
}

func NewFormState(rules Rules) *FormState {
	s := &FormState{
		rules:   rules,
		values:  Values{},
		touched: map[string]bool{},
		errors:  FieldErrors{},
	}
	s.revalidateAll()
	return s
}

// NewFormStateFor builds the state of a known form type.
func NewFormStateFor(form FormType) (*FormState, error) {
	rules, err := RulesFor(form)
	if err != nil {
		return nil, err
	}
	return NewFormState(rules), nil
}

func (s *FormState) Value(field string) Value {
	return s.values[field]
}

// Input handles an input event.
func (s *FormState) Input(field string, v Value) {
	s.set(field, v)
}

// Change handles a change event.
func (s *FormState) Change(field string, v Value) {
	s.set(field, v)
}

// Blur marks field touched without changing its value.
func (s *FormState) Blur(field string) {
	s.touched[field] = true
	s.revalidate(field)
}

func (s *FormState) set(field string, v Value) {
	s.values[field] = v
	s.touched[field] = true
	s.revalidate(field)

	for _, r := range s.rules {
		if r.Condition != nil && r.Condition.DependsOn == field {
			s.applyCondition(r)
		}
		for _, w := range r.Watches {
			if w == field {
				s.revalidate(r.Name)
				break
			}
		}
	}
}

func (s *FormState) applyCondition(r FieldRule) {
	if !r.Condition.Active(s) && r.Condition.ClearWhenInactive {
		delete(s.values, r.Name)
	}
	s.revalidate(r.Name)
}

// FieldActive reports whether a conditional field is shown and required.
// Unconditional fields are always active.
func (s *FormState) FieldActive(field string) bool {
	r, ok := s.rules.Field(field)
	if !ok || r.Condition == nil {
		return ok
	}
	return r.Condition.Active(s)
}

func (s *FormState) revalidate(field string) {
	if msgs := s.rules.ValidateField(field, s); len(msgs) > 0 {
		s.errors[field] = msgs
	} else {
		delete(s.errors, field)
	}
}

func (s *FormState) revalidateAll() {
	s.errors = s.rules.Validate(s)
}

func (s *FormState) Touched(field string) bool {
	return s.touched[field]
}

// Errors returns the current messages of field, touched or not.
func (s *FormState) Errors(field string) []string {
	return s.errors[field]
}

// VisibleErrors hides the messages of untouched fields.
func (s *FormState) VisibleErrors(field string) []string {
	if !s.touched[field] {
		return nil
	}
	return s.errors[field]
}

// ErrorText joins the visible messages with a space.
func (s *FormState) ErrorText(field string) string {
	return strings.Join(s.VisibleErrors(field), " ")
}

// CanSubmit drives the submit button; it ignores touched state.
func (s *FormState) CanSubmit() bool {
	return s.rules.Validate(s).Empty()
}

// PasswordChecks is the live policy of the password field.
func (s *FormState) PasswordChecks() []PasswordCheck {
	return PasswordChecks(s.values[FieldPassword].Text)
}

// SubmitResult tells the caller whether to send the form and where to focus.
type SubmitResult struct {
	Valid  bool
	Focus  string
	Errors FieldErrors
}

// Submit touches every field and revalidates the whole form.
func (s *FormState) Submit() SubmitResult {
	for _, r := range s.rules {
		s.touched[r.Name] = true
	}
	s.revalidateAll()

	if s.errors.Empty() {
		return SubmitResult{Valid: true, Errors: FieldErrors{}}
	}

	errs := make(FieldErrors, len(s.errors))
	for k, v := range s.errors {
		errs[k] = append([]string(nil), v...)
	}
	return SubmitResult{
		Valid:  false,
		Focus:  s.rules.FirstInvalid(errs),
		Errors: errs,
	}
}

// Values returns a copy of the current values.
func (s *FormState) Values() Values {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
