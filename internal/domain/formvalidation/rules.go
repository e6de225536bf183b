package formvalidation

import "fmt"

type FormType string

const (
	FormLogin    FormType = "login"
	FormRegister FormType = "register"
	FormRecovery FormType = "recovery"
	FormReview   FormType = "review"
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
	FieldAccountType     = "account-type"
	FieldCertificate     = "certificate"
	FieldTerms           = "terms"
	FieldRating          = "rating"
	FieldComment         = "comment"

	AccountTypeClient   = "cliente"
	AccountTypeMechanic = "mecanico"

	MaxCertificateBytes = 5 << 20
)

var CertificateExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// Condition makes a field visible and required only while Active holds.
type Condition struct {
	DependsOn         string
	Active            func(Form) bool
	ClearWhenInactive bool
}

// FieldRule is the ordered validator list of one field. Watches names the
// fields whose changes must re-run this field's validators.
type FieldRule struct {
	Name       string
	Validators []Validator
	Watches    []string
	Condition  *Condition
}

// Rules keeps declaration order; it decides which invalid field gets focus.
type Rules []FieldRule

func (r Rules) Field(name string) (FieldRule, bool) {
	for _, f := range r {
		if f.Name == name {
			return f, true
		}
	}
	return FieldRule{}, false
}

// ValidateField concatenates validator outputs in declaration order.
func (r Rules) ValidateField(name string, form Form) []string {
	rule, ok := r.Field(name)
	if !ok {
		return nil
	}

	v := form.Value(name)
	var out []string
	for _, validate := range rule.Validators {
		out = append(out, validate(v, form, name)...)
	}
	return out
}

// Validate returns the errors of every invalid field.
func (r Rules) Validate(form Form) FieldErrors {
	errs := FieldErrors{}
	for _, f := range r {
		if msgs := r.ValidateField(f.Name, form); len(msgs) > 0 {
			errs[f.Name] = msgs
		}
	}
	return errs
}

// FirstInvalid follows declaration order.
func (r Rules) FirstInvalid(errs FieldErrors) string {
	for _, f := range r {
		if len(errs[f.Name]) > 0 {
			return f.Name
		}
	}
	return ""
}

// FieldErrors maps field name to messages.
type FieldErrors map[string][]string

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

func LoginRules() Rules {
	return Rules{
		{Name: FieldEmail, Validators: []Validator{Required(MsgRequired), Email(MsgInvalidEmail)}},
		{Name: FieldPassword, Validators: []Validator{Required(MsgRequired)}},
	}
}

func RegisterRules() Rules {
	isMechanic := FieldEquals(FieldAccountType, AccountTypeMechanic)

	return Rules{
		{Name: FieldName, Validators: []Validator{Required(MsgRequired), MinLength(2, MsgNameTooShort)}},
		{Name: FieldEmail, Validators: []Validator{Required(MsgRequired), Email(MsgInvalidEmail)}},
		{Name: FieldPassword, Validators: []Validator{Required(MsgRequired), PasswordPolicy()}},
		{
			Name:       FieldConfirmPassword,
			Validators: []Validator{Required(MsgRequired), MatchesField(FieldPassword, MsgPasswordMismatch)},
			Watches:    []string{FieldPassword},
		},
		{Name: FieldAccountType, Validators: []Validator{OneOf(MsgAccountType, AccountTypeClient, AccountTypeMechanic)}},
		{
			Name: FieldCertificate,
			Validators: []Validator{
				RequiredWhen(isMechanic, MsgCertificate),
				FileConstraints(MaxCertificateBytes, CertificateExtensions, MsgCertificateFormat, MsgCertificateSize),
			},
			Watches: []string{FieldAccountType},
			Condition: &Condition{
				DependsOn:         FieldAccountType,
				Active:            isMechanic,
				ClearWhenInactive: true,
			},
		},
		{Name: FieldTerms, Validators: []Validator{MustBeChecked(MsgTerms)}},
	}
}

func RecoveryRules() Rules {
	return Rules{
		{Name: FieldEmail, Validators: []Validator{Required(MsgRequired), Email(MsgInvalidEmail)}},
	}
}

func ReviewRules() Rules {
	return Rules{
		{Name: FieldRating, Validators: []Validator{IntRange(1, 5, MsgRating)}},
		{Name: FieldComment, Validators: []Validator{MaxLength(500, MsgCommentTooLong)}},
	}
}

func RulesFor(form FormType) (Rules, error) {
	switch form {
	case FormLogin:
		return LoginRules(), nil
	case FormRegister:
		return RegisterRules(), nil
	case FormRecovery:
		return RecoveryRules(), nil
	case FormReview:
		return ReviewRules(), nil
	}
	return nil, fmt.Errorf("unknown form type %q", form)
}

// Validate runs the rule set of form over already normalized values.
func Validate(form FormType, values Values) (FieldErrors, error) {
	rules, err := RulesFor(form)
	if err != nil {
		return nil, err
	}
	return rules.Validate(values), nil
}
