package formvalidation

import (
	"strings"
	"unicode/utf8"
)

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZÁÉÍÓÚÜÑ"
	lowerLetters = "abcdefghijklmnopqrstuvwxyzáéíóúüñ"

	PasswordMinLength = 8
)

type PasswordRule string

const (
	PasswordRuleLength PasswordRule = "length"
	PasswordRuleUpper  PasswordRule = "uppercase"
	PasswordRuleLower  PasswordRule = "lowercase"
	PasswordRuleDigit  PasswordRule = "digit_or_symbol"
)

// PasswordCheck is the state of one policy rule, shown live next to the field.
type PasswordCheck struct {
	Rule    PasswordRule `json:"rule"`
	Message string       `json:"message"`
	Passed  bool         `json:"passed"`
}

// PasswordChecks evaluates the four rules independently.
func PasswordChecks(pw string) []PasswordCheck {
	return []PasswordCheck{
		{Rule: PasswordRuleLength, Message: MsgPasswordLength, Passed: utf8.RuneCountInString(pw) >= PasswordMinLength},
		{Rule: PasswordRuleUpper, Message: MsgPasswordUpper, Passed: strings.ContainsAny(pw, upperLetters)},
		{Rule: PasswordRuleLower, Message: MsgPasswordLower, Passed: strings.ContainsAny(pw, lowerLetters)},
		{Rule: PasswordRuleDigit, Message: MsgPasswordDigit, Passed: hasDigitOrSymbol(pw)},
	}
}

func PasswordSatisfiesPolicy(pw string) bool {
	for _, c := range PasswordChecks(pw) {
		if !c.Passed {
			return false
		}
	}
	return true
}

func hasDigitOrSymbol(pw string) bool {
	for _, r := range pw {
		if !strings.ContainsRune(upperLetters, r) && !strings.ContainsRune(lowerLetters, r) {
			return true
		}
	}
	return false
}

// PasswordPolicy reports each failed rule. Empty values are left to Required.
func PasswordPolicy() Validator {
	return func(v Value, _ Form, _ string) []string {
		if v.Text == "" {
			return nil
		}
		var out []string
		for _, c := range PasswordChecks(v.Text) {
			if !c.Passed {
				out = append(out, c.Message)
			}
		}
		return out
	}
}
