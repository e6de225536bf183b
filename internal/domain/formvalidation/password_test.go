package formvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func failedRules(pw string) []PasswordRule {
	var out []PasswordRule
	for _, c := range PasswordChecks(pw) {
		if !c.Passed {
			out = append(out, c.Rule)
		}
	}
	return out
}

func TestPasswordChecks(t *testing.T) {
	assert.Equal(t, []PasswordRule{PasswordRuleUpper}, failedRules("abc12345"))
	assert.Empty(t, failedRules("Abc12345"))
	assert.Equal(t, []PasswordRule{PasswordRuleDigit}, failedRules("Abcdefgh"))
	assert.Equal(t, []PasswordRule{PasswordRuleLength, PasswordRuleLower}, failedRules("ABC1"))
	assert.Len(t, failedRules(""), 4)
}

func TestPasswordChecks_AccentedLetters(t *testing.T) {
	assert.Empty(t, failedRules("Ñandú-2024"))
	assert.Equal(t, []PasswordRule{PasswordRuleLower}, failedRules("ÁÉÍÓÚ!123"))
	assert.Equal(t, []PasswordRule{PasswordRuleUpper}, failedRules("ñandúes#1"))
	assert.True(t, PasswordSatisfiesPolicy("Ébano!xyz"))
}

func TestPasswordPolicy_ValidatorMessages(t *testing.T) {
	v := PasswordPolicy()

	assert.Nil(t, v(Text(""), Values{}, FieldPassword))
	assert.Nil(t, v(Text("Secreta1!"), Values{}, FieldPassword))
	assert.Equal(t, []string{MsgPasswordUpper}, v(Text("abc12345"), Values{}, FieldPassword))
}
