package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rule is a single check applied to a present field.
type Rule struct {
	Message string
	check   func(v *validator.Validate, value any) bool
}

// PasswordSymbols is the punctuation set accepted by the password strength rule.
const PasswordSymbols = "~`" + `!@#$%^&*()-_+={}[]|\;:"'<>,./? `

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func validate() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		mustRegister(engine, "strong_password", func(fl validator.FieldLevel) bool {
			return strongPassword(fl.Field().String())
		})
		mustRegister(engine, "iso_date", func(fl validator.FieldLevel) bool {
			_, err := parseDate(fl.Field().String())
			return err == nil
		})
	})
	return engine
}

// mustRegister panics when a custom tag cannot be registered; every rule
// using the tag would otherwise panic later inside Var.
func mustRegister(v *validator.Validate, name string, fn validator.Func) {
	if err := v.RegisterValidation(name, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", name, err))
	}
}

// tag runs a validator tag against the value's text form.
func tag(t, message string) Rule {
	return Rule{Message: message, check: func(v *validator.Validate, value any) bool {
		return v.Var(textOf(value), t) == nil
	}}
}

func IsString(message string) Rule {
	return Rule{Message: message, check: func(_ *validator.Validate, value any) bool {
		_, ok := value.(string)
		return ok
	}}
}

// IsFloat accepts JSON numbers and numeric strings.
func IsFloat(message string) Rule {
	return Rule{Message: message, check: func(v *validator.Validate, value any) bool {
		switch t := value.(type) {
		case float64:
			return true
		case string:
			if v.Var(strings.TrimSpace(t), "numeric") != nil {
				return false
			}
			_, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			return err == nil
		}
		return false
	}}
}

// IsBoolean accepts JSON booleans and strconv.ParseBool strings.
func IsBoolean(message string) Rule {
	return Rule{Message: message, check: func(v *validator.Validate, value any) bool {
		switch t := value.(type) {
		case bool:
			return true
		case string:
			return v.Var(t, "boolean") == nil
		}
		return false
	}}
}

func IsUUID(message string) Rule { return tag("uuid", message) }

func IsEmail(message string) Rule { return tag("email", message) }

func IsAlphanumeric(message string) Rule { return tag("alphanum", message) }

func IsDate(message string) Rule { return tag("iso_date", message) }

// Length bounds the character count, inclusive.
func Length(min, max int, message string) Rule {
	return tag("min="+strconv.Itoa(min)+",max="+strconv.Itoa(max), message)
}

func Matches(re *regexp.Regexp, message string) Rule {
	return Rule{Message: message, check: func(_ *validator.Validate, value any) bool {
		return re.MatchString(textOf(value))
	}}
}

// StrongPassword requires at least six characters including a lower case
// letter, an upper case letter, a digit and one of PasswordSymbols.
func StrongPassword(message string) Rule { return tag("strong_password", message) }

func strongPassword(s string) bool {
	var lower, upper, digit, symbol bool
	n := 0
	for _, r := range s {
		n++
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return n >= 6 && lower && upper && digit && symbol
}
