package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	codeRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,31}$`)
	taxIDRegex = regexp.MustCompile(`^\d{9,12}$`)
	phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)
)

var periodicities = map[string]bool{
	"daily":     true,
	"weekly":    true,
	"monthly":   true,
	"quarterly": true,
	"yearly":    true,
}

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("code_format", isCodeValid); err != nil {
		return err
	}
	if err := v.RegisterValidation("tax_id", isTaxIDValid); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", isPhoneValid); err != nil {
		return err
	}
	if err := v.RegisterValidation("periodicity", isPeriodicityValid); err != nil {
		return err
	}
	return nil
}

// isCodeValid - коды классификаторов и бюллетеней: латиница, цифры, "_.-"
func isCodeValid(fl validator.FieldLevel) bool {
	return codeRegex.MatchString(fl.Field().String())
}

func isTaxIDValid(fl validator.FieldLevel) bool {
	return taxIDRegex.MatchString(fl.Field().String())
}

func isPhoneValid(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func isPeriodicityValid(fl validator.FieldLevel) bool {
	return periodicities[fl.Field().String()]
}
