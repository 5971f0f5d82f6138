package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator - обертка для использования в Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New создает и настраивает валидатор
func New() *CustomValidator {
	v := validator.New()

	// Имена полей в ошибках совпадают с name="" в формах
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	registerNullTypes(v)

	// Сервер не должен стартовать без правил
	if err := registerRules(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}

	return &CustomValidator{validator: v}
}

// FieldErrors переводит ошибки валидатора в карту "поле → сообщение".
// Для ошибок другого рода возвращает nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, exists := out[name]; exists {
			continue
		}
		out[name] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле"
	case "email":
		return "Некорректный адрес электронной почты"
	case "min":
		return fmt.Sprintf("Минимальная длина — %s", fe.Param())
	case "max":
		return fmt.Sprintf("Максимальная длина — %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Значение должно быть не меньше %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Значение должно быть не больше %s", fe.Param())
	case "oneof":
		return "Недопустимое значение"
	case "code_format":
		return "Код может содержать латиницу, цифры и символы _ . -"
	case "tax_id":
		return "ИНН должен состоять из 9–12 цифр"
	case "phone":
		return "Некорректный номер телефона"
	case "periodicity":
		return "Неизвестная периодичность"
	case "required_if":
		return "Обязательное поле"
	}
	return "Некорректное значение"
}
