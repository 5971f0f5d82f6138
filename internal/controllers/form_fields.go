package controllers

import (
	"ereport-admin/pkg/types"
)

// Конструкторы полей формы. Тип совпадает с тем, что понимает шаблон form.

func textField(name, label, value string, required bool) FormField {
	return FormField{Name: name, Label: label, Type: "text", Value: value, Required: required}
}

func textareaField(name, label, value string) FormField {
	return FormField{Name: name, Label: label, Type: "textarea", Value: value}
}

func emailField(name, label, value string) FormField {
	return FormField{Name: name, Label: label, Type: "email", Value: value}
}

func passwordField(name, label string, required bool, help string) FormField {
	return FormField{Name: name, Label: label, Type: "password", Required: required, Help: help}
}

func numberField(name, label string, value types.NullInt64, help string) FormField {
	return FormField{Name: name, Label: label, Type: "number", Value: value.FormValue(), Help: help}
}

// selectField: пустой вариант добавляется, если поле необязательное.
func selectField(name, label, value string, options []types.Option, required bool) FormField {
	f := FormField{Name: name, Label: label, Type: "select", Value: value, Required: required}
	if !required {
		f.Options = append(f.Options, types.Option{Value: "", Label: "— не выбрано —"})
	}
	f.Options = append(f.Options, options...)
	return f
}

func checkboxField(name, label string, checked bool) FormField {
	return FormField{Name: name, Label: label, Type: "checkbox", Value: "true", Checked: checked}
}
