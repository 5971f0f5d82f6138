package dto

import "strings"

// Form - то, что умеют все формы справочников.
type Form interface {
	// Normalize приводит значения к виду, который уходит в API.
	Normalize()
	// Check - межполевые правила, которые неудобно выразить тегами.
	Check() map[string]string
}

func trim(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
