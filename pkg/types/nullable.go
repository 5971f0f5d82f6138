package types

import (
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
)

// NullInt64 — null.Int64, который echo умеет заполнять из полей формы.
// Пустое значение поля (например, "— не выбрано —" в select) даёт null.
type NullInt64 struct {
	null.Int64
}

func NullInt64From(v int64) NullInt64 {
	return NullInt64{null.Int64From(v)}
}

// NullInt64FromPtr удобен при переносе значений из сущностей.
func NullInt64FromPtr(v *uint64) NullInt64 {
	if v == nil {
		return NullInt64{}
	}
	return NullInt64From(int64(*v))
}

func (n *NullInt64) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		n.Int64 = null.Int64{}
		return nil
	}
	v, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return err
	}
	n.Int64 = null.Int64From(v)
	return nil
}

// FormValue — представление для value="" в шаблонах.
func (n NullInt64) FormValue() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64.Int64, 10)
}

// NullString — необязательная строка формы; пробельная строка считается пустой.
type NullString struct {
	null.String
}

func NullStringFrom(s string) NullString {
	return NullString{null.NewString(s, strings.TrimSpace(s) != "")}
}

func (n *NullString) UnmarshalParam(param string) error {
	*n = NullStringFrom(param)
	return nil
}

func (n NullString) FormValue() string {
	if !n.Valid {
		return ""
	}
	return n.String.String
}
