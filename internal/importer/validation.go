package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kadro-api/internal/domain"
)

// newValidator настраивает валидатор строк импорта.
// Имя поля в ошибках - каноническое, из тега field.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	if err := v.RegisterValidation("required_if_acting", requiredIfActing); err != nil {
		panic("register required_if_acting: " + err.Error())
	}
	return v
}

// requiredIfActing - поле обязательно, если статус строки Vekalet или Yürütme
func requiredIfActing(fl validator.FieldLevel) bool {
	status := fl.Parent().FieldByName("Status")
	if !status.IsValid() || !domain.PositionStatus(status.String()).IsActing() {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// describe переводит ошибки валидации в сообщение с отображаемыми именами полей
func describe(err error, s *schema) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := s.label(fe.Field())
		switch fe.Tag() {
		case "required", "required_if_acting":
			parts = append(parts, fmt.Sprintf("%s zorunludur", label))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s geçersiz: %q (geçerli değerler: %s)",
				label, fmt.Sprint(fe.Value()), strings.Join(strings.Fields(fe.Param()), ", ")))
		case "email", "url":
			parts = append(parts, fmt.Sprintf("%s biçimi geçersiz", label))
		default:
			parts = append(parts, fmt.Sprintf("%s geçersiz", label))
		}
	}
	return strings.Join(parts, "; ")
}
