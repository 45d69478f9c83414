package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"iqro_backend/internals/constants"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

const (
	notBlankTag = "notblank"
	roleTag     = "iqro_role"
	jenisTag    = "jenis"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// pakai nama json untuk field error
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = Validate.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		return constants.IsRegisterableRole(fl.Field().String())
	})
	_ = Validate.RegisterValidation(jenisTag, func(fl validator.FieldLevel) bool {
		return constants.IsValidJenis(fl.Field().String())
	})

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, roleTag, jenisTag} {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " tidak boleh kosong"
	case roleTag:
		return "role harus salah satu dari siswa, guru, ortu"
	case jenisTag:
		return "jenis harus hafalan atau murojaah"
	}
	return fe.Error()
}

// ValidateStruct mengembalikan map field -> pesan; nil kalau valid.
func ValidateStruct(v any) map[string][]string {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Translate(Translator))
	}
	return out
}
