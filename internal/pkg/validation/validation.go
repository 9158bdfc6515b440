// Package validation validates request payloads and turns the first failure
// into a client-facing domain error.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"garderie-api/internal/core/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

// custom validation tags
var enumTags = map[string]struct {
	text  string
	valid func(string) bool
}{
	"role":          {"{0} must be one of: admin, tata", domain.IsValidRole},
	"childclass":    {"{0} must be one of: Tous-Petits, Garderie, Crèche, Maternelle", domain.IsValidClass},
	"paymentmode":   {"{0} must be one of: Journalier, Mensuel, Trimestriel", domain.IsValidPaymentMode},
	"paymentmethod": {"{0} must be one of: Espèce, Virement, Mobile Money", domain.IsValidPaymentMethod},
	"paymentstatus": {"{0} must be one of: Payé, En attente, En retard", domain.IsValidPaymentStatus},
}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, rule := range enumTags {
		valid := rule.valid
		_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		registerTranslation(tag, rule.text)
	}
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and returns a domain.ErrInvalidInput error describing the first failure
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Invalid("%s", verrs[0].Translate(translator))
	}
	return domain.Invalid("%s", err.Error())
}
