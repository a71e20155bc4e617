// Package requests holds the declarative request validation layer. Each
// resource has a request struct whose rules live in validator struct tags plus
// a per-request message table, mirroring the field->messages maps returned to
// clients on 422 responses.
package requests

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	personNameRe  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	productNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-_&.,()]+$`)
	skuRe         = regexp.MustCompile(`^[A-Z0-9\-_]+$`)
	postalRe      = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
	phoneRe       = regexp.MustCompile(`^\+[1-9]\d{0,15}$`)
	currencyRe    = regexp.MustCompile(`^[A-Z]{3}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their json names so error keys match the wire format
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister("person_name", matchFunc(personNameRe))
	mustRegister("product_name", matchFunc(productNameRe))
	mustRegister("sku", matchFunc(skuRe))
	mustRegister("postal_code", matchFunc(postalRe))
	mustRegister("phone_e164", matchFunc(phoneRe))
	mustRegister("currency", matchFunc(currencyRe))
	mustRegister("decimal2", isDecimal2)
	mustRegister("dateymd", isDateYMD)
	mustRegister("dob", isDateOfBirth)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
	}
}

func matchFunc(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// isDecimal2 accepts numbers with at most two fraction digits
func isDecimal2(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

// isDateYMD accepts dates in YYYY-MM-DD form
func isDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// isDateOfBirth accepts a YYYY-MM-DD date after 1900-01-01 and before today
func isDateOfBirth(fl validator.FieldLevel) bool {
	d, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	floor := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	return d.After(floor) && d.Before(time.Now())
}

// Errors maps a field name to the validation messages recorded against it
type Errors map[string][]string

// Add records a message against a field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// runValidation validates a request struct and translates the resulting
// validator errors through the request's message table. Unmapped rules fall
// back to a generic message so no failure is ever silently dropped.
func runValidation(s any, messages map[string]string) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("request", "Invalid request data.")
		return errs
	}

	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		msg := messages[fe.Field()+"."+fe.Tag()]
		if msg == "" {
			msg = fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(fe.Field(), "_", " "))
		}
		errs.Add(key, msg)
	}
	return errs
}

// fieldKey turns a validator namespace like "OrderRequest.products[0].price"
// into the dotted form clients expect: "products.0.price"
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	namespace = strings.ReplaceAll(namespace, "]", "")
	return namespace
}

// parseDate parses a YYYY-MM-DD filter value; callers validate format first
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// inList reports whether value is one of the allowed values
func inList(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
