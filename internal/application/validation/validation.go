package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/labstock/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal se valida como número (gte=0, gt=0...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores se reportan con el nombre json/form/query del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Result resultado de validar un valor contra su esquema (tags validate).
type Result struct {
	Errors map[string]string // campo -> regla incumplida
}

// OK indica que no hubo errores.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Fields nombres de campo con error, ordenados.
func (r Result) Fields() []string {
	keys := make([]string, 0, len(r.Errors))
	for k := range r.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Err convierte el resultado en *domain.ValidationError, o nil si es válido.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &domain.ValidationError{Fields: r.Errors}
}

// Struct valida v (struct o puntero a struct) contra sus tags validate.
// Un valor que no es struct se reporta como error de esquema en el campo "_".
func Struct(v any) Result {
	err := validate.Struct(v)
	if err == nil {
		return Result{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: map[string]string{"_": "invalid"}}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = fe.Tag()
	}
	return Result{Errors: out}
}

// fieldPath quita el prefijo del struct raíz ("LoginForm.username" -> "username").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
