package mutations

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"pension-engine/internal/dates"
	"pension-engine/internal/messages"
)

var emptyObject = []byte("{}")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func propsValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		// "date" accepts only real calendar dates in YYYY-MM-DD form.
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, ok := dates.Parse(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// decodeProps decodes the mutation's property bag into dst and runs the
// struct's validate tags. On failure it logs INVALID_MUTATION_PROPERTIES and
// returns false.
func decodeProps[T any](ctx *Context, dst *T) bool {
	raw := []byte(ctx.Mutation.MutationProperties)
	if len(raw) == 0 {
		raw = emptyObject
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		ctx.Log.AddCriticalf(messages.InvalidMutationProperties,
			"Invalid properties for %s: %v", ctx.Mutation.MutationDefinitionName, err)
		return false
	}
	if err := propsValidator().Struct(dst); err != nil {
		ctx.Log.AddCriticalf(messages.InvalidMutationProperties,
			"Invalid properties for %s: %s", ctx.Mutation.MutationDefinitionName, describe(err))
		return false
	}
	return true
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "date":
			parts = append(parts, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
