package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"train_station/constants"
	"train_station/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Body parses the request body into T, validates it and stores *T in
// c.Locals("input"). PATCH requests only validate the fields that were sent.
func Body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(T)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MALFORMED_REQUEST)
		}
		if fields := Struct(input, c.Method() == fiber.MethodPatch); fields != nil {
			return utils.FieldErrors(c, fields)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

// Struct validates input and returns field errors keyed by JSON name, or nil.
func Struct(input any, partial bool) map[string]string {
	var err error
	if partial {
		err = validate.StructPartial(input, sentFields(input)...)
	} else {
		err = validate.Struct(input)
	}
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"non_field_errors": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		if _, ok := fields[key]; !ok {
			fields[key] = message(fe)
		}
	}
	return fields
}

// sentFields lists the top level fields a partial update carries: non-nil
// pointers, non-empty slices and non-zero values.
func sentFields(input any) []string {
	v := reflect.Indirect(reflect.ValueOf(input))
	t := v.Type()
	var names []string
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		if !v.Field(i).IsZero() {
			names = append(names, t.Field(i).Name)
		}
	}
	return names
}

// fieldKey drops the struct type name from a validator namespace.
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return constants.FIELD_REQUIRED
	case "email":
		return "Enter a valid email address."
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

// GetById parses the :key route parameter into c.Locals("id") as uint.
// Anything that is not a positive integer cannot name a row, so it is a 404.
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params(key), 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND)
		}
		c.Locals("id", uint(id))
		return c.Next()
	}
}
