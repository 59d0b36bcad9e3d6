package pkgconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if key := f.Tag.Get("key"); key != "" {
				return key
			}
			return f.Name
		})
	})
	return validate
}

// Validate checks a settings struct built from config values against its
// `validate` tags. Failures name the config key given by the `key` tag.
func Validate(settings any) error {
	err := validatorInstance().Struct(settings)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a url, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}

	return errors.New("invalid config: " + strings.Join(msgs, "; "))
}
