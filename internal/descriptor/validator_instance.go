package descriptor

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	pluginIDPattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z0-9_-]+)*$`)
	pluginVersionPattern  = regexp.MustCompile(`^\d+(\.\d+)*(-[0-9A-Za-z.]+)?$`)
	repositoryNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)
	taskNamePattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:-]*$`)
)

// validatorInstance configures and returns the shared validator used across the descriptor package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("plugin_id", func(fl validator.FieldLevel) bool {
			return pluginIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("plugin_version", func(fl validator.FieldLevel) bool {
			return pluginVersionPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("repository_name", func(fl validator.FieldLevel) bool {
			return repositoryNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("task_name", func(fl validator.FieldLevel) bool {
			return taskNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}
