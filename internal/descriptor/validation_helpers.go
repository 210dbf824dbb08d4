package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// convertValidationError normalizes validator errors into malformed-descriptor
// errors, nesting the failing field under prefix (for example "plugins[2]").
func convertValidationError(err error, prefix string) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		if prefix != "" {
			field = prefix + "." + field
		}
		return bserrors.NewMalformedDescriptorError(field, describeTag(ve), err)
	}

	return bserrors.NewMalformedDescriptorError(prefix, err.Error(), err)
}

// yamlishFieldName drops the root struct name: "PluginReference.version" -> "version".
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "plugin_id":
		return fmt.Sprintf("invalid plugin identifier %q", fe.Value())
	case "plugin_version":
		return fmt.Sprintf("invalid version %q", fe.Value())
	case "repository_name":
		return fmt.Sprintf("invalid repository name %q", fe.Value())
	case "task_name":
		return fmt.Sprintf("invalid task name %q", fe.Value())
	case "url":
		return fmt.Sprintf("invalid url %q", fe.Value())
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", fe.Field(), fe.Tag())
	}
}

func fieldForPlugin(index int, field string) string {
	return indexed("plugins", index, field)
}

func fieldForRepository(index int, field string) string {
	return indexed("repositories", index, field)
}

func fieldForTask(index int, field string) string {
	return indexed("tasks", index, field)
}

func indexed(section string, index int, field string) string {
	if field == "" {
		return fmt.Sprintf("%s[%d]", section, index)
	}
	return fmt.Sprintf("%s[%d].%s", section, index, field)
}

// withPath stamps the descriptor path onto malformed-descriptor errors.
func withPath(err error, path string) error {
	var malformed *bserrors.MalformedDescriptorError
	if path != "" && errors.As(err, &malformed) && malformed.Path == "" {
		malformed.Path = path
	}
	return err
}
