package config

import (
	"fmt"
	"strings"

	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/input/key"
)

// Option names.
const (
	OptionDefaultBlockTag = "defaultBlockTag"
	OptionPlatform        = "platform"
	OptionSanitize        = "sanitize"
	OptionMinify          = "minify"
)

// validator checks a value and returns its normalized form.
type validator func(name string, v any) (any, error)

var validators = map[string]validator{
	OptionDefaultBlockTag: validateBlockTag,
	OptionPlatform:        validatePlatform,
	OptionSanitize:        validateBool,
	OptionMinify:          validateBool,
}

// Names returns the known option names in a stable order.
func Names() []string {
	return []string{OptionDefaultBlockTag, OptionPlatform, OptionSanitize, OptionMinify}
}

func defaults() map[string]any {
	return map[string]any{
		OptionDefaultBlockTag: string(document.DefaultBlockType()),
		OptionPlatform:        string(key.CurrentPlatform()),
		OptionSanitize:        true,
		OptionMinify:          false,
	}
}

// validate checks value for the named option.
func validate(name string, value any) (any, error) {
	v, ok := validators[name]
	if !ok {
		return nil, &ValidationError{Name: name, Message: "unknown option", Value: value, Code: ErrCodeUnknownOption}
	}
	return v(name, value)
}

func typeError(name, want string, value any) error {
	return &ValidationError{
		Name:    name,
		Message: fmt.Sprintf("expected %s, got %T", want, value),
		Value:   value,
		Code:    ErrCodeTypeMismatch,
	}
}

// validateBlockTag accepts block tags and the empty string, which
// unwraps toggled-off blocks on the DOM.
func validateBlockTag(name string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(name, "string", value)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s, nil
	}
	if _, err := document.ParseBlockType(s); err != nil {
		return nil, &ValidationError{Name: name, Message: "not a block tag", Value: value, Code: ErrCodeInvalidEnum}
	}
	return s, nil
}

func validatePlatform(name string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(name, "string", value)
	}
	p, ok := key.ParsePlatform(s)
	if !ok {
		return nil, &ValidationError{Name: name, Message: "unknown platform", Value: value, Code: ErrCodeInvalidEnum}
	}
	return string(p), nil
}

func validateBool(name string, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, typeError(name, "bool", value)
	}
	return b, nil
}
