// Package prompt keeps the prompt templates sent to the generation service and renders
// their {{key}} placeholders. The same renderer fills the email layouts.
package prompt

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/umputun/signalist/pkg/domain"
)

// Template is a named body with {{key}} placeholders
type Template struct {
	Name string
	Body string
}

// Rendered is a template with every placeholder substituted
type Rendered struct {
	Name string
	Text string
}

// MissingPlaceholderError is returned when the values lack keys used by the template
type MissingPlaceholderError struct {
	Template string
	Keys     []string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %q: missing values for placeholders %s", e.Template, strings.Join(e.Keys, ", "))
}

// Is makes the error match domain.ErrValidation
func (e *MissingPlaceholderError) Is(target error) bool {
	return target == domain.ErrValidation
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Placeholders returns the unique placeholder keys of the template in order of appearance
func (t Template) Placeholders() []string {
	seen := map[string]bool{}
	var res []string
	for _, m := range placeholderRe.FindAllStringSubmatch(t.Body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			res = append(res, m[1])
		}
	}
	return res
}

// Render replaces every {{key}} in the template with the string form of values[key].
// All placeholders must have a value, otherwise MissingPlaceholderError is returned.
// Values containing placeholder syntax are rejected so the result has no "{{...}}" left.
func Render(t Template, values map[string]any) (Rendered, error) {
	var missing []string
	strValues := make(map[string]string, len(values))
	for _, key := range t.Placeholders() {
		v, ok := values[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		s, err := stringify(v)
		if err != nil {
			return Rendered{}, fmt.Errorf("%w: template %q, value %q: %v", domain.ErrValidation, t.Name, key, err)
		}
		if placeholderRe.MatchString(s) {
			return Rendered{}, fmt.Errorf("%w: template %q, value %q contains placeholder syntax", domain.ErrValidation, t.Name, key)
		}
		strValues[key] = s
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Rendered{}, &MissingPlaceholderError{Template: t.Name, Keys: missing}
	}

	text := placeholderRe.ReplaceAllStringFunc(t.Body, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		return strValues[key]
	})
	return Rendered{Name: t.Name, Text: text}, nil
}

// stringify converts a value to its prompt form, structured values are rendered as indented json
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case fmt.Stringer:
		return val.String(), nil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Ptr:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal: %w", err)
		}
		return string(data), nil
	default:
		return fmt.Sprint(v), nil
	}
}
