package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the subset of JSON schema keywords checked by VerifyAgainstEmbeddedSchema
type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Defs       map[string]*schemaNode `json:"$defs"`
	Properties map[string]*schemaNode `json:"properties"`
	Required   []string               `json:"required"`
	Enum       []any                  `json:"enum"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks that required properties are set and enum properties carry one of the allowed values.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaNode
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var errs []error
	verifyNode(&schema, schema.Defs, configMap, "", &errs)
	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func verifyNode(node *schemaNode, defs map[string]*schemaNode, value any, path string, errs *[]error) {
	if node == nil {
		return
	}
	if node.Ref != "" {
		resolved, ok := defs[strings.TrimPrefix(node.Ref, "#/$defs/")]
		if !ok {
			*errs = append(*errs, fmt.Errorf("%s: unknown schema reference %s", pathOrRoot(path), node.Ref))
			return
		}
		node = resolved
	}

	if len(node.Enum) > 0 && !inEnum(node.Enum, value) {
		*errs = append(*errs, fmt.Errorf("%s: value %v is not one of %v", pathOrRoot(path), value, node.Enum))
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return
	}
	for _, name := range node.Required {
		if isEmpty(obj[name]) {
			*errs = append(*errs, fmt.Errorf("%s is required", joinPath(path, name)))
		}
	}
	for name, prop := range node.Properties {
		if v, ok := obj[name]; ok {
			verifyNode(prop, defs, v, joinPath(path, name), errs)
		}
	}
}

func inEnum(enum []any, value any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(value) {
			return true
		}
	}
	return false
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case float64:
		return val == 0
	}
	return false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func pathOrRoot(path string) string {
	if path == "" {
		return "config"
	}
	return path
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{})
}
