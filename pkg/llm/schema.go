package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/umputun/signalist/pkg/domain"
)

// symbolMappingKeys are the only keys allowed in a symbol-mapping reply
var symbolMappingKeys = []string{"confidence", "reasoning", "tradingViewSymbol"}

// SymbolCheck is the result of CheckSymbolMapping. Mapping is set when Valid, Reason otherwise.
type SymbolCheck struct {
	Valid   bool
	Mapping domain.SymbolMapping
	Reason  string
}

func invalidSymbol(format string, args ...any) SymbolCheck {
	return SymbolCheck{Reason: fmt.Sprintf(format, args...)}
}

// CheckSymbolMapping checks a symbol-mapping reply. It accepts only an object with
// exactly tradingViewSymbol, confidence and reasoning string values and a confidence of high, medium or low.
func CheckSymbolMapping(data []byte) SymbolCheck {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return invalidSymbol("failed to parse json object: %v", err)
	}
	if raw == nil {
		return invalidSymbol("reply is not a json object")
	}

	var missing, extra []string
	for _, k := range symbolMappingKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range raw {
		if !isSymbolMappingKey(k) {
			extra = append(extra, k)
		}
	}
	if len(missing) > 0 {
		return invalidSymbol("missing keys: %s", strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return invalidSymbol("unexpected keys: %s", strings.Join(extra, ", "))
	}

	values := make(map[string]string, len(symbolMappingKeys))
	for _, k := range symbolMappingKeys {
		var s string
		if err := json.Unmarshal(raw[k], &s); err != nil {
			return invalidSymbol("key %s must be a string", k)
		}
		values[k] = s
	}

	mapping := domain.SymbolMapping{
		TradingViewSymbol: strings.TrimSpace(values["tradingViewSymbol"]),
		Confidence:        domain.Confidence(values["confidence"]),
		Reasoning:         values["reasoning"],
	}
	if mapping.TradingViewSymbol == "" {
		return invalidSymbol("tradingViewSymbol is empty")
	}
	if !mapping.Confidence.Valid() {
		return invalidSymbol("confidence %q is not one of high, medium, low", values["confidence"])
	}
	return SymbolCheck{Valid: true, Mapping: mapping}
}

func isSymbolMappingKey(k string) bool {
	for _, key := range symbolMappingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// symbolMappingSchema returns the inline JSON schema of domain.SymbolMapping for structured output requests
func symbolMappingSchema() []byte {
	r := jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	schema := r.Reflect(&domain.SymbolMapping{})
	schema.Version = ""
	schema.ID = ""
	data, err := json.Marshal(schema)
	if err != nil {
		// reflection of a fixed struct can't produce an unmarshalable schema
		panic(fmt.Sprintf("marshal symbol mapping schema: %v", err))
	}
	return data
}
