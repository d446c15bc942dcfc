package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildSettlementJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is used locally to validate whatever the vision model
// returns before anything downstream trusts it.
func BuildSettlementJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"descricao": map[string]any{"type": "string"},
			"valor":     moneyProp(),
		},
		"required": []string{"descricao", "valor"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"valorBrutoReclamante":    moneyProp(),
			"descontosReclamante":     map[string]any{"type": "array", "items": lineItem},
			"reclamadaDebitos":        map[string]any{"type": "array", "items": lineItem},
			"contribuicaoSocialTotal": moneyProp(),
		},
		"required": []string{"valorBrutoReclamante", "descontosReclamante", "reclamadaDebitos"},
	}
}

func moneyProp() map[string]any {
	// Monetary figures must come back as non-negative numbers; the prompt
	// already demands positives and the sanitizer folds signs.
	return map[string]any{"type": "number", "minimum": 0.0}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
