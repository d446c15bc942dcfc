package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON repairs the usual model slips before schema
// validation:
//   - strips markdown code fences around the document
//   - coerces numeric strings ("1.234,56", "1500.00") into numbers
//   - folds negative amounts to their magnitude
//   - drops null/zero optionals and unknown keys
//   - discards line items with an empty description
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw = stripCodeFences(raw)

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string

	if v, ok := coerceMoney(m["valorBrutoReclamante"]); ok {
		m["valorBrutoReclamante"] = v
	} else {
		delete(m, "valorBrutoReclamante")
		dropped = append(dropped, "valorBrutoReclamante")
	}

	if v, ok := coerceMoney(m["contribuicaoSocialTotal"]); ok && v > 0 {
		m["contribuicaoSocialTotal"] = v
	} else if _, present := m["contribuicaoSocialTotal"]; present {
		delete(m, "contribuicaoSocialTotal")
		dropped = append(dropped, "contribuicaoSocialTotal")
	}

	for _, key := range []string{"descontosReclamante", "reclamadaDebitos"} {
		items, ok := m[key].([]any)
		if !ok {
			if _, present := m[key]; present {
				dropped = append(dropped, key+"(type)")
			}
			m[key] = []any{}
			continue
		}
		cleaned := make([]any, 0, len(items))
		for i, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				dropped = append(dropped, fmt.Sprintf("%s[%d]", key, i))
				continue
			}
			desc, _ := item["descricao"].(string)
			desc = strings.TrimSpace(desc)
			valor, okV := coerceMoney(item["valor"])
			if desc == "" || !okV {
				dropped = append(dropped, fmt.Sprintf("%s[%d]", key, i))
				continue
			}
			cleaned = append(cleaned, map[string]any{"descricao": desc, "valor": valor})
		}
		m[key] = cleaned
	}

	// unknown keys break additionalProperties=false validation
	allowed := map[string]struct{}{
		"valorBrutoReclamante": {}, "descontosReclamante": {},
		"reclamadaDebitos": {}, "contribuicaoSocialTotal": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// coerceMoney accepts numbers and numeric strings (including pt-BR
// "1.234,56") and returns them as a non-negative float64.
func coerceMoney(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return math.Abs(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return math.Abs(f), true
	default:
		return 0, false
	}
}

func stripCodeFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}
