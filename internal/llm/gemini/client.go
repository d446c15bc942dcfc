package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/llm"
)

// extractionInstruction drives the vision pass over the settlement
// spreadsheet. When the sheet carries a "Diferença" column the amounts
// must come from it, since that column is the remaining balance.
const extractionInstruction = "Analise esta imagem de uma planilha de cálculo judicial trabalhista brasileira. " +
	"Siga esta regra estritamente: " +
	"1. Verifique se a planilha contém colunas como 'Devido', 'Pago' e 'Diferença'. " +
	"2. Se a coluna 'Diferença' existir, TODOS os valores monetários para extração DEVEM ser obtidos EXCLUSIVAMENTE desta coluna, pois ela representa o saldo remanescente. " +
	"3. Se a coluna 'Diferença' não existir, extraia os valores das colunas principais ('Valor', 'Total', etc.). " +
	"Extraia as informações financeiras e retorne-as no formato JSON, seguindo o schema fornecido. " +
	"Certifique-se de que todos os valores monetários sejam números positivos."

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature,omitempty"`
	ResponseMIMEType string  `json:"response_mime_type"`
	ResponseSchema   any     `json:"response_schema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// ExtractSettlement implements llm.SettlementExtractor against the
// generateContent endpoint, sending the spreadsheet image inline.
func (c *Client) ExtractSettlement(ctx context.Context, image []byte, mimeType string) (entity.ExtractedRecord, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"mime_type", mimeType,
		"image_bytes", len(image),
	)

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: extractionInstruction},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   buildResponseSchema(),
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, nil, httpErr
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, raw, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		c.log.Error("llm.extract.no_candidates",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, raw, fmt.Errorf("no candidates in gemini response")
	}
	rawContent := []byte(strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text))

	cleaned, dropped, sErr := llm.NormalizeAndSanitizeJSON(rawContent, c.log)
	if sErr != nil {
		c.log.Error("llm.extract.sanitize_failed",
			"req_id", rid, "error", sErr, "content", string(rawContent),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, rawContent, fmt.Errorf("sanitize failed: %w", sErr)
	}
	if len(dropped) > 0 {
		c.log.Warn("llm.extract.sanitize_applied",
			"req_id", rid, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}

	schema := llm.BuildSettlementJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, cleaned); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(cleaned),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, cleaned, fmt.Errorf("schema validation failed: %w", err)
	}

	var out entity.ExtractedRecord
	if err := json.Unmarshal(cleaned, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractedRecord{}, cleaned, fmt.Errorf("unmarshal record: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"gross", out.GrossClaimantCredit,
		"discounts", len(out.Discounts),
		"debits", len(out.Debits),
		"cs_total", out.TotalSocialContribution,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func(rc io.ReadCloser) {
		if cErr := rc.Close(); cErr != nil {
			c.log.Warn("gemini response body close error", "error", cErr)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, buf.String())
	}

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return buf.Bytes(), nil
}

// buildResponseSchema returns the generateContent response_schema in the
// Generative Language API dialect (uppercase type names, no draft keywords).
func buildResponseSchema() map[string]any {
	lineItem := func(kind string) map[string]any {
		return map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"descricao": map[string]any{
					"type":        "STRING",
					"description": "A descrição do " + kind + ".",
				},
				"valor": map[string]any{
					"type":        "NUMBER",
					"description": "O valor numérico do " + kind + ".",
				},
			},
			"required": []string{"descricao", "valor"},
		}
	}

	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"valorBrutoReclamante": map[string]any{
				"type": "NUMBER",
				"description": "O valor total bruto devido ao reclamante (autor/exequente), " +
					"geralmente chamado 'Crédito do(a) Exequente', 'Principal + Juros', ou similar. " +
					"Extraia apenas o número.",
			},
			"descontosReclamante": map[string]any{
				"type": "ARRAY",
				"description": "Uma lista de todos os descontos aplicados ao valor do reclamante, " +
					"como 'INSS', 'IRPF', 'Contribuição Social'.",
				"items": lineItem("desconto"),
			},
			"reclamadaDebitos": map[string]any{
				"type": "ARRAY",
				"description": "Uma lista de todos os débitos da reclamada (ré/executada), que são " +
					"valores que ela deve pagar a terceiros. Inclua itens como 'Custas', " +
					"'Honorários', 'INSS - Cota Empresa'.",
				"items": lineItem("débito"),
			},
			"contribuicaoSocialTotal": map[string]any{
				"type": "NUMBER",
				"description": "Analise o débito de Contribuição Social (INSS) da Reclamada. " +
					"Se a planilha for de 'Resumo do Cálculo' (inicial), este valor geralmente é a " +
					"SOMA da parte do empregado e da empresa. Neste caso, extraia o valor TOTAL aqui. " +
					"Se for uma planilha de 'Atualização' (com coluna 'Diferença'), este valor " +
					"geralmente já é a parte da EMPRESA separada. Neste caso, coloque 0 neste campo.",
			},
		},
		"required": []string{"valorBrutoReclamante", "descontosReclamante", "reclamadaDebitos"},
	}
}
