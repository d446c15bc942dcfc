package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGenerateContent(t *testing.T, payload string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "secret-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		contents := body["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		require.Len(t, parts, 2)
		assert.Contains(t, parts[0].(map[string]any), "inline_data")
		assert.Contains(t, parts[1].(map[string]any)["text"], "Diferença")
		gc := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", gc["response_mime_type"])
		assert.Contains(t, gc, "response_schema")

		w.WriteHeader(status)
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{
					"parts": []any{map[string]any{"text": payload}},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtractSettlement(t *testing.T) {
	payload := "```json\n" + `{
		"valorBrutoReclamante": "15.000,00",
		"descontosReclamante": [{"descricao": "INSS", "valor": 1200}],
		"reclamadaDebitos": [{"descricao": "Custas", "valor": -300}],
		"contribuicaoSocialTotal": 2500
	}` + "\n```"
	srv := fakeGenerateContent(t, payload, http.StatusOK)
	defer srv.Close()

	client := NewClient(Config{APIKey: "secret-key", BaseURL: srv.URL}, nil)
	rec, raw, err := client.ExtractSettlement(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.InDelta(t, 15000, rec.GrossClaimantCredit, 1e-9)
	require.Len(t, rec.Discounts, 1)
	assert.Equal(t, "INSS", rec.Discounts[0].Description)
	require.Len(t, rec.Debits, 1)
	assert.InDelta(t, 300, rec.Debits[0].Amount, 1e-9, "negative amounts fold to magnitude")
	assert.InDelta(t, 2500, rec.TotalSocialContribution, 1e-9)
}

func TestExtractSettlementInvalidPayload(t *testing.T) {
	srv := fakeGenerateContent(t, `{"descontosReclamante": []}`, http.StatusOK)
	defer srv.Close()

	client := NewClient(Config{APIKey: "secret-key", BaseURL: srv.URL}, nil)
	_, _, err := client.ExtractSettlement(context.Background(), []byte("img"), "image/png")
	assert.ErrorContains(t, err, "schema validation failed")
}

func TestExtractSettlementUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "secret-key", BaseURL: srv.URL}, nil)
	_, _, err := client.ExtractSettlement(context.Background(), []byte("img"), "image/png")
	assert.ErrorContains(t, err, "gemini status 429")
}
