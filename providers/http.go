package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const errorBodyLimit = 4 << 10

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// getJSON выполняет GET запрос и декодирует JSON ответ в out
func getJSON(ctx context.Context, client *http.Client, endpoint string, query url.Values, out any) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		// Open-Meteo отвечает {"error": true, "reason": "..."}
		var apiError struct {
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(payload, &apiError); err == nil && apiError.Reason != "" {
			return fmt.Errorf("ошибка API: статус %d: %s", resp.StatusCode, apiError.Reason)
		}
		return fmt.Errorf("ошибка API: статус %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ошибка парсинга JSON: %w", err)
	}
	return nil
}
