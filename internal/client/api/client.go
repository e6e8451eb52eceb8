package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/filmoteka/watchsync/pkg/api"
)

//go:generate go tool moq -out client_mock.go . ClientAPI

// Authority errors. Транспортные сбои оборачиваются в ErrUnreachable и
// повторяются при следующем запуске синхронизации; ErrRejected означает,
// что сервер отказал в push (устаревшая версия) и нужен повторный pull.
var (
	ErrUnreachable = errors.New("authority unreachable")
	ErrRejected    = errors.New("authority rejected push")
)

// ClientAPI определяет интерфейс клиента удаленного сервера watchlist
type ClientAPI interface {
	// FetchUserItems возвращает полный текущий набор записей пользователя,
	// включая tombstones (не дельту).
	FetchUserItems(ctx context.Context, userID string) ([]api.Item, error)

	// PushItem выполняет идемпотентный upsert записи по id. Сервер
	// принимает запись, только если её sync_version новее хранимой.
	PushItem(ctx context.Context, item api.Item) (*api.PushResponse, error)

	// Ping проверяет доступность сервера
	Ping(ctx context.Context) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// FetchUserItems возвращает полный набор записей пользователя
func (c *Client) FetchUserItems(ctx context.Context, userID string) ([]api.Item, error) {
	var items []api.Item
	path := "/api/v1/watchlist/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch user items failed: %w", err)
	}
	return items, nil
}

// PushItem отправляет одну запись на сервер
func (c *Client) PushItem(ctx context.Context, item api.Item) (*api.PushResponse, error) {
	var resp api.PushResponse
	path := "/api/v1/watchlist/items/" + url.PathEscape(item.ID)
	if err := c.doRequest(ctx, http.MethodPut, path, item, &resp); err != nil {
		return nil, fmt.Errorf("push item failed: %w", err)
	}
	return &resp, nil
}

// Ping проверяет доступность сервера
func (c *Client) Ping(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые сбои не фатальны: синхронизация повторится
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrUnreachable, err)
	}

	// Конфликт версий: сервер хранит более новую запись
	if resp.StatusCode == http.StatusConflict {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: %s", ErrRejected, errResp.Message)
		}
		return ErrRejected
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
