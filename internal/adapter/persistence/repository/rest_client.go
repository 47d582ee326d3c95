package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"bordados_admin/internal/domain/entities"

	"go.uber.org/zap"
)

const defaultBackendTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response is read for the detail.
const maxErrorBody = 64 << 10

// BackendClient talks JSON to the shop's REST backend and classifies every
// failure as a *entities.BackendError:
//   - transport errors, timeouts, 5xx and undecodable bodies: ErrPersistence
//   - 404: ErrNotFound
//   - 400, 409, 422: ErrValidationRejected (the backend's message is kept)
type BackendClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.SugaredLogger
}

type BackendOption func(*BackendClient)

func WithHTTPClient(c *http.Client) BackendOption {
	return func(b *BackendClient) { b.http = c }
}

func WithToken(token string) BackendOption {
	return func(b *BackendClient) { b.token = token }
}

func WithLogger(log *zap.SugaredLogger) BackendOption {
	return func(b *BackendClient) { b.log = log }
}

func NewBackendClient(baseURL string, timeout time.Duration, opts ...BackendOption) *BackendClient {
	if timeout <= 0 {
		timeout = defaultBackendTimeout
	}
	c := &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BackendClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *BackendClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *BackendClient) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *BackendClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Infof("[backend] %s %s transport error err=%v", method, path, err)
		return &entities.BackendError{Kind: entities.ErrPersistence, Detail: transportDetail(err)}
	}
	defer resp.Body.Close()
	c.log.Debugf("[backend] %s %s status=%d elapsed=%s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Infof("[backend] %s %s undecodable body err=%v", method, path, err)
			return &entities.BackendError{Kind: entities.ErrPersistence, StatusCode: resp.StatusCode, Detail: "respuesta del servidor no válida"}
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := backendDetail(raw)
	c.log.Infof("[backend] %s %s failed status=%d detail=%q", method, path, resp.StatusCode, detail)
	return &entities.BackendError{Kind: classifyStatus(resp.StatusCode), StatusCode: resp.StatusCode, Detail: detail}
}

func classifyStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return entities.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return entities.ErrValidationRejected
	default:
		return entities.ErrPersistence
	}
}

func transportDetail(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "tiempo de espera agotado"
	case errors.Is(err, context.Canceled):
		return "solicitud cancelada"
	}
	var uErr *url.Error
	if errors.As(err, &uErr) && uErr.Timeout() {
		return "tiempo de espera agotado"
	}
	return "no se pudo contactar al servidor"
}

// backendDetail extracts a readable message from an error body. The backend
// answers either {"detail": "..."} or a map of field -> messages.
func backendDetail(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return truncate(string(raw), 300)
	}
	if d, ok := payload["detail"].(string); ok {
		return d
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+flattenMessages(payload[k]))
	}
	return strings.Join(parts, "; ")
}

func flattenMessages(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		msgs := make([]string, 0, len(t))
		for _, m := range t {
			msgs = append(msgs, flattenMessages(m))
		}
		return strings.Join(msgs, ", ")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
