package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/models"
)

// HTTPClientConfig carries the settings of the HTTP adapter.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL and configures
// the underlying resty client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.Token())
}

func (h *httpServerAdapter) IssueToken(ctx context.Context, address common.Address) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{Address: address.Hex()}).
		Post("/api/auth/token")
	if err != nil {
		return "", fmt.Errorf("issue token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var tokenResp models.TokenResponse
	if err = json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return "", fmt.Errorf("issue token decode response: %w", err)
	}

	h.SetToken(tokenResp.Token)
	return tokenResp.Token, nil
}

func (h *httpServerAdapter) Register(ctx context.Context, key []byte) (common.Address, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(models.RegisterRequest{Key: key}).
		Post("/api/user/register")
	if err != nil {
		return common.Address{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return common.Address{}, err
	}

	var addrResp models.AddressResponse
	if err = json.Unmarshal(resp.Body(), &addrResp); err != nil {
		return common.Address{}, fmt.Errorf("register decode response: %w", err)
	}

	return common.HexToAddress(addrResp.Address), nil
}

func (h *httpServerAdapter) UpdateEncryptionKey(ctx context.Context, key []byte) error {
	resp, err := h.authedRequest(ctx).
		SetBody(models.KeyRequest{Key: key}).
		Put("/api/user/key")
	if err != nil {
		return fmt.Errorf("update encryption key request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, title, content string) (*uint256.Int, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(models.NoteRequest{Title: title, Content: content}).
		Post("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var idResp models.NoteIDResponse
	if err = json.Unmarshal(resp.Body(), &idResp); err != nil {
		return nil, fmt.Errorf("create note decode response: %w", err)
	}

	id, err := uint256.FromHex(idResp.ID)
	if err != nil {
		return nil, fmt.Errorf("create note parse id %q: %w", idResp.ID, err)
	}

	return id, nil
}

func (h *httpServerAdapter) GetNote(ctx context.Context, id *uint256.Int) (models.NoteResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/notes/" + id.Hex())
	if err != nil {
		return models.NoteResponse{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NoteResponse{}, err
	}

	var noteResp models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &noteResp); err != nil {
		return models.NoteResponse{}, fmt.Errorf("get note decode response: %w", err)
	}

	return noteResp, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, id *uint256.Int, title, content string) error {
	resp, err := h.authedRequest(ctx).
		SetBody(models.NoteRequest{Title: title, Content: content}).
		Put("/api/notes/" + id.Hex())
	if err != nil {
		return fmt.Errorf("update note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, id *uint256.Int) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/notes/" + id.Hex())
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetNoteCount(ctx context.Context) (*uint256.Int, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/notes/count")
	if err != nil {
		return nil, fmt.Errorf("get note count request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var countResp models.NoteCountResponse
	if err = json.Unmarshal(resp.Body(), &countResp); err != nil {
		return nil, fmt.Errorf("get note count decode response: %w", err)
	}

	count, err := uint256.FromHex(countResp.Count)
	if err != nil {
		return nil, fmt.Errorf("get note count parse %q: %w", countResp.Count, err)
	}

	return count, nil
}

func (h *httpServerAdapter) GetNotesList(ctx context.Context) (models.NoteListResponse, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/notes")
	if err != nil {
		return models.NoteListResponse{}, fmt.Errorf("get notes list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NoteListResponse{}, err
	}

	var listResp models.NoteListResponse
	if err = json.Unmarshal(resp.Body(), &listResp); err != nil {
		return models.NoteListResponse{}, fmt.Errorf("get notes list decode response: %w", err)
	}

	return listResp, nil
}

func (h *httpServerAdapter) Encrypt(ctx context.Context, content string) ([]byte, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(models.EncryptRequest{Content: content}).
		Post("/api/crypto/encrypt")
	if err != nil {
		return nil, fmt.Errorf("encrypt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var encResp models.EncryptResponse
	if err = json.Unmarshal(resp.Body(), &encResp); err != nil {
		return nil, fmt.Errorf("encrypt decode response: %w", err)
	}

	return encResp.Data, nil
}

func (h *httpServerAdapter) Decrypt(ctx context.Context, data []byte) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(models.DecryptRequest{Data: data}).
		Post("/api/crypto/decrypt")
	if err != nil {
		return "", fmt.Errorf("decrypt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var decResp models.DecryptResponse
	if err = json.Unmarshal(resp.Body(), &decResp); err != nil {
		return "", fmt.Errorf("decrypt decode response: %w", err)
	}

	return decResp.Content, nil
}

func (h *httpServerAdapter) ContractAddress(ctx context.Context) (common.Address, error) {
	resp, err := h.authedRequest(ctx).
		Get("/api/contract/address")
	if err != nil {
		return common.Address{}, fmt.Errorf("contract address request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return common.Address{}, err
	}

	var addrResp models.AddressResponse
	if err = json.Unmarshal(resp.Body(), &addrResp); err != nil {
		return common.Address{}, fmt.Errorf("contract address decode response: %w", err)
	}

	return common.HexToAddress(addrResp.Address), nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}
