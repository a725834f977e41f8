// SPDX-License-Identifier: Apache-2.0

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/events"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/service"
	"github.com/notekeep/go-secure-notes/internal/store"
	"github.com/notekeep/go-secure-notes/internal/utils"
	"github.com/notekeep/go-secure-notes/models"
)

const (
	testSignKey = "handler-test-sign-key"
	testIssuer  = "go-secure-notes"
	testVersion = "v1.2.3-test"
	testSelf    = "0x000000000000000000000000000000000000c0de"
)

var testCaller = common.HexToAddress("0x1111111111111111111111111111111111111111")

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.Nop()
	storages, err := store.NewStorages(context.Background(), config.Storage{Backend: config.BackendMemory}, log)
	require.NoError(t, err)

	services := service.NewServices(storages, events.NewRecordingSink(), log)

	handler := NewHandler(services, config.App{
		SelfAddress:   testSelf,
		TokenSignKey:  testSignKey,
		TokenIssuer:   testIssuer,
		TokenDuration: time.Hour,
		Version:       testVersion,
	}, log)

	return handler.Init()
}

func bearerFor(t *testing.T, caller common.Address) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, caller, time.Hour, testSignKey)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes the JSON response into out when out is non-nil.
func doJSON(t *testing.T, router http.Handler, method, target, auth string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Code < http.StatusMultipleChoices {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w
}

func TestIssueToken(t *testing.T) {
	router := newTestRouter(t)

	var resp models.TokenResponse
	w := doJSON(t, router, http.MethodPost, "/api/auth/token", "",
		models.TokenRequest{Address: testCaller.Hex()}, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp.Token)

	// the issued token authenticates as the requested caller
	parsed, err := utils.ValidateAndParseJWTToken(resp.Token, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testCaller, parsed.Caller)
}

func TestIssueToken_InvalidAddress(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/token", "",
		models.TokenRequest{Address: "not-an-address"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueToken_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewBufferString("{broken"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: bearerFor(t, testCaller), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/api/notes/count", tt.authHeader, nil, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := newTestRouter(t)

	expired, err := utils.GenerateJWTToken(testIssuer, testCaller, time.Nanosecond, testSignKey)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	w := doJSON(t, router, http.MethodGet, "/api/notes/count", "Bearer "+expired.SignedString, nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is expired")
}

// TestNotesLifecycle drives the whole note surface through the gateway:
// create, read, list, count, update and delete against a live in-memory
// engine.
func TestNotesLifecycle(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	// create
	var created models.NoteIDResponse
	w := doJSON(t, router, http.MethodPost, "/api/notes", auth,
		models.NoteRequest{Title: "groceries", Content: "milk, eggs"}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0x0", created.ID)

	// read back
	var note models.NoteResponse
	w = doJSON(t, router, http.MethodGet, "/api/notes/"+created.ID, auth, nil, &note)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "groceries", note.Title)
	assert.Equal(t, "milk, eggs", note.Content)

	// second note and list
	w = doJSON(t, router, http.MethodPost, "/api/notes", auth,
		models.NoteRequest{Title: "todo", Content: "call mom"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var list models.NoteListResponse
	w = doJSON(t, router, http.MethodGet, "/api/notes", auth, nil, &list)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"groceries", "todo"}, list.Titles)
	assert.Equal(t, []string{"0x0", "0x1"}, list.IDs)

	var count models.NoteCountResponse
	w = doJSON(t, router, http.MethodGet, "/api/notes/count", auth, nil, &count)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0x2", count.Count)

	// update in place
	w = doJSON(t, router, http.MethodPut, "/api/notes/0", auth,
		models.NoteRequest{Title: "groceries", Content: "milk, eggs, bread"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notes/0", auth, nil, &note)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "milk, eggs, bread", note.Content)

	// delete id 0: the last note is relabeled into the freed slot
	w = doJSON(t, router, http.MethodDelete, "/api/notes/0", auth, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notes/0", auth, nil, &note)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "todo", note.Title)

	w = doJSON(t, router, http.MethodGet, "/api/notes/count", auth, nil, &count)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0x1", count.Count)
}

func TestGetNote_AbsentIsSentinelWith200(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	var note models.NoteResponse
	w := doJSON(t, router, http.MethodGet, "/api/notes/42", auth, nil, &note)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", note.Title)
	assert.Equal(t, "Note does not exist", note.Content)
	assert.Equal(t, "0x0", note.Timestamp)
}

func TestGetNote_HexAndDecimalIDs(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	for i := 0; i < 11; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/notes", auth,
			models.NoteRequest{Title: fmt.Sprintf("note %d", i), Content: "c"}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var viaHex, viaDecimal models.NoteResponse
	w := doJSON(t, router, http.MethodGet, "/api/notes/0xa", auth, nil, &viaHex)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/notes/10", auth, nil, &viaDecimal)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "note 10", viaHex.Title)
	assert.Equal(t, viaHex, viaDecimal)
}

func TestGetNote_InvalidID(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	w := doJSON(t, router, http.MethodGet, "/api/notes/banana", auth, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountsDoNotSeeEachOther(t *testing.T) {
	router := newTestRouter(t)
	other := common.HexToAddress("0x2222222222222222222222222222222222222222")

	w := doJSON(t, router, http.MethodPost, "/api/notes", bearerFor(t, testCaller),
		models.NoteRequest{Title: "mine", Content: "secret"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var note models.NoteResponse
	w = doJSON(t, router, http.MethodGet, "/api/notes/0", bearerFor(t, other), nil, &note)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Note does not exist", note.Content)
}

func TestRegisterUser(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	var resp models.AddressResponse
	w := doJSON(t, router, http.MethodPost, "/api/user/register", auth,
		models.RegisterRequest{Key: []byte("my encryption key")}, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testCaller.Hex(), resp.Address)
}

func TestUpdateEncryptionKey(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	w := doJSON(t, router, http.MethodPut, "/api/user/key", auth,
		models.KeyRequest{Key: []byte("rotated key")}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEncryptDecrypt_ThroughGateway(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	var encrypted models.EncryptResponse
	w := doJSON(t, router, http.MethodPost, "/api/crypto/encrypt", auth,
		models.EncryptRequest{Content: "привет"}, &encrypted)
	require.Equal(t, http.StatusOK, w.Code)
	require.GreaterOrEqual(t, len(encrypted.Data), 20)

	var decrypted models.DecryptResponse
	w = doJSON(t, router, http.MethodPost, "/api/crypto/decrypt", auth,
		models.DecryptRequest{Data: encrypted.Data}, &decrypted)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "привет", decrypted.Content)
}

func TestDecrypt_RefusalIsSentinelWith200(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	var decrypted models.DecryptResponse
	w := doJSON(t, router, http.MethodPost, "/api/crypto/decrypt", auth,
		models.DecryptRequest{Data: []byte{1, 2, 3}}, &decrypted)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Error: Invalid data format", decrypted.Content)
}

func TestContractAddress(t *testing.T) {
	router := newTestRouter(t)
	auth := bearerFor(t, testCaller)

	var resp models.AddressResponse
	w := doJSON(t, router, http.MethodGet, "/api/contract/address", auth, nil, &resp)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, common.HexToAddress(testSelf).Hex(), resp.Address)
}

func TestGetServerVersion(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testVersion, w.Body.String())
}

func TestWrongMethodReturns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/version/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTraceIDHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}
