package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/people-backend/internal/app"
	"github.com/yungbote/people-backend/internal/data/db"
	"github.com/yungbote/people-backend/internal/data/repos/testutil"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

const (
	testUser     = "admin"
	testPassword = "s3cret-pass"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := app.Config{
		LogMode:       "test",
		PublicBaseURL: "http://people.test",
		DB: db.Config{
			Driver:     db.DriverSQLite,
			SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		},
		JWTSecretKey:     "test-secret",
		JWTIssuer:        "people-backend",
		JWTAudience:      "people-api",
		AccessTokenTTL:   time.Hour,
		AuthUsername:     testUser,
		AuthPassword:     testPassword,
		AuthRole:         "admin",
		Storage:          storage.Config{Mode: storage.ModeLocal, Root: t.TempDir()},
		LoginMaxAttempts: 5,
		LoginWindow:      time.Minute,
		SeedDemoData:     true,
		ShutdownTimeout:  time.Second,
	}
	a, err := app.NewWithConfig(context.Background(), testutil.Logger(t), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func do(t *testing.T, a *app.App, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func uploadRequest(t *testing.T, target, token, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, a *app.App) string {
	t.Helper()
	w := do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testUser,
		"password": testPassword,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func mariaRequest() map[string]any {
	return map[string]any{
		"full_name":  "Maria Silva",
		"cpf":        testutil.CpfMaria,
		"birth_date": "1990-03-15",
		"gender":     "female",
		"email":      "maria@example.com",
		"phone":      "+55 11 91234-5678",
		"address": map[string]string{
			"street":   "Rua A",
			"number":   "10",
			"district": "Centro",
			"city":     "São Paulo",
			"state":    "SP",
			"zip":      "01000-000",
			"country":  "Brasil",
		},
	}
}

func TestHTTP_IndividualLifecycle(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a)

	w := do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/individuals", token, mariaRequest()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/"+id, token, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)
	assert.Equal(t, testutil.CpfMaria, got["cpf"])
	assert.Equal(t, "individual", got["kind"])
	photo, present := got["photo_path"]
	assert.True(t, present)
	assert.Nil(t, photo)

	w = do(t, a, uploadRequest(t, "/api/v1/individuals/"+id+"/photo", token, "me.png", pngHeader))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	assert.Contains(t, location, "/files/individuals/")

	w = do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/"+id, token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	got = decode(t, w)
	path, _ := got["photo_path"].(string)
	require.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(path, "individuals/"))
	assert.Contains(t, got["photo_url"], "/files/")

	// The stored file is served back.
	w = do(t, a, httptest.NewRequest(http.MethodGet, "/files/"+path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pngHeader, w.Body.Bytes())

	w = do(t, a, uploadRequest(t, "/api/v1/individuals/"+id+"/photo", token, "anim.gif", pngHeader))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, string(storage.CodeExtensionNotAllowed), errBody["code"])

	w = do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/individuals", token, mariaRequest()))
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "cpf", decode(t, w)["error"].(map[string]any)["field"])
}

func TestHTTP_ValidationFailureNamesField(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a)

	req := mariaRequest()
	req["cpf"] = "11144477736"
	w := do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/individuals", token, req))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "validation_failed", errBody["code"])
	assert.Equal(t, "cpf", errBody["field"])
}

func TestHTTP_SearchIncludesSeededPeople(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Start(context.Background()))
	// Seeding twice is a no-op.
	require.NoError(t, a.Start(context.Background()))
	token := login(t, a)

	w := do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/search?name=silva", token, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var found []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Maria Silva", found[0]["display_name"])

	w = do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/search?name=acme", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "legal_entity", found[0]["kind"])
}

func TestHTTP_UnknownPersonIsNotFound(t *testing.T) {
	a := newTestApp(t)
	token := login(t, a)

	w := do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/"+uuid.NewString(), token, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, a, uploadRequest(t, "/api/v1/legal-entities/"+uuid.NewString()+"/logo", token, "logo.png", pngHeader))
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestHTTP_AuthRequired(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/individuals", "", mariaRequest()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, a, jsonRequest(t, http.MethodGet, "/api/v1/people/search?name=a", "not-a-token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, a, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testUser,
		"password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, a, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
