package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autocorrect/internal/controller"
	"autocorrect/internal/corrector"
	"autocorrect/internal/service"
)

func newTestRouter(t *testing.T, maxUpload int64) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	speller := service.NewSpeller(corrector.New(), nil, logger)
	return SetupRouter(controller.NewSpellerController(speller, maxUpload, logger), logger)
}

func upload(t *testing.T, router http.Handler, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "corpus.txt")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func correct(t *testing.T, router http.Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/correct", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 1<<20)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}

func TestCorrect_BeforeTraining(t *testing.T) {
	router := newTestRouter(t, 1<<20)
	rec := correct(t, router, `{"word":"teh"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Model not trained yet", decode(t, rec)["error"])
}

func TestUploadThenCorrect(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	rec := upload(t, router, []byte("The quick brown fox. The the!"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 4, body["vocab_size"])

	rec = correct(t, router, `{"word":" Teh "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestions":[{"word":"the","prob":"0.50000","tier":"edit1"}]}`, rec.Body.String())

	rec = correct(t, router, `{"word":"fox","k":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestions":[{"word":"fox","prob":"1.00000","tier":"exact"}]}`, rec.Body.String())

	rec = correct(t, router, `{"word":"zzzzz"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestions":[{"word":"zzzzz","prob":"0.00000","tier":"none"}]}`, rec.Body.String())
}

func TestCorrect_EmptyWord(t *testing.T) {
	router := newTestRouter(t, 1<<20)
	require.Equal(t, http.StatusOK, upload(t, router, []byte("some words")).Code)

	rec := correct(t, router, `{"word":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Empty word", decode(t, rec)["error"])
}

func TestCorrect_InvalidPayload(t *testing.T) {
	router := newTestRouter(t, 1<<20)
	rec := correct(t, router, `{"word":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", decode(t, rec)["error"])
}

func TestUpload_Rejections(t *testing.T) {
	router := newTestRouter(t, 16)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec)["error"])

	rec = upload(t, router, []byte(" ... !!! "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File contains no words", decode(t, rec)["error"])

	rec = upload(t, router, []byte("a\xffb"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, router, bytes.Repeat([]byte("word "), 10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStats(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["trained"])

	require.Equal(t, http.StatusOK, upload(t, router, []byte("a b a")).Code)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	body := decode(t, rec)
	assert.Equal(t, true, body["trained"])
	assert.EqualValues(t, 2, body["vocab_size"])
	assert.EqualValues(t, 3, body["total_count"])
}

func TestRecovery(t *testing.T) {
	router := newTestRouter(t, 1<<20)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["error"])
}
