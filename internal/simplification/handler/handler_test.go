package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/model"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/repository"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/service"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/middleware"
	"github.com/stretchr/testify/require"
)

type echoModel struct {
	err error
}

func (e echoModel) Simplify(ctx context.Context, text string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "simplified: " + text, nil
}
func (echoModel) Name() string   { return "t5-base" }
func (echoModel) Device() string { return model.CPU }

func newRouter(svc *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(middleware.RequestID())
	RegisterSimplifyRoutes(g, svc)
	return g
}

func post(g *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/simplify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	return w
}

func TestSimplify_OK(t *testing.T) {
	mem := repository.NewMemoryRecorder()
	g := newRouter(service.New(service.Options{Model: echoModel{}, Connector: repository.StaticConnector{Recorder: mem}}))

	w := post(g, `{"document_text": "The quick brown fox jumps over the lazy dog."}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["simplified_document"])
	require.Len(t, resp, 1)

	recs := mem.List()
	require.Len(t, recs, 1)
	require.Equal(t, "The quick brown fox jumps over the lazy dog.", recs[0].OriginalText)
	require.Equal(t, resp["simplified_document"], recs[0].SimplifiedText)
}

func TestSimplify_InvalidInput(t *testing.T) {
	mem := repository.NewMemoryRecorder()
	g := newRouter(service.New(service.Options{Model: echoModel{}, Connector: repository.StaticConnector{Recorder: mem}}))

	for _, body := range []string{
		`{}`,
		`{"document_text": ""}`,
		`{"document_text": null}`,
		`{"document_text": 42}`,
		`{"other": "x"}`,
		`not json`,
		``,
	} {
		w := post(g, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "No document text provided", resp["error"])
	}
	require.Empty(t, mem.List())
}

func TestSimplify_DatabaseUnreachable(t *testing.T) {
	// absent store: persistence is skipped and the HTTP contract is unchanged
	g := newRouter(service.New(service.Options{Model: echoModel{}, Connector: repository.StaticConnector{}}))

	w := post(g, `{"document_text": "hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"simplified_document": "simplified: hello"}`, w.Body.String())
}

func TestSimplify_ModelFailure(t *testing.T) {
	g := newRouter(service.New(service.Options{Model: echoModel{err: errors.New("backend down")}}))

	w := post(g, `{"document_text": "hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "error")
}

func TestSimplify_MethodNotRouted(t *testing.T) {
	g := newRouter(service.New(service.Options{Model: echoModel{}}))
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/simplify", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
