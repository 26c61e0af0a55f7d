package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meschsystems/jyro/pipeline"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	driver, err := pipeline.New(pipeline.Options{})
	require.NoError(t, err)

	srv := NewServer(driver, nil, 0, 0)
	return srv.NewRouter()
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCompileEndpointHappyPath(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "POST", "/v1/compile", compileRequest{Source: "return data.name"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp compileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Artifact)
	require.Empty(t, resp.Diagnostics)
}

func TestCompileEndpointReportsSyntaxDiagnostic(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "POST", "/v1/compile", compileRequest{Source: "return data."})
	require.Equal(t, http.StatusOK, w.Code)

	var resp compileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Artifact)
	require.NotEmpty(t, resp.Diagnostics)
}

func TestExecuteEndpointWithSource(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "POST", "/v1/execute", executeRequest{
		Source: `return Upper(data.name)`,
		Input:  json.RawMessage(`{"name":"jyro"}`),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp executeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Equal(t, "JYRO", resp.Result)
}

func TestExecuteEndpointRequiresExactlyOneSource(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "POST", "/v1/execute", executeRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteEndpointReportsRuntimeFailure(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(router, "POST", "/v1/execute", executeRequest{
		Source: `fail "nope"`,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp executeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
}

func TestExecuteEndpointRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	driver, err := pipeline.New(pipeline.Options{})
	require.NoError(t, err)

	srv := NewServer(driver, nil, 1, 1)
	router := srv.NewRouter()

	req := executeRequest{Source: `return data`}
	first := doJSON(router, "POST", "/v1/execute", req)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, "POST", "/v1/execute", req)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}
