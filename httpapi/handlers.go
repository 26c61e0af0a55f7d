package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meschsystems/jyro/artifact"
	"github.com/meschsystems/jyro/compile"
	"github.com/meschsystems/jyro/pipeline"
	"github.com/meschsystems/jyro/value"
)

// compileRequest is the body of POST /v1/compile: a source script to
// run through Parse/Validate/Link and encode as a precompiled artifact.
type compileRequest struct {
	Source string `json:"source" binding:"required"`
}

// compileResponse carries the compile-time diagnostics (possibly
// error-severity, in which case Artifact is absent) plus the base64-
// encoded artifact bytes on success.
type compileResponse struct {
	Artifact    string          `json:"artifact,omitempty"`
	Diagnostics []diagnosticDTO `json:"diagnostics"`
}

func (s *Server) handleCompile(c *gin.Context) {
	var req compileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if s.cache != nil {
		key := artifact.Key(req.Source)
		if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			c.JSON(http.StatusOK, compileResponse{
				Artifact:    base64.StdEncoding.EncodeToString(cached),
				Diagnostics: []diagnosticDTO{},
			})
			return
		}
	}

	data, diags, err := s.driver.CompileToArtifact(ctx, req.Source)
	if err != nil {
		s.logger.Error("compile failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.cache != nil && !diags.HasErrors() {
		if err := s.cache.Put(ctx, artifact.Key(req.Source), data); err != nil {
			s.logger.Warn("artifact cache write failed", "error", err)
		}
	}

	resp := compileResponse{Diagnostics: toDiagnosticDTOs(diags)}
	if !diags.HasErrors() {
		resp.Artifact = base64.StdEncoding.EncodeToString(data)
	}
	c.JSON(http.StatusOK, resp)
}

// executeRequest is the body of POST /v1/execute. Exactly one of
// Source or Artifact must be set: Source is compiled and linked fresh;
// Artifact (base64) is deserialized and re-linked against the driver's
// current host function table, per §9.
type executeRequest struct {
	Source   string          `json:"source,omitempty"`
	Artifact string          `json:"artifact,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
}

type executeResponse struct {
	Result               any             `json:"result,omitempty"`
	CompletionMessage    string          `json:"completionMessage,omitempty"`
	HasCompletionMessage bool            `json:"hasCompletionMessage"`
	Diagnostics          []diagnosticDTO `json:"diagnostics,omitempty"`
	Error                *diagnosticDTO  `json:"error,omitempty"`
}

// compileRequestProgram resolves req into a *compile.Program by either
// compiling Source fresh or decoding+re-linking Artifact, per §9.
func (s *Server) compileRequestProgram(ctx context.Context, req executeRequest) (*compile.Program, pipeline.Diagnostics, error) {
	if req.Source != "" {
		return s.driver.Compile(ctx, req.Source)
	}
	raw, err := base64.StdEncoding.DecodeString(req.Artifact)
	if err != nil {
		return nil, nil, err
	}
	return s.driver.CompileFromArtifact(ctx, raw)
}

func (s *Server) handleExecute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (req.Source == "") == (req.Artifact == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of source or artifact is required"})
		return
	}

	ctx := c.Request.Context()

	program, diags, err := s.compileRequestProgram(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if diags.HasErrors() {
		c.JSON(http.StatusUnprocessableEntity, executeResponse{Diagnostics: toDiagnosticDTOs(diags)})
		return
	}

	input := value.Value(value.NewObject())
	if len(req.Input) > 0 {
		input, err = value.FromJSON(req.Input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input JSON: " + err.Error()})
			return
		}
	}

	rc := s.driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := s.driver.Execute(ctx, program, input, rc)
	if rerr != nil {
		dto := errorDiagnosticDTO(rerr)
		c.JSON(http.StatusOK, executeResponse{Error: &dto})
		return
	}

	resultJSON, jsonErr := value.ToJSON(outcome.Result)
	resp := executeResponse{
		CompletionMessage:    outcome.CompletionMessage,
		HasCompletionMessage: outcome.HasCompletionMessage,
	}
	if jsonErr == nil {
		_ = json.Unmarshal(resultJSON, &resp.Result)
	}
	c.JSON(http.StatusOK, resp)
}
