// GET /v1/stream: a websocket that runs one compile+execute per
// incoming message and pushes each pipeline stage's duration to the
// client as it completes, rather than only the final result — the
// "live per-stage stats push during execution" row of §2's domain-
// stack table. Grounded on the teacher's handlers/websocket.go upgrade
// pattern (a permissive CheckOrigin, a sendJSON helper logging write
// failures rather than panicking).
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/meschsystems/jyro/pipeline"
	"github.com/meschsystems/jyro/value"
)

var streamUpgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

type streamRequest struct {
	Source string `json:"source"`
	Input  any    `json:"input,omitempty"`
}

type stageEventDTO struct {
	Type     string  `json:"type"`
	Stage    string  `json:"stage"`
	Millis   float64 `json:"millis"`
}

type resultEventDTO struct {
	Type     string          `json:"type"`
	Result   any             `json:"result,omitempty"`
	Error    *diagnosticDTO  `json:"error,omitempty"`
	Diagnostics []diagnosticDTO `json:"diagnostics,omitempty"`
}

// wsStats forwards each Record call to the open connection as a
// stageEventDTO, in the same goroutine handling the connection (one
// execution at a time per socket, so no synchronization is needed).
type wsStats struct {
	conn   *websocket.Conn
	logger *slog.Logger
}

func (w *wsStats) Record(stage pipeline.Stage, d time.Duration) {
	err := w.conn.WriteJSON(stageEventDTO{
		Type:   "stage",
		Stage:  string(stage),
		Millis: float64(d.Microseconds()) / 1000,
	})
	if err != nil {
		w.logger.Warn("stream write failed", "error", err, "stage", stage)
	}
}

func (s *Server) handleStream(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var req streamRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		s.runStreamedExecution(c.Request.Context(), conn, req)
	}
}

func (s *Server) runStreamedExecution(ctx context.Context, conn *websocket.Conn, req streamRequest) {
	driver := s.driver.WithStats(&wsStats{conn: conn, logger: s.logger})

	program, diags, err := driver.Compile(ctx, req.Source)
	if err != nil {
		_ = conn.WriteJSON(resultEventDTO{Type: "result", Error: &diagnosticDTO{Message: err.Error()}})
		return
	}
	if diags.HasErrors() {
		_ = conn.WriteJSON(resultEventDTO{Type: "result", Diagnostics: toDiagnosticDTOs(diags)})
		return
	}

	input := value.Value(value.NewObject())
	if req.Input != nil {
		raw, marshalErr := json.Marshal(req.Input)
		if marshalErr != nil {
			_ = conn.WriteJSON(resultEventDTO{Type: "result", Error: &diagnosticDTO{Message: marshalErr.Error()}})
			return
		}
		input, err = value.FromJSON(raw)
		if err != nil {
			_ = conn.WriteJSON(resultEventDTO{Type: "result", Error: &diagnosticDTO{Message: err.Error()}})
			return
		}
	}

	rc := driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := driver.Execute(ctx, program, input, rc)
	if rerr != nil {
		dto := errorDiagnosticDTO(rerr)
		_ = conn.WriteJSON(resultEventDTO{Type: "result", Error: &dto})
		return
	}

	resultJSON, jsonErr := value.ToJSON(outcome.Result)
	event := resultEventDTO{Type: "result"}
	if jsonErr == nil {
		var generic any
		if err := json.Unmarshal(resultJSON, &generic); err == nil {
			event.Result = generic
		}
	}
	_ = conn.WriteJSON(event)
}
