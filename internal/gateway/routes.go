package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/pipeline"
)

// llmCallTimeout bounds RPCs that call a model. OCR over many pages and the
// follow-up generation are the slowest.
const llmCallTimeout = 5 * time.Minute

// registerHTTPRoutes sets up HTTP endpoints on the mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /api/document", s.handleDocumentUpload)
	mux.HandleFunc("GET /api/pages/{n}", s.handlePageImage)
	mux.HandleFunc("/", handleNotFound)
}

// registerRPCHandlers registers the WebSocket RPC methods.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)

	s.Handle("session.get", s.rpcSessionGet)
	s.Handle("session.reset", s.rpcSessionReset)
	s.Handle("credential.set", s.rpcCredentialSet)
	s.Handle("view.set", s.rpcViewSet)
	s.Handle("models.list", s.rpcModelsList)

	s.Handle("document.setText", s.rpcDocumentSetText)
	s.Handle("pages.select", s.rpcPagesSelect)
	s.Handle("ocr.configure", s.rpcOCRConfigure)
	s.Handle("ocr.start", s.rpcOCRStart)

	s.Handle("agents.list", s.rpcAgentsList)
	s.Handle("agents.update", s.rpcAgentsUpdate)
	s.Handle("agent.execute", s.rpcAgentExecute)
	s.Handle("outputs.clear", s.rpcOutputsClear)

	s.Handle("compare.run", s.rpcCompareRun)

	s.Handle("notes.set", s.rpcNotesSet)
	s.Handle("notes.followup", s.rpcNotesFollowUp)
	s.Handle("notes.preview", s.rpcNotesPreview)

	s.Handle("metrics.list", s.rpcMetricsList)
	s.Handle("metrics.summary", s.rpcMetricsSummary)
}

// llmContext returns the context for an RPC that calls a model. It is not
// tied to the connection: a client that disconnects mid-run still gets the
// result broadcast to the others.
func llmContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), llmCallTimeout)
}

func (s *Server) rpcHealth(rc *RequestContext) {
	var uptime int64
	if !s.startedAt.IsZero() {
		uptime = time.Since(s.startedAt).Milliseconds()
	}
	rc.Respond(HealthResponse{
		Status:     "ok",
		Version:    s.version,
		Clients:    s.clients.Count(),
		Processing: s.exec.Processing(),
		UptimeMs:   uptime,
	})
}

func (s *Server) rpcSessionGet(rc *RequestContext) {
	rc.Respond(s.exec.Snapshot())
}

func (s *Server) rpcSessionReset(rc *RequestContext) {
	if err := s.exec.Reset(context.Background()); err != nil {
		rc.Fail(err, CodeInternal)
		return
	}
	rc.Respond(s.exec.Snapshot())
}

func (s *Server) rpcCredentialSet(rc *RequestContext) {
	var params struct {
		APIKey string `json:"apiKey"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	s.exec.SetCredential(params.APIKey)
	rc.Respond(map[string]any{"hasCredential": s.exec.HasCredential()})
}

func (s *Server) rpcViewSet(rc *RequestContext) {
	var params struct {
		View string `json:"view"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	v, err := s.exec.SetView(params.View)
	if err != nil {
		rc.Fail(err, CodeInvalidParams)
		return
	}
	rc.Respond(map[string]any{"view": v})
}

func (s *Server) rpcModelsList(rc *RequestContext) {
	rc.Respond(map[string]any{
		"models":   s.exec.Models(),
		"compareA": pipeline.DefaultCompareModelA,
		"compareB": pipeline.DefaultCompareModelB,
	})
}

func (s *Server) rpcDocumentSetText(rc *RequestContext) {
	var params struct {
		Text string `json:"text"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	s.exec.SetDocumentText(params.Text)
	rc.Respond(map[string]any{"length": len([]rune(params.Text))})
}

func (s *Server) rpcPagesSelect(rc *RequestContext) {
	var params struct {
		Expr string `json:"expr"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	indices := s.exec.SelectPages(params.Expr)
	pages := make([]int, len(indices))
	for i, idx := range indices {
		pages[i] = idx + 1
	}
	rc.Respond(map[string]any{"indices": indices, "pages": pages})
}

func (s *Server) rpcOCRConfigure(rc *RequestContext) {
	var params pipeline.OCRSettings
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	pageRange, model := s.exec.ConfigureOCR(params)
	rc.Respond(map[string]any{"pageRange": pageRange, "model": model})
}

func (s *Server) rpcOCRStart(rc *RequestContext) {
	ctx, cancel := llmContext()
	defer cancel()

	text, err := s.exec.StartOCR(ctx)
	if err != nil {
		rc.Fail(err, CodeProviderError)
		return
	}
	rc.Respond(map[string]any{"text": text, "view": s.exec.Snapshot().View})
}

func (s *Server) rpcAgentsList(rc *RequestContext) {
	rc.Respond(map[string]any{
		"agents": s.exec.Agents(),
		"stages": s.exec.Stages(),
	})
}

func (s *Server) rpcAgentsUpdate(rc *RequestContext) {
	var params struct {
		Position int                `json:"position"`
		Agent    domain.AgentConfig `json:"agent"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	a, err := s.exec.UpdateAgent(params.Position, params.Agent)
	if err != nil {
		rc.Fail(err, CodeInvalidParams)
		return
	}
	rc.Respond(map[string]any{"agent": a})
}

func (s *Server) rpcAgentExecute(rc *RequestContext) {
	var params struct {
		Position int `json:"position"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}

	ctx, cancel := llmContext()
	defer cancel()

	out, err := s.exec.ExecuteAgent(ctx, params.Position)
	if err != nil {
		rc.Fail(err, CodeProviderError)
		return
	}
	rc.Respond(map[string]any{"position": params.Position, "output": out})
}

func (s *Server) rpcOutputsClear(rc *RequestContext) {
	if err := s.exec.ClearOutputs(context.Background()); err != nil {
		rc.Fail(err, CodeInternal)
		return
	}
	rc.Respond(map[string]any{"stages": s.exec.Stages()})
}

func (s *Server) rpcCompareRun(rc *RequestContext) {
	var params struct {
		Position int    `json:"position"`
		ModelA   string `json:"modelA"`
		ModelB   string `json:"modelB"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}

	ctx, cancel := llmContext()
	defer cancel()

	result, err := s.exec.RunComparison(ctx, params.Position, params.ModelA, params.ModelB)
	if err != nil {
		// A side that finished before the failure is still worth showing.
		if result != nil {
			rc.FailWith(err, CodeProviderError, result)
			return
		}
		rc.Fail(err, CodeProviderError)
		return
	}
	rc.Respond(result)
}

func (s *Server) rpcNotesSet(rc *RequestContext) {
	var params struct {
		Text string `json:"text"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	s.exec.SetNotes(context.Background(), params.Text)
	rc.Respond(map[string]any{"notes": s.exec.Notes()})
}

func (s *Server) rpcNotesFollowUp(rc *RequestContext) {
	ctx, cancel := llmContext()
	defer cancel()

	updated, err := s.exec.GenerateFollowUp(ctx)
	if err != nil {
		rc.Fail(err, CodeProviderError)
		return
	}
	rc.Respond(map[string]any{"notes": updated})
}

// rpcNotesPreview renders the given text, or the session notes when text is omitted.
func (s *Server) rpcNotesPreview(rc *RequestContext) {
	var params struct {
		Text *string `json:"text"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError(CodeInvalidParams, "invalid params: "+err.Error())
		return
	}
	text := s.exec.Notes()
	if params.Text != nil {
		text = *params.Text
	}
	rc.Respond(map[string]any{"html": s.notes.Preview(text)})
}

func (s *Server) rpcMetricsList(rc *RequestContext) {
	metrics, err := s.exec.Metrics(context.Background())
	if err != nil {
		rc.Fail(err, CodeInternal)
		return
	}
	if metrics == nil {
		metrics = []domain.RunMetric{}
	}
	rc.Respond(map[string]any{"metrics": metrics})
}

func (s *Server) rpcMetricsSummary(rc *RequestContext) {
	summary, err := s.exec.Summary(context.Background())
	if err != nil {
		rc.Fail(err, CodeInternal)
		return
	}
	rc.Respond(summary)
}
