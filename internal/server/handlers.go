package server

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mas6446/ai-adjutant-system/internal/macro"
	"github.com/mas6446/ai-adjutant-system/internal/metrics"
	"github.com/mas6446/ai-adjutant-system/internal/model"
	"github.com/mas6446/ai-adjutant-system/internal/notifier"
	"github.com/mas6446/ai-adjutant-system/internal/recorder"
	"github.com/mas6446/ai-adjutant-system/internal/sizing"
)

// AnalyzeRequest is the body of POST /api/analyze. Capital and RiskPct
// override the configured sizing defaults when non-zero.
type AnalyzeRequest struct {
	Tickers   []string         `json:"tickers" validate:"required,min=1,max=50,dive,required"`
	Overrides *macro.Overrides `json:"overrides,omitempty"`
	Capital   float64          `json:"capital" validate:"gte=0"`
	RiskPct   float64          `json:"risk_pct" validate:"gte=0,lte=100"`
	Notify    bool             `json:"notify"`
}

// AnalyzeItem pairs one instrument's tactical result with its position plan.
type AnalyzeItem struct {
	Ticker string                `json:"ticker"`
	Result *model.TacticalResult `json:"result,omitempty"`
	Plan   *sizing.Plan          `json:"plan,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// AnalyzeResponse is the body returned by POST /api/analyze.
type AnalyzeResponse struct {
	MacroScore int           `json:"macro_score"`
	FetchedAt  time.Time     `json:"macro_fetched_at"`
	Items      []AnalyzeItem `json:"items"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMacroCurrent(w http.ResponseWriter, r *http.Request) {
	snap := s.cache.Current(r.Context(), nil)
	metrics.MacroScore.Set(float64(snap.Score))
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMacroRefresh(w http.ResponseWriter, r *http.Request) {
	var ov *macro.Overrides
	if r.Body != nil && r.ContentLength != 0 {
		ov = &macro.Overrides{}
		if err := json.NewDecoder(r.Body).Decode(ov); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	snap := s.cache.Refresh(r.Context(), ov)
	metrics.MacroRefreshTotal.Inc()
	metrics.MacroScore.Set(float64(snap.Score))
	s.log.Info().Int("score", snap.Score).Msg("macro snapshot refreshed")
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.AnalyzeTotal.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		metrics.AnalyzeTotal.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	snap := s.cache.Current(r.Context(), req.Overrides)
	items := s.engine.AnalyzeBatch(r.Context(), req.Tickers, snap.Score)
	metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())
	metrics.AnalyzeTotal.WithLabelValues("ok").Inc()

	capital, riskPct := s.sizing.Capital, s.sizing.RiskPct
	if req.Capital > 0 {
		capital = req.Capital
	}
	if req.RiskPct > 0 {
		riskPct = req.RiskPct
	}

	resp := AnalyzeResponse{MacroScore: snap.Score, FetchedAt: snap.FetchedAt}
	for _, item := range items {
		out := AnalyzeItem{Ticker: item.Ticker, Result: item.Result, Error: item.Err}
		if item.Result != nil {
			plan := sizing.Calculate(sizing.Params{
				Capital: capital,
				RiskPct: riskPct,
				Entry:   item.Result.Price,
				Stop:    item.Result.StopLoss,
			}, s.sizing.Policy)
			out.Plan = &plan
		}
		resp.Items = append(resp.Items, out)
	}

	if s.recorder != nil {
		run := &recorder.AnalysisRun{
			At:         time.Now(),
			MacroScore: snap.Score,
			Indicators: snap.Indicators,
			Items:      items,
		}
		if err := s.recorder.RecordRun(run); err != nil {
			s.log.Warn().Err(err).Msg("record analysis run")
		}
	}

	// Fire signals push even without an explicit notify request.
	if s.notifier != nil && s.notifier.Enabled() && (req.Notify || notifier.HasFireSignal(items)) {
		report := notifier.FormatBatchReport(snap.Score, items)
		if err := s.notifier.SendWithRetry(r.Context(), report, 3); err != nil {
			s.log.Warn().Err(err).Msg("send analysis report")
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}
