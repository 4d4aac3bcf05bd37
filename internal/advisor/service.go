// Package advisor provides the HTTP boundary of the strategy engine: one
// endpoint per decision class, plus session lifecycle and the decision
// ledger. The boundary moves data only — a GameState snapshot comes in,
// a decision goes out, and translating decisions into UI actions belongs
// to the automation collaborator.
package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tycoon/strategy-engine/internal/board"
	"github.com/tycoon/strategy-engine/internal/metrics"
	"github.com/tycoon/strategy-engine/internal/model"
	"github.com/tycoon/strategy-engine/internal/store"
	"github.com/tycoon/strategy-engine/internal/strategy"
)

// relativeEPTScale is the rounding applied to the fractional EPT metric
// before it is persisted as a decimal.
const relativeEPTScale = 6

// Service handles decision requests. Decision computation itself is pure
// and stateless; the service adds the ledger, metrics, and broadcasting
// around it.
type Service struct {
	store store.Store
	board *board.Board
	wsHub *WSHub // optional WebSocket hub for real-time broadcasts
}

// NewService creates a new advisor service.
// Pass nil for hub if WebSocket broadcasting is not needed.
func NewService(st store.Store, b *board.Board, hub *WSHub) *Service {
	return &Service{
		store: st,
		board: b,
		wsHub: hub,
	}
}

// --- Request/Response types ---

// CreateSessionRequest is the JSON body for session creation.
type CreateSessionRequest struct {
	PlayerID string        `json:"player_id"`
	Params   *model.Params `json:"params,omitempty"` // nil → defaults
}

// PurchaseRequest asks whether to buy the landed-on property.
type PurchaseRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     model.GameState `json:"state"`
	Position  int             `json:"position"`
	Price     int             `json:"price"`
}

// PurchaseResponse reports the purchase decision.
type PurchaseResponse struct {
	Buy bool `json:"buy"`
}

// AuctionRequest asks for a bid against the current highest bid.
type AuctionRequest struct {
	SessionID  string          `json:"session_id,omitempty"`
	State      model.GameState `json:"state"`
	Position   int             `json:"position"`
	CurrentBid int             `json:"current_bid"`
}

// AuctionResponse carries the bid; 0 means pass.
type AuctionResponse struct {
	Bid int `json:"bid"`
}

// TradeRequest asks whether to accept an incoming offer.
type TradeRequest struct {
	SessionID string           `json:"session_id,omitempty"`
	State     model.GameState  `json:"state"`
	Offer     model.TradeOffer `json:"offer"`
}

// TradeResponse reports the acceptance decision.
type TradeResponse struct {
	Accept bool `json:"accept"`
}

// ProposalsRequest asks for trade offers worth proposing.
type ProposalsRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     model.GameState `json:"state"`
}

// ProposalsResponse lists generated offers, possibly empty.
type ProposalsResponse struct {
	Offers []model.TradeOffer `json:"offers"`
}

// BuildRequest asks which positions to develop.
type BuildRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     model.GameState `json:"state"`
}

// BuildResponse lists buildable positions in priority order.
type BuildResponse struct {
	Positions []int `json:"positions"`
}

// JailRequest asks whether to pay the jail fee.
type JailRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     model.GameState `json:"state"`
}

// JailResponse reports the jail decision.
type JailResponse struct {
	Pay bool `json:"pay"`
}

// MortgageRequest asks which properties to mortgage to raise cash.
type MortgageRequest struct {
	SessionID    string          `json:"session_id,omitempty"`
	State        model.GameState `json:"state"`
	AmountNeeded int             `json:"amount_needed"`
}

// MortgageResponse lists positions to mortgage, in order.
type MortgageResponse struct {
	Positions []int `json:"positions"`
}

// UnmortgageRequest asks whether to pay off one mortgage.
type UnmortgageRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	State     model.GameState `json:"state"`
	Position  int             `json:"position"`
}

// UnmortgageResponse reports the unmortgage decision.
type UnmortgageResponse struct {
	Unmortgage bool `json:"unmortgage"`
}

// --- Session handlers ---

// CreateSession handles POST /api/v1/sessions
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" {
		writeError(w, "player_id is required", http.StatusBadRequest)
		return
	}

	params := model.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}
	if err := params.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := &model.Session{
		ID:        uuid.New().String(),
		PlayerID:  req.PlayerID,
		Params:    params,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateSession(r.Context(), sess); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	metrics.ActiveSessions.Inc()

	slog.Info("session created", "id", sess.ID, "player", sess.PlayerID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sess)
}

// GetSession handles GET /api/v1/sessions/{sessionID}
func (s *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// ListSessions handles GET /api/v1/sessions
func (s *Service) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context())
	if err != nil {
		writeError(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []model.Session{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// CloseSession handles POST /api/v1/sessions/{sessionID}/close
func (s *Service) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	if sess.Status == "closed" {
		writeError(w, "session already closed", http.StatusConflict)
		return
	}

	if err := s.store.UpdateSessionStatus(r.Context(), sessionID, "closed"); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ActiveSessions.Dec()

	slog.Info("session closed", "id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /api/v1/sessions/{sessionID}/history
// Returns the session's decision ledger in order.
func (s *Service) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	decisions, err := s.store.GetDecisionsBySession(r.Context(), sessionID)
	if err != nil {
		writeError(w, "failed to get decision history", http.StatusInternalServerError)
		return
	}
	if decisions == nil {
		decisions = []model.DecisionRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decisions)
}

// --- Decision handlers ---

// DecidePurchase handles POST /api/v1/decisions/purchase
func (s *Service) DecidePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	buy := eng.ShouldBuy(req.State, req.Position, req.Price)
	metrics.DecisionLatency.WithLabelValues(model.KindPurchase).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindPurchase)
	rec.Position = req.Position
	rec.Outcome = acceptReject(buy)
	s.record(r.Context(), rec)

	writeJSON(w, PurchaseResponse{Buy: buy})
}

// DecideAuction handles POST /api/v1/decisions/auction
func (s *Service) DecideAuction(w http.ResponseWriter, r *http.Request) {
	var req AuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	bid := eng.AuctionBid(req.State, req.Position, req.CurrentBid)
	metrics.DecisionLatency.WithLabelValues(model.KindAuction).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindAuction)
	rec.Position = req.Position
	rec.Bid = bid
	rec.Outcome = model.OutcomeBid
	if bid == 0 {
		rec.Outcome = model.OutcomePass
	}
	s.record(r.Context(), rec)

	writeJSON(w, AuctionResponse{Bid: bid})
}

// DecideTrade handles POST /api/v1/decisions/trade
func (s *Service) DecideTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	accept := eng.EvaluateTrade(req.State, req.Offer)
	metrics.DecisionLatency.WithLabelValues(model.KindTradeEval).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindTradeEval)
	rec.Outcome = acceptReject(accept)
	s.record(r.Context(), rec)

	writeJSON(w, TradeResponse{Accept: accept})
}

// ProposeTrades handles POST /api/v1/decisions/trade-proposals
func (s *Service) ProposeTrades(w http.ResponseWriter, r *http.Request) {
	var req ProposalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	offers := eng.ProposeTrades(req.State)
	metrics.DecisionLatency.WithLabelValues(model.KindTradeProposals).Observe(time.Since(start).Seconds())
	metrics.TradeProposals.Observe(float64(len(offers)))

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindTradeProposals)
	rec.Outcome = model.OutcomePlan
	s.record(r.Context(), rec)

	if offers == nil {
		offers = []model.TradeOffer{}
	}
	writeJSON(w, ProposalsResponse{Offers: offers})
}

// DecideBuild handles POST /api/v1/decisions/build
func (s *Service) DecideBuild(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	positions := eng.BuildablePositions(req.State)
	metrics.DecisionLatency.WithLabelValues(model.KindBuild).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindBuild)
	rec.Outcome = model.OutcomePlan
	rec.Positions = positions
	s.record(r.Context(), rec)

	if positions == nil {
		positions = []int{}
	}
	writeJSON(w, BuildResponse{Positions: positions})
}

// DecideJail handles POST /api/v1/decisions/jail
func (s *Service) DecideJail(w http.ResponseWriter, r *http.Request) {
	var req JailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	pay := eng.ShouldPayJailFee(req.State)
	metrics.DecisionLatency.WithLabelValues(model.KindJail).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindJail)
	rec.Outcome = acceptReject(pay)
	s.record(r.Context(), rec)

	writeJSON(w, JailResponse{Pay: pay})
}

// DecideMortgage handles POST /api/v1/decisions/mortgage
func (s *Service) DecideMortgage(w http.ResponseWriter, r *http.Request) {
	var req MortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	positions := eng.MortgagePlan(req.State, req.AmountNeeded)
	metrics.DecisionLatency.WithLabelValues(model.KindMortgage).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindMortgage)
	rec.Outcome = model.OutcomePlan
	rec.Positions = positions
	s.record(r.Context(), rec)

	if positions == nil {
		positions = []int{}
	}
	writeJSON(w, MortgageResponse{Positions: positions})
}

// DecideUnmortgage handles POST /api/v1/decisions/unmortgage
func (s *Service) DecideUnmortgage(w http.ResponseWriter, r *http.Request) {
	var req UnmortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := s.engineFor(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	start := time.Now()
	unmortgage := eng.ShouldUnmortgage(req.State, req.Position)
	metrics.DecisionLatency.WithLabelValues(model.KindUnmortgage).Observe(time.Since(start).Seconds())

	rec := s.newRecord(req.SessionID, eng, req.State, model.KindUnmortgage)
	rec.Position = req.Position
	rec.Outcome = acceptReject(unmortgage)
	s.record(r.Context(), rec)

	writeJSON(w, UnmortgageResponse{Unmortgage: unmortgage})
}

// --- Helpers ---

// engineErr distinguishes not-found from closed sessions for HTTP mapping.
type engineErr struct {
	msg    string
	status int
}

func (e *engineErr) Error() string { return e.msg }

// engineFor builds a decision engine for the request: the session's params
// when a session is given, calibrated defaults otherwise.
func (s *Service) engineFor(ctx context.Context, sessionID string) (*strategy.Engine, error) {
	if sessionID == "" {
		return strategy.NewEngine(s.board, model.DefaultParams()), nil
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, &engineErr{msg: "session not found: " + sessionID, status: http.StatusNotFound}
	}
	if sess.Status != "active" {
		return nil, &engineErr{msg: "session is not active", status: http.StatusConflict}
	}
	return strategy.NewEngine(s.board, sess.Params), nil
}

// newRecord starts a ledger record with the valuation metrics captured at
// decision time.
func (s *Service) newRecord(sessionID string, eng *strategy.Engine, state model.GameState, kind string) *model.DecisionRecord {
	vals := eng.Valuation()
	return &model.DecisionRecord{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Kind:        kind,
		NetWorth:    decimal.NewFromInt(int64(vals.NetWorth(state.Self))),
		RelativeEPT: decimal.NewFromFloat(vals.RelativeEPT(state)).Round(relativeEPTScale),
		CreatedAt:   time.Now().UTC(),
	}
}

// record persists the ledger entry (sessions only), bumps counters, and
// broadcasts the decision.
func (s *Service) record(ctx context.Context, rec *model.DecisionRecord) {
	metrics.DecisionsTotal.WithLabelValues(rec.Kind, rec.Outcome).Inc()

	if rec.SessionID != "" {
		if err := s.store.InsertDecision(ctx, rec); err != nil {
			slog.Error("failed to record decision",
				"session", rec.SessionID, "kind", rec.Kind, "err", err)
		}
	}

	slog.Info("decision",
		"session", rec.SessionID,
		"kind", rec.Kind,
		"outcome", rec.Outcome,
		"position", rec.Position,
		"bid", rec.Bid,
		"net_worth", rec.NetWorth.String(),
		"relative_ept", rec.RelativeEPT.String(),
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:      "decision",
			SessionID: rec.SessionID,
			Kind:      rec.Kind,
			Outcome:   rec.Outcome,
			Position:  rec.Position,
			Bid:       rec.Bid,
			Positions: rec.Positions,
		})
	}
}

func acceptReject(accepted bool) string {
	if accepted {
		return model.OutcomeAccept
	}
	return model.OutcomeReject
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeEngineError maps engine resolution failures onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var ee *engineErr
	if e, ok := err.(*engineErr); ok {
		ee = e
	}
	if ee == nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeError(w, ee.msg, ee.status)
}
