package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	commitmentdto "focuslock/internal/modules/commitment/dto"
	profiledto "focuslock/internal/modules/profile/dto"
	registrydto "focuslock/internal/modules/registry/dto"
	sessiondto "focuslock/internal/modules/session/dto"
	apperrors "focuslock/internal/platform/errors"

	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

type registryResponse struct {
	Authority         string    `json:"authority"`
	AssetID           string    `json:"asset_id"`
	RewardRatePercent uint64    `json:"reward_rate_percent"`
	TotalParticipants uint64    `json:"total_participants"`
	TotalValueStaked  uint64    `json:"total_value_staked"`
	CreatedAt         time.Time `json:"created_at"`
}

type profileResponse struct {
	Owner                  string    `json:"owner"`
	TotalSessionsCompleted uint64    `json:"total_sessions_completed"`
	TotalRewardsEarned     uint64    `json:"total_rewards_earned"`
	CurrentStreak          uint32    `json:"current_streak"`
	BestStreak             uint32    `json:"best_streak"`
	LastActiveDay          time.Time `json:"last_active_day"`
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type commitmentResponse struct {
	Owner                  string    `json:"owner"`
	CommitmentID           uint64    `json:"commitment_id"`
	AmountStaked           uint64    `json:"amount_staked"`
	SessionsPerDay         uint8     `json:"sessions_per_day"`
	TotalDays              uint8     `json:"total_days"`
	StartTimestamp         time.Time `json:"start_timestamp"`
	EndTimestamp           time.Time `json:"end_timestamp"`
	IsActive               bool      `json:"is_active"`
	DaysCompleted          uint32    `json:"days_completed"`
	SessionsCompletedToday uint32    `json:"sessions_completed_today"`
	TotalSessionsCompleted uint64    `json:"total_sessions_completed"`
	VaultAddress           string    `json:"vault_address"`
}

type claimResponse struct {
	Owner        string `json:"owner"`
	CommitmentID uint64 `json:"commitment_id"`
	Required     uint64 `json:"required"`
	Completed    uint64 `json:"completed"`
	Tier         string `json:"tier"`
	Payout       uint64 `json:"payout"`
	Retained     uint64 `json:"retained"`
}

type sessionResponse struct {
	Owner            string    `json:"owner"`
	CommitmentID     uint64    `json:"commitment_id"`
	SessionID        uint64    `json:"session_id"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at,omitempty"`
	Completed        bool      `json:"completed"`
	VerificationSlot uint64    `json:"verification_slot"`
}

type completeSessionResponse struct {
	Owner                  string    `json:"owner"`
	CommitmentID           uint64    `json:"commitment_id"`
	SessionID              uint64    `json:"session_id"`
	StartedAt              time.Time `json:"started_at"`
	EndedAt                time.Time `json:"ended_at"`
	SessionsCompletedToday uint32    `json:"sessions_completed_today"`
	DaysCompleted          uint32    `json:"days_completed"`
	TotalSessionsCompleted uint64    `json:"total_sessions_completed"`
	CurrentStreak          uint32    `json:"current_streak"`
	BestStreak             uint32    `json:"best_streak"`
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) initRegistry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Authority         string `json:"authority"`
		AssetID           string `json:"asset_id"`
		RewardRatePercent uint64 `json:"reward_rate_percent"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.registry.Init(r.Context(), registrydto.InitInput{
		Authority:         req.Authority,
		AssetID:           req.AssetID,
		RewardRatePercent: req.RewardRatePercent,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRegistryResponse(out))
}

func (a *API) getRegistry(w http.ResponseWriter, r *http.Request) {
	out, err := a.registry.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRegistryResponse(out))
}

func (a *API) createProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner string `json:"owner"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.profile.Create(r.Context(), profiledto.CreateInput{Owner: req.Owner})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(out))
}

func (a *API) getProfile(w http.ResponseWriter, r *http.Request) {
	out, err := a.profile.Get(r.Context(), mux.Vars(r)["owner"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(out))
}

func (a *API) getBalance(w http.ResponseWriter, r *http.Request) {
	out, err := a.treasury.Balance(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: out.Address, Balance: out.Balance})
}

func (a *API) fundAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.treasury.Fund(r.Context(), mux.Vars(r)["address"], req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: out.Address, Balance: out.Balance})
}

func (a *API) openCommitment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner          string `json:"owner"`
		CommitmentID   uint64 `json:"commitment_id"`
		Amount         uint64 `json:"amount"`
		SessionsPerDay uint8  `json:"sessions_per_day"`
		TotalDays      uint8  `json:"total_days"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.commitment.Open(r.Context(), commitmentdto.OpenInput{
		Owner:          req.Owner,
		CommitmentID:   req.CommitmentID,
		Amount:         req.Amount,
		SessionsPerDay: req.SessionsPerDay,
		TotalDays:      req.TotalDays,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommitmentResponse(out))
}

func (a *API) listCommitments(w http.ResponseWriter, r *http.Request) {
	outs, err := a.commitment.List(r.Context(), mux.Vars(r)["owner"])
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]commitmentResponse, 0, len(outs))
	for _, out := range outs {
		resp = append(resp, toCommitmentResponse(out))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) getCommitment(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := commitmentVars(w, r)
	if !ok {
		return
	}
	out, err := a.commitment.Get(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommitmentResponse(out))
}

func (a *API) claimCommitment(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := commitmentVars(w, r)
	if !ok {
		return
	}
	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.commitment.Claim(r.Context(), commitmentdto.ClaimInput{
		Owner:        owner,
		CommitmentID: id,
		Caller:       req.Caller,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claimResponse{
		Owner:        out.Owner,
		CommitmentID: out.CommitmentID,
		Required:     out.Required,
		Completed:    out.Completed,
		Tier:         out.Tier,
		Payout:       out.Payout,
		Retained:     out.Retained,
	})
}

func (a *API) startSession(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := commitmentVars(w, r)
	if !ok {
		return
	}
	var req struct {
		SessionID uint64 `json:"session_id"`
		Caller    string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.session.Start(r.Context(), sessiondto.StartInput{
		Owner:        owner,
		CommitmentID: id,
		SessionID:    req.SessionID,
		Caller:       req.Caller,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		Owner:            out.Owner,
		CommitmentID:     out.CommitmentID,
		SessionID:        out.SessionID,
		StartedAt:        out.StartedAt,
		VerificationSlot: out.VerificationSlot,
	})
}

func (a *API) listSessions(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := commitmentVars(w, r)
	if !ok {
		return
	}
	outs, err := a.session.List(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]sessionResponse, 0, len(outs))
	for _, out := range outs {
		resp = append(resp, sessionResponse{
			Owner:            out.Owner,
			CommitmentID:     out.CommitmentID,
			SessionID:        out.SessionID,
			StartedAt:        out.StartedAt,
			EndedAt:          out.EndedAt,
			Completed:        out.Completed,
			VerificationSlot: out.VerificationSlot,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) completeSession(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := commitmentVars(w, r)
	if !ok {
		return
	}
	sessionID, err := strconv.ParseUint(mux.Vars(r)["session"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid session id"})
		return
	}
	var req struct {
		Caller string `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := a.session.Complete(r.Context(), sessiondto.CompleteInput{
		Owner:        owner,
		CommitmentID: id,
		SessionID:    sessionID,
		Caller:       req.Caller,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completeSessionResponse{
		Owner:                  out.Owner,
		CommitmentID:           out.CommitmentID,
		SessionID:              out.SessionID,
		StartedAt:              out.StartedAt,
		EndedAt:                out.EndedAt,
		SessionsCompletedToday: out.SessionsCompletedToday,
		DaysCompleted:          out.DaysCompleted,
		TotalSessionsCompleted: out.TotalSessionsCompleted,
		CurrentStreak:          out.CurrentStreak,
		BestStreak:             out.BestStreak,
	})
}

func (a *API) listAttestors(w http.ResponseWriter, r *http.Request) {
	if a.attest == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "attestors are not configured"})
		return
	}
	outs, err := a.attest.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outs)
}

func (a *API) checkAttestors(w http.ResponseWriter, r *http.Request) {
	if a.attest == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "attestors are not configured"})
		return
	}
	outs, err := a.attest.Check(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outs)
}

func commitmentVars(w http.ResponseWriter, r *http.Request) (string, uint64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid commitment id"})
		return "", 0, false
	}
	return vars["owner"], id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps the protocol's sentinel errors onto HTTP statuses. Gate
// violations are conflicts with current state rather than bad requests.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrRegistryExists),
		errors.Is(err, apperrors.ErrDuplicateProfile),
		errors.Is(err, apperrors.ErrDuplicateCommitment),
		errors.Is(err, apperrors.ErrDuplicateSession):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidAuthority):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, apperrors.ErrInvalidSessionCount),
		errors.Is(err, apperrors.ErrInvalidDayCount):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrCommitmentInactive),
		errors.Is(err, apperrors.ErrCommitmentEnded),
		errors.Is(err, apperrors.ErrCommitmentNotEnded),
		errors.Is(err, apperrors.ErrDailySessionsCompleted),
		errors.Is(err, apperrors.ErrSessionTooSoon),
		errors.Is(err, apperrors.ErrSessionNotComplete),
		errors.Is(err, apperrors.ErrSessionAlreadyCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func toRegistryResponse(out registrydto.RegistryOutput) registryResponse {
	return registryResponse{
		Authority:         out.Authority,
		AssetID:           out.AssetID,
		RewardRatePercent: out.RewardRatePercent,
		TotalParticipants: out.TotalParticipants,
		TotalValueStaked:  out.TotalValueStaked,
		CreatedAt:         out.CreatedAt,
	}
}

func toProfileResponse(out profiledto.ProfileOutput) profileResponse {
	return profileResponse{
		Owner:                  out.Owner,
		TotalSessionsCompleted: out.TotalSessionsCompleted,
		TotalRewardsEarned:     out.TotalRewardsEarned,
		CurrentStreak:          out.CurrentStreak,
		BestStreak:             out.BestStreak,
		LastActiveDay:          out.LastActiveDay,
	}
}

func toCommitmentResponse(out commitmentdto.CommitmentOutput) commitmentResponse {
	return commitmentResponse{
		Owner:                  out.Owner,
		CommitmentID:           out.CommitmentID,
		AmountStaked:           out.AmountStaked,
		SessionsPerDay:         out.SessionsPerDay,
		TotalDays:              out.TotalDays,
		StartTimestamp:         out.StartTimestamp,
		EndTimestamp:           out.EndTimestamp,
		IsActive:               out.IsActive,
		DaysCompleted:          out.DaysCompleted,
		SessionsCompletedToday: out.SessionsCompletedToday,
		TotalSessionsCompleted: out.TotalSessionsCompleted,
		VaultAddress:           out.VaultAddress,
	}
}
