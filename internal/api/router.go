package api

import (
	"log"
	"net/http"

	attestin "focuslock/internal/modules/attest/port/in"
	commitmentin "focuslock/internal/modules/commitment/port/in"
	profilein "focuslock/internal/modules/profile/port/in"
	registryin "focuslock/internal/modules/registry/port/in"
	sessionin "focuslock/internal/modules/session/port/in"
	treasuryin "focuslock/internal/modules/treasury/port/in"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// API exposes the protocol operations over HTTP. Attest may be nil when no
// attestor host is configured; its routes then report 404.
type API struct {
	registry   registryin.Usecase
	profile    profilein.Usecase
	treasury   treasuryin.Usecase
	commitment commitmentin.Usecase
	session    sessionin.Usecase
	attest     attestin.Usecase
	logger     *log.Logger
}

func New(
	registry registryin.Usecase,
	profile profilein.Usecase,
	treasury treasuryin.Usecase,
	commitment commitmentin.Usecase,
	session sessionin.Usecase,
	attest attestin.Usecase,
	logger *log.Logger,
) *API {
	return &API{
		registry:   registry,
		profile:    profile,
		treasury:   treasury,
		commitment: commitment,
		session:    session,
		attest:     attest,
		logger:     logger,
	}
}

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.requestLog)

	r.HandleFunc("/health", a.health).Methods("GET")

	r.HandleFunc("/registry", a.initRegistry).Methods("POST")
	r.HandleFunc("/registry", a.getRegistry).Methods("GET")

	r.HandleFunc("/profiles", a.createProfile).Methods("POST")
	r.HandleFunc("/profiles/{owner}", a.getProfile).Methods("GET")

	r.HandleFunc("/accounts/{address}", a.getBalance).Methods("GET")
	r.HandleFunc("/accounts/{address}/fund", a.fundAccount).Methods("POST")

	r.HandleFunc("/commitments", a.openCommitment).Methods("POST")
	r.HandleFunc("/commitments/{owner}", a.listCommitments).Methods("GET")
	r.HandleFunc("/commitments/{owner}/{id}", a.getCommitment).Methods("GET")
	r.HandleFunc("/commitments/{owner}/{id}/claim", a.claimCommitment).Methods("POST")

	r.HandleFunc("/commitments/{owner}/{id}/sessions", a.startSession).Methods("POST")
	r.HandleFunc("/commitments/{owner}/{id}/sessions", a.listSessions).Methods("GET")
	r.HandleFunc("/commitments/{owner}/{id}/sessions/{session}/complete", a.completeSession).Methods("POST")

	r.HandleFunc("/attestors", a.listAttestors).Methods("GET")
	r.HandleFunc("/attestors/check", a.checkAttestors).Methods("GET")

	return r
}

// requestLog tags every request with an id so concurrent request logs can
// be told apart.
func (a *API) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		if a.logger != nil {
			a.logger.Printf("%s %s %s", requestID, r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
