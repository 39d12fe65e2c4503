// Package httpapi serves the operational dashboard and batch-sign demo
// HTTP surface, routed with github.com/gorilla/mux and logged through
// the shared btclog HTTP subsystem.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/frostlink/frost/internal/coordinator"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/logging"
	"github.com/frostlink/frost/internal/signer"
	"github.com/frostlink/frost/internal/transport"
)

// Server wires a Coordinator, a fixed set of in-process Signers, and a
// transport link into the HTTP API. It holds no session state of its own —
// every handler defers to the Coordinator or a Signer directly.
type Server struct {
	coord   *coordinator.Coordinator
	signers map[frost.SignerID]*signer.Signer
	link    *transport.SimulatedLink
	router  *mux.Router
}

// New builds a Server and registers all routes. signers must contain every
// participant the coordinator may address by id.
func New(coord *coordinator.Coordinator, signers map[frost.SignerID]*signer.Signer, link *transport.SimulatedLink) *Server {
	s := &Server{coord: coord, signers: signers, link: link, router: mux.NewRouter()}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler, so a Server can be passed directly to
// http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(loggingMiddleware)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/pubkey", s.handlePubkey).Methods(http.MethodGet)
	s.router.HandleFunc("/signer/{id}/round1", s.handleRound1).Methods(http.MethodPost)
	s.router.HandleFunc("/signer/{id}/round2", s.handleRound2).Methods(http.MethodPost)
	s.router.HandleFunc("/coordinator/aggregate", s.handleAggregate).Methods(http.MethodPost)
	s.router.HandleFunc("/sign", s.handleSign).Methods(http.MethodPost)
	s.router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.HTTPLog.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// writeError maps err to the HTTP status its sentinel kind implies and
// writes a structured ErrorResponse body: every error crosses the API
// surface as a structured response, never a bare status code.
func writeError(w http.ResponseWriter, err error) {
	status := frosterr.HTTPStatus(err)
	writeJSON(w, status, errorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "decoding request body: %v", err)
	}
	return nil
}

func signerFromPath(r *http.Request) (frost.SignerID, error) {
	return parseSignerID(mux.Vars(r)["id"])
}

func requestContext(r *http.Request) context.Context {
	return r.Context()
}
