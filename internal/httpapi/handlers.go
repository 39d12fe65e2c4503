package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/coordinator"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/signer"
	"github.com/frostlink/frost/internal/transport"
)

func errorBody(err error) api.ErrorResponse {
	return api.ErrorResponse{
		ErrorCode: frosterr.Code(err),
		Message:   err.Error(),
	}
}

func parseSignerID(s string) (frost.SignerID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "invalid signer id %q: %v", s, err)
	}
	return frost.SignerID(n), nil
}

func parseSessionID(s string) (coordinator.SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return coordinator.SessionID{}, frosterr.Wrapf(frosterr.ErrSessionNotFound, "invalid session id %q: %v", s, err)
	}
	return id, nil
}

// handleHealth implements GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:         "ok",
		SignersCount:   len(s.signers),
		ActiveSessions: s.coord.ActiveSessions(),
	})
}

// handlePubkey implements GET /pubkey.
func (s *Server) handlePubkey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.PubkeyResponse{
		GroupPublicKey: api.EncodeGroupPublicKey(s.coord.PublicKeyPackage()),
	})
}

// handleRound1 implements POST /signer/{id}/round1.
func (s *Server) handleRound1(w http.ResponseWriter, r *http.Request) {
	id, err := signerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	signer, ok := s.signers[id]
	if !ok {
		writeError(w, frosterr.Wrapf(frosterr.ErrSessionNotFound, "unknown signer %d", id))
		return
	}

	var req api.Round1Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	commitment, err := signer.Commit(session)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.coord.AddCommitment(session, commitment); err != nil {
		writeError(w, err)
		return
	}

	wire, err := api.EncodeCommitment(commitment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Round1Response{
		SignerID:   wire.SignerID,
		SessionID:  req.SessionID,
		Commitment: wire.Commitment,
		Timestamp:  time.Now().Unix(),
	})
}

// handleRound2 implements POST /signer/{id}/round2.
func (s *Server) handleRound2(w http.ResponseWriter, r *http.Request) {
	id, err := signerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	signer, ok := s.signers[id]
	if !ok {
		writeError(w, frosterr.Wrapf(frosterr.ErrSessionNotFound, "unknown signer %d", id))
		return
	}

	var req api.Round2Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	pkg, err := api.DecodeSigningPackage(req.SigningPackage)
	if err != nil {
		writeError(w, err)
		return
	}

	share, err := signer.Sign(session, pkg)
	if err != nil {
		writeError(w, err)
		return
	}

	wire, err := api.EncodeSignatureShare(share)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Round2Response{
		SignerID:       wire.SignerID,
		SessionID:      req.SessionID,
		SignatureShare: wire.SignatureShare,
		Timestamp:      time.Now().Unix(),
	})
}

// handleAggregate implements POST /coordinator/aggregate.
func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req api.AggregateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg, err := s.coord.SigningPackage(session)
	if err != nil {
		writeError(w, err)
		return
	}

	shares := make([]*frost.SignatureShare, 0, len(req.SignatureShares))
	for _, wire := range req.SignatureShares {
		share, err := api.DecodeSignatureShare(wire)
		if err != nil {
			writeError(w, err)
			return
		}
		shares = append(shares, share)
	}

	sig, err := s.coord.Aggregate(pkg, shares)
	if err != nil {
		writeError(w, err)
		return
	}

	verified := s.coord.Verify(pkg.Message, sig)
	s.coord.Remove(session)

	hexSig, err := api.EncodeSignature(sig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.AggregateResponse{
		SessionID: req.SessionID,
		Signature: hexSig,
		Verified:  verified,
	})
}

// handleSign implements POST /sign, the high-level one-shot endpoint that
// drives the whole protocol through Coordinator.Orchestrate in one call.
func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	var req api.SignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	message, err := api.HexDecode(req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	participants := make(map[frost.SignerID]*signer.Signer, len(req.SignerIDs))
	for _, rawID := range req.SignerIDs {
		id := frost.SignerID(rawID)
		sgnr, ok := s.signers[id]
		if !ok {
			writeError(w, frosterr.Wrapf(frosterr.ErrSessionNotFound, "unknown signer %d", id))
			return
		}
		participants[id] = sgnr
	}

	session, sig, err := s.coord.Orchestrate(requestContext(r), participants, message)
	if err != nil {
		writeError(w, err)
		return
	}

	hexSig, err := api.EncodeSignature(sig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SignResponse{
		SessionID: session.String(),
		Signature: hexSig,
	})
}

// handleStatus implements GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.link.Stats()

	byType := make(map[string]int, len(stats.ByTypeCounts))
	for k, v := range stats.ByTypeCounts {
		byType[string(k)] = v
	}

	events := make([]string, 0, len(stats.RecentEvents))
	for _, ev := range stats.RecentEvents {
		events = append(events, describeEvent(ev))
	}

	writeJSON(w, http.StatusOK, api.StatusResponse{
		CurrentPhase:  string(stats.CurrentPhase),
		TotalMessages: stats.TotalMessages,
		TotalBytes:    stats.TotalBytes,
		Progress:      stats.Progress,
		RSSI:          stats.RSSI,
		RecentEvents:  events,
		ByTypeCounts:  byType,
		TotalRetries:  stats.TotalRetries,
		CLILog:        stats.CLILog,
	})
}

// describeEvent renders a transport event as a short human-readable line
// for the /status endpoint's recent_events field.
func describeEvent(ev transport.Event) string {
	switch e := ev.(type) {
	case transport.PacketLost:
		return fmt.Sprintf("PacketLost{fragment=%d, retry=%d}", e.FragmentID, e.RetryCount)
	case transport.TransmitFragment:
		return fmt.Sprintf("TransmitFragment{fragment=%d/%d, bytes=%d}", e.FragmentID, e.Total, e.Bytes)
	case transport.TransmitComplete:
		return fmt.Sprintf("TransmitComplete{time_ms=%d, retries=%d}", e.TotalTimeMs, e.Retries)
	default:
		return "unknown event"
	}
}
