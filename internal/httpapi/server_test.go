package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/coordinator"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/signer"
	"github.com/frostlink/frost/internal/transport"
)

func newTestServer(t *testing.T) (*Server, map[frost.SignerID]*signer.Signer) {
	t.Helper()
	shares, pub, err := frost.KeyGen(3, 2)
	require.NoError(t, err)

	signers := make(map[frost.SignerID]*signer.Signer, len(shares))
	for _, share := range shares {
		signers[share.ID] = signer.New(share)
	}

	coord := coordinator.New(pub)
	t.Cleanup(coord.Close)

	link := transport.NewSimulatedLink(transport.DefaultConfig())
	return New(coord, signers, link), signers
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndPubkey(t *testing.T) {
	srv, signers := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, len(signers), health.SignersCount)

	rec = doJSON(t, srv, http.MethodGet, "/pubkey", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pk api.PubkeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pk))
	require.NotEmpty(t, pk.GroupPublicKey)
}

func TestFullRoundTripOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/sign", api.SignRequest{
		SignerIDs: []uint32{1, 2},
		Message:   api.HexEncode([]byte("hello over http")),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var signResp api.SignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signResp))
	require.NotEmpty(t, signResp.Signature)
}

func TestSignUnknownSignerReturns404(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/sign", api.SignRequest{
		SignerIDs: []uint32{99},
		Message:   api.HexEncode([]byte("m")),
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.Equal(t, "session_not_found", errResp.ErrorCode)
}

func TestStatusEndpointReflectsTransportStats(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status api.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, 0, status.TotalMessages)
}
