// Package api defines the JSON wire types shared by the HTTP dashboard
// surface and the demo CLI's file store. Every binary field is encoded
// as lowercase hex.
package api

import "time"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	SignersCount   int    `json:"signers_count"`
	ActiveSessions int    `json:"active_sessions"`
}

// PubkeyResponse is the body of GET /pubkey.
type PubkeyResponse struct {
	GroupPublicKey string `json:"group_public_key"`
}

// Round1Request is the body of POST /signer/{id}/round1.
type Round1Request struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Round1Response is the body returned by POST /signer/{id}/round1.
type Round1Response struct {
	SignerID   uint32 `json:"signer_id"`
	SessionID  string `json:"session_id"`
	Commitment string `json:"commitment"`
	Timestamp  int64  `json:"timestamp"`
}

// CommitmentWire is one signer's commitment as carried inside a
// SigningPackageWire.
type CommitmentWire struct {
	SignerID   uint32 `json:"signer_id"`
	Commitment string `json:"commitment"`
}

// SigningPackageWire is the wire form of a signing package.
type SigningPackageWire struct {
	Commitments []CommitmentWire `json:"commitments"`
	Message     string           `json:"message"`
}

// Round2Request is the body of POST /signer/{id}/round2.
type Round2Request struct {
	SessionID      string             `json:"session_id"`
	SigningPackage SigningPackageWire `json:"signing_package"`
}

// Round2Response is the body returned by POST /signer/{id}/round2.
type Round2Response struct {
	SignerID       uint32 `json:"signer_id"`
	SessionID      string `json:"session_id"`
	SignatureShare string `json:"signature_share"`
	Timestamp      int64  `json:"timestamp"`
}

// SignatureShareWire is one signer's share as carried inside an
// AggregateRequest.
type SignatureShareWire struct {
	SignerID       uint32 `json:"signer_id"`
	SignatureShare string `json:"signature_share"`
}

// AggregateRequest is the body of POST /coordinator/aggregate.
type AggregateRequest struct {
	SessionID       string               `json:"session_id"`
	SignatureShares []SignatureShareWire `json:"signature_shares"`
}

// AggregateResponse is the body returned by POST /coordinator/aggregate.
type AggregateResponse struct {
	SessionID string `json:"session_id"`
	Signature string `json:"signature"`
	Verified  bool   `json:"verified"`
}

// SignRequest is the body of POST /sign, the high-level one-shot endpoint.
type SignRequest struct {
	SignerIDs []uint32 `json:"signer_ids"`
	Message   string   `json:"message"`
}

// SignResponse is the body returned by POST /sign.
type SignResponse struct {
	SessionID string `json:"session_id"`
	Signature string `json:"signature"`
}

// StatusResponse is the body of GET /status: a transport observation
// snapshot.
type StatusResponse struct {
	CurrentPhase  string         `json:"current_phase"`
	TotalMessages int            `json:"total_messages"`
	TotalBytes    int            `json:"total_bytes"`
	Progress      float64        `json:"progress"`
	RSSI          int            `json:"rssi"`
	RecentEvents  []string       `json:"recent_events"`
	ByTypeCounts  map[string]int `json:"by_type_counts"`
	TotalRetries  int            `json:"total_retries"`
	CLILog        []string       `json:"cli_log"`
}

// ErrorResponse is the body of every non-2xx HTTP response.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

// ShareMetadata accompanies a persisted key share file.
type ShareMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	Threshold  int       `json:"threshold"`
	MaxSigners int       `json:"max_signers"`
}

// ShareFile is the on-disk format of share_{id}.json.
type ShareFile struct {
	SignerID      uint32        `json:"signer_id"`
	KeyPackageHex string        `json:"key_package_hex"`
	Metadata      ShareMetadata `json:"metadata"`
}

// PubkeyFile is the on-disk format of pubkey.json.
type PubkeyFile struct {
	PubkeyPackageHex string        `json:"pubkey_package_hex"`
	GroupPubkeyHex   string        `json:"group_pubkey_hex"`
	Metadata         ShareMetadata `json:"metadata"`
}

// CommitmentFile is the on-disk format of commitment_{id}.json.
type CommitmentFile struct {
	SessionID     string `json:"session_id"`
	SignerID      uint32 `json:"signer_id"`
	CommitmentHex string `json:"commitment_hex"`
	MessageHash   string `json:"message_hash"`
}

// SigningPackageCommitmentEntry is one entry of SigningPackageFile.Commitments.
type SigningPackageCommitmentEntry struct {
	SignerID      uint32 `json:"signer_id"`
	CommitmentHex string `json:"commitment_hex"`
}

// SigningPackageFile is the on-disk format of signing_package.json.
type SigningPackageFile struct {
	SessionID   string                          `json:"session_id"`
	Commitments []SigningPackageCommitmentEntry `json:"commitments"`
	MessageHex  string                          `json:"message_hex"`
	SignerIDs   []uint32                        `json:"signer_ids"`
}

// SigShareFile is the on-disk format of sig_share_{id}.json.
type SigShareFile struct {
	SessionID         string `json:"session_id"`
	SignerID          uint32 `json:"signer_id"`
	SignatureShareHex string `json:"signature_share_hex"`
}

// SignatureFile is the on-disk format of signature.json.
type SignatureFile struct {
	SessionID    string   `json:"session_id"`
	SignatureHex string   `json:"signature_hex"`
	MessageHex   string   `json:"message_hex"`
	SignerIDs    []uint32 `json:"signer_ids"`
}

// NonceFile is the on-disk format of the demo-only, unsafe
// nonce_{session}_{id}.json. It is only ever written when the caller has
// explicitly set the unsafe-demo-nonce-file gate; see internal/store.
type NonceFile struct {
	Warning    string `json:"warning"`
	SessionID  string `json:"session_id"`
	SignerID   uint32 `json:"signer_id"`
	HidingHex  string `json:"hiding_hex"`
	BindingHex string `json:"binding_hex"`
}
