package store

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/logging"
)

// UnsafeDemoNonceFileEnvVar is the environment variable that, set to "1",
// gates WriteUnsafeNonceFile alongside the CLI's --unsafe-demo-nonce-file
// flag. A production deployment should refuse to build this path at all;
// this module approximates that by refusing at first use unless
// explicitly gated.
const UnsafeDemoNonceFileEnvVar = "FROST_UNSAFE_DEMO_NONCE_FILE"

// WriteUnsafeNonceFile persists a signer's round-one nonces to
// nonce_{session}_{id}.json so a split round1/round2 CLI invocation across
// two separate process runs has somewhere to keep the secret nonce between
// them. This defeats the entire point of a nonce store that never lets a
// secret leave process memory, and exists only because the demo CLI has no
// other way to carry state between two independent process invocations.
//
// gate must be true — the caller is expected to have derived it from the
// --unsafe-demo-nonce-file flag or the FROST_UNSAFE_DEMO_NONCE_FILE=1
// environment variable — or this returns ErrUnsafeOperationDisabled
// without touching disk.
func (s *Store) WriteUnsafeNonceFile(gate bool, sessionID uuid.UUID, signerID frost.SignerID, nonces *frost.SigningNonces) error {
	if !gate {
		return frosterr.Wrapf(
			frosterr.ErrUnsafeOperationDisabled,
			"refusing to write nonce_%s_%d.json without --unsafe-demo-nonce-file or %s=1",
			sessionID, signerID, UnsafeDemoNonceFileEnvVar,
		)
	}

	b, err := nonces.MarshalBinary()
	if err != nil {
		return err
	}
	if len(b) != 64 {
		return frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "unexpected nonce encoding length %d", len(b))
	}

	file := api.NonceFile{
		Warning:    "DEMO ONLY: this file contains a raw signing nonce. Leaking it alongside two distinct signatures from the same signer allows recovery of that signer's secret key share. Never use this in production.",
		SessionID:  sessionID.String(),
		SignerID:   uint32(signerID),
		HidingHex:  api.HexEncode(b[:32]),
		BindingHex: api.HexEncode(b[32:]),
	}

	path := s.path(fmt.Sprintf("nonce_%s_%d.json", sessionID, signerID))
	logging.StoreLog.Warnf("writing unsafe demo nonce file %s", path)
	return writeJSON(path, 0o600, file)
}

// ReadUnsafeNonceFile loads nonces previously written by
// WriteUnsafeNonceFile. Reading is not gated: once the file exists on
// disk, refusing to read it back protects nothing.
func (s *Store) ReadUnsafeNonceFile(sessionID uuid.UUID, signerID frost.SignerID) (*frost.SigningNonces, error) {
	var file api.NonceFile
	path := s.path(fmt.Sprintf("nonce_%s_%d.json", sessionID, signerID))
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}

	hiding, err := api.HexDecode(file.HidingHex)
	if err != nil {
		return nil, err
	}
	binding, err := api.HexDecode(file.BindingHex)
	if err != nil {
		return nil, err
	}

	nonces := &frost.SigningNonces{}
	if err := nonces.UnmarshalBinary(append(hiding, binding...)); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "%v", err)
	}
	return nonces, nil
}

// RemoveUnsafeNonceFile deletes the nonce file after it has been consumed,
// so a leftover demo artifact cannot be reused across runs. Absence is not
// an error.
func (s *Store) RemoveUnsafeNonceFile(sessionID uuid.UUID, signerID frost.SignerID) error {
	path := s.path(fmt.Sprintf("nonce_%s_%d.json", sessionID, signerID))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "removing %s: %v", path, err)
	}
	return nil
}
