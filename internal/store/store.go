// Package store persists demo CLI artifacts to disk as JSON: key shares,
// the group's public key package, commitments, signing packages,
// signature shares, and the final signature. It is the CLI subcommands'
// only way of handing state from one invocation to the next, since
// cmd/frost's keygen/round1/round2/aggregate subcommands each exit after
// doing one thing.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/frostlink/frost/internal/api"
	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
	"github.com/frostlink/frost/internal/logging"
)

// Store reads and writes the demo CLI's on-disk artifacts under a single
// directory, following a fixed file naming convention (share_{id}.json,
// pubkey.json, commitment_{id}.json, ...).
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created if absent.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "creating store directory: %v", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func writeJSON(path string, mode os.FileMode, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "encoding %s: %v", path, err)
	}
	if err := os.WriteFile(path, b, mode); err != nil {
		return frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "writing %s: %v", path, err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return frosterr.Wrapf(frosterr.ErrSessionNotFound, "reading %s: %v", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "decoding %s: %v", path, err)
	}
	return nil
}

// WriteShare persists a single signer's key share as share_{id}.json.
func (s *Store) WriteShare(share *frost.KeyShare) error {
	hexKey, err := api.EncodeKeyShare(share)
	if err != nil {
		return err
	}
	file := api.ShareFile{
		SignerID:      uint32(share.ID),
		KeyPackageHex: hexKey,
		Metadata: api.ShareMetadata{
			CreatedAt:  time.Now().UTC(),
			Threshold:  share.Threshold,
			MaxSigners: share.MaxSigners,
		},
	}
	path := s.path(fmt.Sprintf("share_%d.json", share.ID))
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o600, file)
}

// ReadShare loads a signer's key share previously written by WriteShare.
func (s *Store) ReadShare(id frost.SignerID) (*frost.KeyShare, error) {
	var file api.ShareFile
	if err := readJSON(s.path(fmt.Sprintf("share_%d.json", id)), &file); err != nil {
		return nil, err
	}
	return api.DecodeKeyShare(file.KeyPackageHex)
}

// WritePubkey persists the group's public key package as pubkey.json.
func (s *Store) WritePubkey(pub *frost.PublicKeyPackage) error {
	pkgHex, err := api.EncodePublicKeyPackage(pub)
	if err != nil {
		return err
	}
	file := api.PubkeyFile{
		PubkeyPackageHex: pkgHex,
		GroupPubkeyHex:   api.EncodeGroupPublicKey(pub),
		Metadata: api.ShareMetadata{
			CreatedAt:  time.Now().UTC(),
			Threshold:  pub.Threshold,
			MaxSigners: pub.MaxSigners,
		},
	}
	path := s.path("pubkey.json")
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o644, file)
}

// ReadPubkey loads the group's public key package previously written by
// WritePubkey.
func (s *Store) ReadPubkey() (*frost.PublicKeyPackage, error) {
	var file api.PubkeyFile
	if err := readJSON(s.path("pubkey.json"), &file); err != nil {
		return nil, err
	}
	return api.DecodePublicKeyPackage(file.PubkeyPackageHex)
}

// WriteCommitment persists one signer's round-one commitment as
// commitment_{id}.json.
func (s *Store) WriteCommitment(sessionID string, message []byte, commitment *frost.SigningCommitment) error {
	wire, err := api.EncodeCommitment(commitment)
	if err != nil {
		return err
	}
	file := api.CommitmentFile{
		SessionID:     sessionID,
		SignerID:      wire.SignerID,
		CommitmentHex: wire.Commitment,
		MessageHash:   api.MessageHash(message),
	}
	path := s.path(fmt.Sprintf("commitment_%d.json", commitment.SignerID))
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o644, file)
}

// ReadCommitment loads a commitment previously written by WriteCommitment.
func (s *Store) ReadCommitment(id frost.SignerID) (*frost.SigningCommitment, error) {
	var file api.CommitmentFile
	if err := readJSON(s.path(fmt.Sprintf("commitment_%d.json", id)), &file); err != nil {
		return nil, err
	}
	return api.DecodeCommitment(api.CommitmentWire{SignerID: file.SignerID, Commitment: file.CommitmentHex})
}

// WriteSigningPackage persists the canonical round-two input as
// signing_package.json.
func (s *Store) WriteSigningPackage(sessionID string, pkg *frost.SigningPackage) error {
	wire, err := api.EncodeSigningPackage(pkg)
	if err != nil {
		return err
	}
	file := api.SigningPackageFile{
		SessionID:  sessionID,
		MessageHex: wire.Message,
	}
	for _, c := range wire.Commitments {
		file.Commitments = append(file.Commitments, api.SigningPackageCommitmentEntry{
			SignerID:      c.SignerID,
			CommitmentHex: c.Commitment,
		})
		file.SignerIDs = append(file.SignerIDs, c.SignerID)
	}
	path := s.path("signing_package.json")
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o644, file)
}

// ReadSigningPackage loads the signing package previously written by
// WriteSigningPackage.
func (s *Store) ReadSigningPackage() (string, *frost.SigningPackage, error) {
	var file api.SigningPackageFile
	if err := readJSON(s.path("signing_package.json"), &file); err != nil {
		return "", nil, err
	}
	wire := api.SigningPackageWire{Message: file.MessageHex}
	for _, c := range file.Commitments {
		wire.Commitments = append(wire.Commitments, api.CommitmentWire{
			SignerID:   c.SignerID,
			Commitment: c.CommitmentHex,
		})
	}
	pkg, err := api.DecodeSigningPackage(wire)
	if err != nil {
		return "", nil, err
	}
	return file.SessionID, pkg, nil
}

// WriteSignatureShare persists one signer's round-two share as
// sig_share_{id}.json.
func (s *Store) WriteSignatureShare(sessionID string, share *frost.SignatureShare) error {
	wire, err := api.EncodeSignatureShare(share)
	if err != nil {
		return err
	}
	file := api.SigShareFile{
		SessionID:         sessionID,
		SignerID:          wire.SignerID,
		SignatureShareHex: wire.SignatureShare,
	}
	path := s.path(fmt.Sprintf("sig_share_%d.json", share.SignerID))
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o644, file)
}

// ReadSignatureShare loads a signature share previously written by
// WriteSignatureShare.
func (s *Store) ReadSignatureShare(id frost.SignerID) (*frost.SignatureShare, error) {
	var file api.SigShareFile
	if err := readJSON(s.path(fmt.Sprintf("sig_share_%d.json", id)), &file); err != nil {
		return nil, err
	}
	return api.DecodeSignatureShare(api.SignatureShareWire{SignerID: file.SignerID, SignatureShare: file.SignatureShareHex})
}

// WriteSignature persists the final aggregated signature as signature.json.
func (s *Store) WriteSignature(sessionID string, message []byte, signerIDs []uint32, sig *frost.GroupSignature) error {
	hexSig, err := api.EncodeSignature(sig)
	if err != nil {
		return err
	}
	file := api.SignatureFile{
		SessionID:    sessionID,
		SignatureHex: hexSig,
		MessageHex:   api.HexEncode(message),
		SignerIDs:    signerIDs,
	}
	path := s.path("signature.json")
	logging.StoreLog.Debugf("writing %s", path)
	return writeJSON(path, 0o644, file)
}

// ReadSignature loads the final signature previously written by
// WriteSignature.
func (s *Store) ReadSignature() (*api.SignatureFile, *frost.GroupSignature, error) {
	var file api.SignatureFile
	if err := readJSON(s.path("signature.json"), &file); err != nil {
		return nil, nil, err
	}
	sig, err := api.DecodeSignature(file.SignatureHex)
	if err != nil {
		return nil, nil, err
	}
	return &file, sig, nil
}
