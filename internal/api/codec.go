package api

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/frostlink/frost/internal/frost"
	"github.com/frostlink/frost/internal/frosterr"
)

// HexEncode is a thin alias kept for call-site readability; every wire
// field in this package is lowercase hex.
func HexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

// HexDecode decodes a hex field, wrapping malformed input as an
// InvalidSigningPackage-class error so HTTP handlers can map it to 400
// without each call site repeating the wrap.
func HexDecode(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "invalid hex: %v", err)
	}
	return b, nil
}

// MessageHash returns the hex-encoded SHA-256 of message, used for the
// commitment file format's message_hash field — a fixed-size fingerprint
// instead of embedding the (possibly large) message itself.
func MessageHash(message []byte) string {
	sum := sha256.Sum256(message)
	return HexEncode(sum[:])
}

// EncodeCommitment converts a signing commitment to its wire form.
func EncodeCommitment(c *frost.SigningCommitment) (CommitmentWire, error) {
	b, err := c.MarshalBinary()
	if err != nil {
		return CommitmentWire{}, err
	}
	return CommitmentWire{SignerID: uint32(c.SignerID), Commitment: HexEncode(b)}, nil
}

// DecodeCommitment parses a wire commitment back into a frost.SigningCommitment.
func DecodeCommitment(w CommitmentWire) (*frost.SigningCommitment, error) {
	b, err := HexDecode(w.Commitment)
	if err != nil {
		return nil, err
	}
	c := &frost.SigningCommitment{}
	if err := c.UnmarshalBinary(b); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrInvalidCommitment, "%v", err)
	}
	return c, nil
}

// EncodeSigningPackage converts a signing package to its wire form.
func EncodeSigningPackage(pkg *frost.SigningPackage) (SigningPackageWire, error) {
	wire := SigningPackageWire{Message: HexEncode(pkg.Message)}
	for _, c := range pkg.Commitments {
		cw, err := EncodeCommitment(c)
		if err != nil {
			return SigningPackageWire{}, err
		}
		wire.Commitments = append(wire.Commitments, cw)
	}
	return wire, nil
}

// DecodeSigningPackage parses a wire signing package back into a
// frost.SigningPackage, without re-deriving it from a coordinator's
// session — used when a signer receives a package directly over HTTP/CLI
// rather than through an in-process Coordinator.
func DecodeSigningPackage(w SigningPackageWire) (*frost.SigningPackage, error) {
	message, err := HexDecode(w.Message)
	if err != nil {
		return nil, err
	}
	pkg := &frost.SigningPackage{Message: message}
	for _, cw := range w.Commitments {
		c, err := DecodeCommitment(cw)
		if err != nil {
			return nil, err
		}
		pkg.Commitments = append(pkg.Commitments, c)
	}
	return pkg, nil
}

// EncodeSignatureShare converts a signature share to its wire form.
func EncodeSignatureShare(s *frost.SignatureShare) (SignatureShareWire, error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return SignatureShareWire{}, err
	}
	return SignatureShareWire{SignerID: uint32(s.SignerID), SignatureShare: HexEncode(b)}, nil
}

// DecodeSignatureShare parses a wire signature share back into a
// frost.SignatureShare.
func DecodeSignatureShare(w SignatureShareWire) (*frost.SignatureShare, error) {
	b, err := HexDecode(w.SignatureShare)
	if err != nil {
		return nil, err
	}
	s := &frost.SignatureShare{}
	if err := s.UnmarshalBinary(b); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrInvalidShare, "%v", err)
	}
	return s, nil
}

// EncodeSignature converts a group signature to its hex wire form.
func EncodeSignature(sig *frost.GroupSignature) (string, error) {
	b, err := sig.MarshalBinary()
	if err != nil {
		return "", err
	}
	return HexEncode(b), nil
}

// DecodeSignature parses a hex-encoded group signature.
func DecodeSignature(s string) (*frost.GroupSignature, error) {
	b, err := HexDecode(s)
	if err != nil {
		return nil, err
	}
	sig := &frost.GroupSignature{}
	if err := sig.UnmarshalBinary(b); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrInvalidSigningPackage, "%v", err)
	}
	return sig, nil
}

// EncodeKeyShare converts a key share to its hex wire form, for the
// share_{id}.json file format.
func EncodeKeyShare(k *frost.KeyShare) (string, error) {
	b, err := k.MarshalBinary()
	if err != nil {
		return "", err
	}
	return HexEncode(b), nil
}

// DecodeKeyShare parses a hex-encoded key share.
func DecodeKeyShare(s string) (*frost.KeyShare, error) {
	b, err := HexDecode(s)
	if err != nil {
		return nil, err
	}
	k := &frost.KeyShare{}
	if err := k.UnmarshalBinary(b); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "%v", err)
	}
	return k, nil
}

// EncodePublicKeyPackage converts a public key package to its hex wire
// form, for pubkey.json's pubkey_package_hex field.
func EncodePublicKeyPackage(pub *frost.PublicKeyPackage) (string, error) {
	b, err := pub.MarshalBinary()
	if err != nil {
		return "", err
	}
	return HexEncode(b), nil
}

// DecodePublicKeyPackage parses a hex-encoded public key package.
func DecodePublicKeyPackage(s string) (*frost.PublicKeyPackage, error) {
	b, err := HexDecode(s)
	if err != nil {
		return nil, err
	}
	pub := &frost.PublicKeyPackage{}
	if err := pub.UnmarshalBinary(b); err != nil {
		return nil, frosterr.Wrapf(frosterr.ErrPrimitiveFailure, "%v", err)
	}
	return pub, nil
}

// EncodeGroupPublicKey returns the hex encoding of the group's verifying
// key alone, for /pubkey and GET responses that need only that one field.
func EncodeGroupPublicKey(pub *frost.PublicKeyPackage) string {
	return HexEncode(frost.SerializeGroupPublicKey(pub))
}
