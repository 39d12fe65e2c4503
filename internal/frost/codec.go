package frost

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"
)

// This file is the wire-format boundary for the opaque primitive types:
// the HTTP API and the CLI file store need to move KeyShare,
// PublicKeyPackage, SigningCommitment, and SignatureShare values as hex
// bytes without reaching into curve arithmetic themselves.
// Every encoding here is a concatenation of the serialized curve points
// and scalars that make up the type, fixed-width except for
// PublicKeyPackage, whose length grows with its entry count; none of it
// depends on the choice of ciphersuite beyond SerializedPointLength.

const scalarLength = 32

func scalarToBytes(s *big.Int) []byte {
	buf := make([]byte, scalarLength)
	s.FillBytes(buf)
	return buf
}

func serializePoint(p *Point) []byte {
	return ciphersuite.Curve().SerializePoint(p)
}

func deserializePoint(b []byte) (*Point, error) {
	p := ciphersuite.Curve().DeserializePoint(b)
	if p == nil {
		return nil, fmt.Errorf("frost: invalid curve point encoding")
	}
	return p, nil
}

func pointLength() int {
	return ciphersuite.Curve().SerializedPointLength()
}

// MarshalBinary encodes the key share as
// id(4) || secret(32) || group_public_key(P) || verification_share(P) || threshold(4) || max_signers(4).
func (k *KeyShare) MarshalBinary() ([]byte, error) {
	if k == nil || k.Secret == nil || k.GroupPublicKey == nil || k.VerificationShare == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete key share")
	}
	pl := pointLength()
	buf := make([]byte, 4+scalarLength+2*pl+4+4)
	offset := 0
	binary.BigEndian.PutUint32(buf[offset:], uint32(k.ID))
	offset += 4
	copy(buf[offset:], scalarToBytes(k.Secret))
	offset += scalarLength
	copy(buf[offset:], serializePoint(k.GroupPublicKey))
	offset += pl
	copy(buf[offset:], serializePoint(k.VerificationShare))
	offset += pl
	binary.BigEndian.PutUint32(buf[offset:], uint32(k.Threshold))
	offset += 4
	binary.BigEndian.PutUint32(buf[offset:], uint32(k.MaxSigners))
	return buf, nil
}

// UnmarshalBinary decodes a key share produced by MarshalBinary.
func (k *KeyShare) UnmarshalBinary(b []byte) error {
	pl := pointLength()
	want := 4 + scalarLength + 2*pl + 4 + 4
	if len(b) != want {
		return fmt.Errorf("frost: key share must be %d bytes, got %d", want, len(b))
	}
	offset := 0
	k.ID = SignerID(binary.BigEndian.Uint32(b[offset:]))
	offset += 4
	k.Secret = new(big.Int).SetBytes(b[offset : offset+scalarLength])
	offset += scalarLength
	groupKey, err := deserializePoint(b[offset : offset+pl])
	if err != nil {
		return err
	}
	k.GroupPublicKey = groupKey
	offset += pl
	verShare, err := deserializePoint(b[offset : offset+pl])
	if err != nil {
		return err
	}
	k.VerificationShare = verShare
	offset += pl
	k.Threshold = int(binary.BigEndian.Uint32(b[offset:]))
	offset += 4
	k.MaxSigners = int(binary.BigEndian.Uint32(b[offset:]))
	return nil
}

// MarshalBinary encodes the public key package as
// threshold(4) || max_signers(4) || group_public_key(P) || count(4) || count * (signer_id(4) || share(P)),
// with entries sorted by ascending SignerID for a deterministic encoding.
func (pub *PublicKeyPackage) MarshalBinary() ([]byte, error) {
	if pub == nil || pub.GroupPublicKey == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete public key package")
	}
	pl := pointLength()

	ids := make([]SignerID, 0, len(pub.VerificationShares))
	for id := range pub.VerificationShares {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	buf := make([]byte, 4+4+pl+4+len(ids)*(4+pl))
	offset := 0
	binary.BigEndian.PutUint32(buf[offset:], uint32(pub.Threshold))
	offset += 4
	binary.BigEndian.PutUint32(buf[offset:], uint32(pub.MaxSigners))
	offset += 4
	copy(buf[offset:], serializePoint(pub.GroupPublicKey))
	offset += pl
	binary.BigEndian.PutUint32(buf[offset:], uint32(len(ids)))
	offset += 4
	for _, id := range ids {
		binary.BigEndian.PutUint32(buf[offset:], uint32(id))
		offset += 4
		copy(buf[offset:], serializePoint(pub.VerificationShares[id]))
		offset += pl
	}
	return buf, nil
}

// UnmarshalBinary decodes a public key package produced by MarshalBinary.
func (pub *PublicKeyPackage) UnmarshalBinary(b []byte) error {
	pl := pointLength()
	if len(b) < 4+4+pl+4 {
		return fmt.Errorf("frost: public key package truncated")
	}
	offset := 0
	pub.Threshold = int(binary.BigEndian.Uint32(b[offset:]))
	offset += 4
	pub.MaxSigners = int(binary.BigEndian.Uint32(b[offset:]))
	offset += 4
	groupKey, err := deserializePoint(b[offset : offset+pl])
	if err != nil {
		return err
	}
	pub.GroupPublicKey = groupKey
	offset += pl
	count := int(binary.BigEndian.Uint32(b[offset:]))
	offset += 4

	want := offset + count*(4+pl)
	if len(b) != want {
		return fmt.Errorf("frost: public key package must be %d bytes, got %d", want, len(b))
	}

	pub.VerificationShares = make(map[SignerID]*Point, count)
	for i := 0; i < count; i++ {
		id := SignerID(binary.BigEndian.Uint32(b[offset:]))
		offset += 4
		share, err := deserializePoint(b[offset : offset+pl])
		if err != nil {
			return err
		}
		offset += pl
		pub.VerificationShares[id] = share
	}
	return nil
}

// MarshalBinary encodes the commitment as signer_id(4) || hiding(P) || binding(P).
func (c *SigningCommitment) MarshalBinary() ([]byte, error) {
	if c == nil || c.Hiding == nil || c.Binding == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete signing commitment")
	}
	pl := pointLength()
	buf := make([]byte, 4+2*pl)
	binary.BigEndian.PutUint32(buf[0:], uint32(c.SignerID))
	copy(buf[4:], serializePoint(c.Hiding))
	copy(buf[4+pl:], serializePoint(c.Binding))
	return buf, nil
}

// UnmarshalBinary decodes a commitment produced by MarshalBinary.
func (c *SigningCommitment) UnmarshalBinary(b []byte) error {
	pl := pointLength()
	want := 4 + 2*pl
	if len(b) != want {
		return fmt.Errorf("frost: signing commitment must be %d bytes, got %d", want, len(b))
	}
	c.SignerID = SignerID(binary.BigEndian.Uint32(b[0:]))
	hiding, err := deserializePoint(b[4 : 4+pl])
	if err != nil {
		return err
	}
	binding, err := deserializePoint(b[4+pl : 4+2*pl])
	if err != nil {
		return err
	}
	c.Hiding = hiding
	c.Binding = binding
	return nil
}

// MarshalBinary encodes the signature share as signer_id(4) || share(32).
func (s *SignatureShare) MarshalBinary() ([]byte, error) {
	if s == nil || s.Share == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete signature share")
	}
	buf := make([]byte, 4+scalarLength)
	binary.BigEndian.PutUint32(buf[0:], uint32(s.SignerID))
	copy(buf[4:], scalarToBytes(s.Share))
	return buf, nil
}

// UnmarshalBinary decodes a signature share produced by MarshalBinary.
func (s *SignatureShare) UnmarshalBinary(b []byte) error {
	if len(b) != 4+scalarLength {
		return fmt.Errorf("frost: signature share must be %d bytes, got %d", 4+scalarLength, len(b))
	}
	s.SignerID = SignerID(binary.BigEndian.Uint32(b[0:]))
	s.Share = new(big.Int).SetBytes(b[4:])
	return nil
}

// MarshalBinary encodes the nonces as hiding(32) || binding(32). This is
// used exclusively by the demo-only unsafe nonce file store; production
// code never serializes a SigningNonces value.
func (n *SigningNonces) MarshalBinary() ([]byte, error) {
	if n == nil || n.Hiding == nil || n.Binding == nil {
		return nil, fmt.Errorf("frost: cannot marshal incomplete signing nonces")
	}
	buf := make([]byte, 2*scalarLength)
	copy(buf[0:], scalarToBytes(n.Hiding))
	copy(buf[scalarLength:], scalarToBytes(n.Binding))
	return buf, nil
}

// UnmarshalBinary decodes nonces produced by MarshalBinary.
func (n *SigningNonces) UnmarshalBinary(b []byte) error {
	if len(b) != 2*scalarLength {
		return fmt.Errorf("frost: signing nonces must be %d bytes, got %d", 2*scalarLength, len(b))
	}
	n.Hiding = new(big.Int).SetBytes(b[0:scalarLength])
	n.Binding = new(big.Int).SetBytes(b[scalarLength:])
	return nil
}

// SerializeGroupPublicKey returns the wire encoding of the group's
// verifying key alone, for contexts (e.g. the /pubkey endpoint) that only
// ever need that one point.
func SerializeGroupPublicKey(pub *PublicKeyPackage) []byte {
	return serializePoint(pub.GroupPublicKey)
}

// DeserializeGroupPublicKey parses the encoding SerializeGroupPublicKey
// produces.
func DeserializeGroupPublicKey(b []byte) (*Point, error) {
	return deserializePoint(b)
}
