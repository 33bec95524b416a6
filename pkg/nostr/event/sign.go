package event

import (
	"errors"
	"fmt"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/eventid"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/hex"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Signatures are BIP-340 Schnorr signatures over secp256k1, with 32 byte
// x-only public keys, as every nostr implementation uses.

var (
	// ErrInvalidKey is returned when a secret key is not 32 bytes of hex or
	// is not a valid scalar: zero, or not less than the curve order.
	ErrInvalidKey = errors.New("invalid secret key")
	// ErrInvalidDigest is returned when the id to sign does not decode to
	// exactly 32 bytes.
	ErrInvalidDigest = errors.New("invalid digest")
)

// SecKeyFromHex parses and range checks a hex encoded secret key.
func SecKeyFromHex(skStr string) (sk *btcec.PrivateKey, err error) {
	var skBytes []byte
	if skBytes, err = hex.DecLen(skStr, 32); err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidKey, err)
		return
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(skBytes); overflow {
		err = fmt.Errorf("%w: not less than the curve order", ErrInvalidKey)
		return
	}
	if s.IsZero() {
		err = fmt.Errorf("%w: zero", ErrInvalidKey)
		return
	}
	sk = secp256k1.NewPrivateKey(&s)
	return
}

// SignID signs the 32 raw bytes of an event ID with a hex encoded secret key
// and returns the hex encoded 64 byte signature.
func SignID(id eventid.T, skStr string) (sig string, err error) {
	var digest []byte
	if digest, err = hex.DecLen(string(id), 32); err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidDigest, err)
		return
	}
	var sk *btcec.PrivateKey
	if sk, err = SecKeyFromHex(skStr); err != nil {
		return
	}
	var s *schnorr.Signature
	if s, err = schnorr.Sign(sk, digest); chk.D(err) {
		return
	}
	sig = hex.Enc(s.Serialize())
	return
}

// Verify checks a hex encoded signature over the raw bytes of id against a
// hex encoded x-only public key. The error is set when an input cannot be
// parsed; a well formed but wrong signature returns false and no error.
func Verify(id eventid.T, sig, pubkey string) (valid bool, err error) {
	var digest []byte
	if digest, err = hex.DecLen(string(id), 32); err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidDigest, err)
		return
	}
	var pkBytes []byte
	if pkBytes, err = hex.DecLen(pubkey, 32); err != nil {
		err = fmt.Errorf("event pubkey '%s' is invalid hex: %w", pubkey, err)
		return
	}
	var pk *btcec.PublicKey
	if pk, err = schnorr.ParsePubKey(pkBytes); err != nil {
		err = fmt.Errorf("event has invalid pubkey '%s': %w", pubkey, err)
		return
	}
	var sigBytes []byte
	if sigBytes, err = hex.DecLen(sig, 64); err != nil {
		err = fmt.Errorf("signature '%s' is invalid hex: %w", sig, err)
		return
	}
	var s *schnorr.Signature
	if s, err = schnorr.ParseSignature(sigBytes); err != nil {
		err = fmt.Errorf("failed to parse signature: %w", err)
		return
	}
	valid = s.Verify(digest, pk)
	return
}

// CheckSignature checks if the signature is valid for the id (which is a hash
// of the serialized event content). returns an error if the signature itself is
// invalid.
//
// The ID is recomputed from the content rather than trusted, so an event
// whose ID does not match its content fails.
func (ev *T) CheckSignature() (valid bool, err error) {
	id := ev.GetID()
	if id != ev.ID {
		return false, nil
	}
	return Verify(id, ev.Sig, ev.PubKey)
}

// Sign signs an event with a given Secret Key encoded in hexadecimal. The
// public key, ID and signature are all set from the key and content.
func (ev *T) Sign(skStr string) (err error) {
	var sk *btcec.PrivateKey
	if sk, err = SecKeyFromHex(skStr); err != nil {
		return
	}
	return ev.SignWithSecKey(sk)
}

// SignWithSecKey signs an event with a parsed secret key.
func (ev *T) SignWithSecKey(sk *btcec.PrivateKey) (err error) {
	ev.PubKey = hex.Enc(schnorr.SerializePubKey(sk.PubKey()))
	id := ev.GetIDBytes()
	var sig *schnorr.Signature
	if sig, err = schnorr.Sign(sk, id); chk.D(err) {
		return
	}
	ev.ID = eventid.T(hex.Enc(id))
	ev.Sig = hex.Enc(sig.Serialize())
	log.T.F("signed event %s", ev.ID)
	return
}
