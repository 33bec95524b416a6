// Package keys generates and checks secp256k1 keys in the hex forms nostr
// uses.
package keys

import (
	"fmt"
	"strings"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/event"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/hex"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"lukechampine.com/frand"
)

// GeneratePrivateKey returns a new random secret key as 64 hex characters.
// Draws that are zero or not below the curve order are discarded.
func GeneratePrivateKey() string {
	var s secp256k1.ModNScalar
	for {
		b := frand.Bytes(32)
		if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
			continue
		}
		return hex.Enc(b)
	}
}

// GetPublicKey derives the x-only public key for a hex secret key.
func GetPublicKey(sk string) (pk string, err error) {
	var sec *btcec.PrivateKey
	if sec, err = event.SecKeyFromHex(sk); err != nil {
		return
	}
	return hex.Enc(schnorr.SerializePubKey(sec.PubKey())), nil
}

// IsValid32ByteHex reports whether s is 64 lowercase hex characters.
func IsValid32ByteHex(s string) bool {
	if strings.ToLower(s) != s {
		return false
	}
	dec, _ := hex.Dec(s)
	return len(dec) == 32
}

// IsValidPublicKeyHex reports whether pk is a lowercase hex x-only key that
// lies on the curve.
func IsValidPublicKeyHex(pk string) bool {
	if !IsValid32ByteHex(pk) {
		return false
	}
	b, _ := hex.Dec(pk)
	_, err := schnorr.ParsePubKey(b)
	return err == nil
}

// Short renders a key as its first and last few characters for log lines.
func Short(pk string) string {
	if len(pk) <= 16 {
		return pk
	}
	return fmt.Sprintf("%s…%s", pk[:8], pk[len(pk)-8:])
}
