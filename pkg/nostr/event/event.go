package event

import (
	"os"
	"strconv"

	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/eventid"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/hex"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/kind"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/tags"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/text"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/timestamp"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/minio/sha256-simd"
)

var log, chk = slog.New(os.Stderr)

func Hash(in []byte) (out []byte) {
	h := sha256.Sum256(in)
	return h[:]
}

// T is the primary datatype of nostr. This is the form of the structure
// that defines its JSON string based format.
//
// Once signed an event is treated as immutable: the relay forwards received
// events unchanged or drops them, it never edits one.
type T struct {

	// ID is the SHA256 hash of the canonical encoding of the event
	ID eventid.T `json:"id"`

	// PubKey is the public key of the event creator in *hexadecimal* format
	PubKey string `json:"pubkey"`

	// CreatedAt is the UNIX timestamp of the event according to the event
	// creator (never trust a timestamp!)
	CreatedAt timestamp.T `json:"created_at"`

	// Kind is the nostr protocol code for the type of event. See kind.T
	Kind kind.T `json:"kind"`

	// Tags are a list of tags, which are a list of strings usually structured
	// as a 3 layer scheme indicating specific features of an event.
	Tags tags.T `json:"tags"`

	// Content is an arbitrary string that can contain anything, but usually
	// following a format set by the Kind and the Tags.
	Content string `json:"content"`

	// Sig is the signature on the ID hash that validates as coming from the
	// Pubkey.
	Sig string `json:"sig"`
}

// New builds an unsigned event and computes its ID.
func New(pubkey string, createdAt timestamp.T, k kind.T, t tags.T,
	content string) (ev *T) {

	ev = &T{
		PubKey:    pubkey,
		CreatedAt: createdAt,
		Kind:      k,
		Tags:      t,
		Content:   content,
	}
	ev.ID = ev.GetID()
	return
}

// Canonical returns the serialization that is hashed to produce an event ID:
//
//	[0,"<pubkey>",<created_at>,<kind>,<tags>,"<content>"]
//
// with no whitespace and strings escaped as NIP-01 requires.
func Canonical(pubkey string, createdAt timestamp.T, k kind.T, t tags.T,
	content string) (b []byte) {

	b = make([]byte, 0, 96+len(pubkey)+len(content))
	b = append(b, "[0,"...)
	b = text.AppendQuoted(b, pubkey)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(createdAt), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(k), 10)
	b = append(b, ',')
	b = t.MarshalTo(b)
	b = append(b, ',')
	b = text.AppendQuoted(b, content)
	b = append(b, ']')
	return
}

// ComputeID hashes the canonical form of the given fields. Any two
// implementations given the same fields must arrive at the same ID.
func ComputeID(pubkey string, createdAt timestamp.T, k kind.T, t tags.T,
	content string) eventid.T {

	return eventid.T(hex.Enc(Hash(Canonical(pubkey, createdAt, k, t, content))))
}

// ToCanonical returns the canonical form of the event used to generate the ID
// hash that can be signed.
func (ev *T) ToCanonical() []byte {
	return Canonical(ev.PubKey, ev.CreatedAt, ev.Kind, ev.Tags, ev.Content)
}

// GetIDBytes returns the raw SHA256 hash of the canonical form of an T.
func (ev *T) GetIDBytes() []byte { return Hash(ev.ToCanonical()) }

// GetID serializes and returns the event ID as a hexadecimal string.
func (ev *T) GetID() eventid.T { return eventid.T(hex.Enc(ev.GetIDBytes())) }

// String returns the event as its JSON object.
func (ev *T) String() string { return string(ev.Serialize()) }
