package kind

import (
	"strconv"
)

// T - which will be externally referenced as kind.T is the event type in the
// nostr protocol, the use of the capital T signifying type, consistent with Go
// idiom, the Go standard library, and much, conformant, existing code.
type T uint16

func (ki T) ToInt() int       { return int(ki) }
func (ki T) ToUint16() uint16 { return uint16(ki) }

// MaxValue is the largest kind number that can be carried on the wire.
const MaxValue = 1<<16 - 1

const (
	// ProfileMetadata is an event type that stores user profile data, pet
	// names, bio, lightning address, etc.
	ProfileMetadata T = 0
	// TextNote is a standard short text note of plain text a la twitter
	TextNote T = 1
	// RecommendRelay is an event type that suggests a relay to followers.
	RecommendRelay T = 2
	// FollowList an event containing a list of pubkeys of users that should be
	// shown as follows in a timeline.
	FollowList T = 3
	// EncryptedDirectMessage is a NIP-04 direct message.
	EncryptedDirectMessage T = 4
	// Deletion requests removal of the events it references.
	Deletion T = 5
	// Repost shares another text note.
	Repost T = 6
	// Reaction is a like or emoji response to another event.
	Reaction T = 7
	ChannelCreation T = 40
	ChannelMetadata T = 41
	ChannelMessage  T = 42
	// ClientAuthentication is the NIP-42 auth response kind.
	ClientAuthentication T = 22242
	// LongFormContent is a NIP-23 article.
	LongFormContent T = 30023
)

// Map is the names of the kinds that get logged.
var Map = map[T]string{
	ProfileMetadata:        "ProfileMetadata",
	TextNote:               "TextNote",
	RecommendRelay:         "RecommendRelay",
	FollowList:             "FollowList",
	EncryptedDirectMessage: "EncryptedDirectMessage",
	Deletion:               "Deletion",
	Repost:                 "Repost",
	Reaction:               "Reaction",
	ChannelCreation:        "ChannelCreation",
	ChannelMetadata:        "ChannelMetadata",
	ChannelMessage:         "ChannelMessage",
	ClientAuthentication:   "ClientAuthentication",
	LongFormContent:        "LongFormContent",
}

// GetString returns a human readable name for a kind, or its number when the
// kind has no name here.
func GetString(t T) string {
	if s, ok := Map[t]; ok {
		return s
	}
	return "Kind" + strconv.Itoa(int(t))
}

func (ki T) String() string { return GetString(ki) }
