// Package relayinfo is the NIP-11 relay information document.
package relayinfo

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"golang.org/x/exp/slices"
)

var log, chk = slog.New(os.Stderr)

type NIP struct {
	Description string
	Number      int
}

// The NIPs this relay has something to say about.
var (
	BasicProtocol            = NIP{"Basic protocol flow description", 1}
	RelayInformationDocument = NIP{"Relay Information Document", 11}
	CommandResults           = NIP{"Command Results", 20}
)

// T provides the information for a relay on the network as regards to
// versions, NIP support, contact and policies.
type T struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PubKey        string  `json:"pubkey"`
	Contact       string  `json:"contact"`
	SupportedNIPs []int   `json:"supported_nips"`
	Software      string  `json:"software"`
	Version       string  `json:"version"`
	Limitation    *Limits `json:"limitation,omitempty"`
	PostingPolicy string  `json:"posting_policy,omitempty"`
	Icon          string  `json:"icon"`
}

// Limits specifies the various restrictions and limitations that apply to
// interactions with a given relay.
type Limits struct {
	MaxMessageLength int  `json:"max_message_length,omitempty"`
	MaxSubscriptions int  `json:"max_subscriptions,omitempty"`
	MaxFilters       int  `json:"max_filters,omitempty"`
	MaxLimit         int  `json:"max_limit,omitempty"`
	MaxSubidLength   int  `json:"max_subid_length,omitempty"`
	AuthRequired     bool `json:"auth_required"`
	PaymentRequired  bool `json:"payment_required"`
	RestrictedWrites bool `json:"restricted_writes"`
}

// NewInfo returns a document with the given limits, or empty ones.
func NewInfo(l *Limits) *T {
	if l == nil {
		l = &Limits{}
	}
	return &T{Limitation: l, SupportedNIPs: []int{}}
}

// AddNIPs adds supported NIP numbers, keeping the list sorted and free of
// duplicates.
func (ri *T) AddNIPs(n ...int) {
	for _, num := range n {
		idx, exists := slices.BinarySearch(ri.SupportedNIPs, num)
		if exists {
			continue
		}
		ri.SupportedNIPs = slices.Insert(ri.SupportedNIPs, idx, num)
	}
}

// HasNIP reports whether n is listed as supported.
func (ri *T) HasNIP(n int) bool {
	_, ok := slices.BinarySearch(ri.SupportedNIPs, n)
	return ok
}

func (ri *T) Save(filename string) (err error) {
	if ri == nil {
		err = errors.New("cannot save nil relay info document")
		log.E.Ln(err)
		return
	}
	var b []byte
	if b, err = json.MarshalIndent(ri, "", "    "); chk.E(err) {
		return
	}
	if err = os.WriteFile(filename, b, 0600); chk.E(err) {
		return
	}
	return
}

func (ri *T) Load(filename string) (err error) {
	if ri == nil {
		err = errors.New("cannot load into nil relay info document")
		log.E.Ln(err)
		return
	}
	var b []byte
	if b, err = os.ReadFile(filename); err != nil {
		return
	}
	if err = json.Unmarshal(b, ri); chk.E(err) {
		return
	}
	return
}
