package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/keys"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayws"
	"github.com/Hubmakerlabs/fanoutr/pkg/units"
	"github.com/fasthttp/websocket"
	"github.com/puzpuzpuz/xsync/v2"
)

var Version = "v0.0.1"
var Software = "https://github.com/Hubmakerlabs/fanoutr"

const (
	WriteWait           = 10 * time.Second
	ReadBufferSize      = 4096
	WriteBufferSize     = 4096
	MaxMessageSize  int = 128 * units.KiB
)

type Relay struct {
	Ctx    context.T
	WG     *sync.WaitGroup
	Cancel context.F
	Config *Config
	Info   *relayinfo.T
	// Registry holds the subscriptions of every connection.
	Registry *Registry
	// for establishing websockets
	upgrader websocket.Upgrader
	// keep a connection reference to all connected clients for Server.Shutdown
	clients *xsync.MapOf[*relayws.WebSocket, struct{}]
	// in case you call Server.Start
	Addr       string
	serveMux   *http.ServeMux
	httpServer *http.Server
	// WriteWait is the time allowed to write a control message to the peer.
	WriteWait      time.Duration
	MaxMessageSize int64 // Maximum message size allowed from peer.
	RelayPubHex    string
}

func NewRelay(c context.T, cancel context.F, inf *relayinfo.T,
	conf *Config) (r *Relay) {

	maxMessageLength := int64(MaxMessageSize)
	if conf.MaxMessageSize > 0 {
		maxMessageLength = conf.MaxMessageSize
	}
	if inf.Limitation == nil {
		inf.Limitation = &relayinfo.Limits{}
	}
	inf.Limitation.MaxMessageLength = int(maxMessageLength)
	inf.Software = Software
	inf.Version = Version
	inf.AddNIPs(
		relayinfo.BasicProtocol.Number,
		relayinfo.RelayInformationDocument.Number,
		relayinfo.CommandResults.Number,
	)
	var pubKey string
	if conf.SecKey != "" {
		var err error
		if pubKey, err = keys.GetPublicKey(conf.SecKey); chk.E(err) {
			log.W.Ln("relay identity key is invalid, not publishing a pubkey")
		} else {
			inf.PubKey = pubKey
		}
	}
	r = &Relay{
		Ctx:      c,
		WG:       &sync.WaitGroup{},
		Cancel:   cancel,
		Config:   conf,
		Info:     inf,
		Registry: NewRegistry(conf.WrapDeliveries),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  ReadBufferSize,
			WriteBufferSize: WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: xsync.NewTypedMapOf[*relayws.WebSocket,
			struct{}](PointerHasher[relayws.WebSocket]),
		serveMux:       &http.ServeMux{},
		WriteWait:      WriteWait,
		MaxMessageSize: maxMessageLength,
		RelayPubHex:    pubKey,
	}
	if pubKey != "" {
		log.I.F("relay pubkey: %s", keys.Short(pubKey))
	}
	r.serveMux.HandleFunc("/", r.HandleBanner)
	return
}

// Clients is the number of live websocket connections.
func (rl *Relay) Clients() int { return rl.clients.Size() }
