package app

import (
	"encoding/json"
	"errors"
	"os"
)

type InitCfg struct{}

// Fallbacks for settings given neither on the command line nor in the
// config file. They are applied after Merge so a saved file can override
// them.
const (
	DefaultListen   = "0.0.0.0:3334"
	DefaultName     = "fanoutr relay"
	DefaultMaxProcs = 128
)

type Config struct {
	InitCfgCmd     *InitCfg `arg:"subcommand:initcfg" json:"-" help:"initialize relay configuration files"`
	Listen         string   `arg:"-l,--listen" json:"listen" help:"network address to listen on (default 0.0.0.0:3334)"`
	Profile        string   `arg:"-p,--profile" json:"-" default:"fanoutr" help:"profile name to use for configuration"`
	Name           string   `arg:"-n,--name" json:"name" help:"name of relay for NIP-11 (default fanoutr relay)"`
	Description    string   `arg:"-d,--description" json:"description" help:"description of relay for NIP-11"`
	Pubkey         string   `arg:"--pubkey" json:"pubkey" help:"public key of relay operator"`
	Contact        string   `arg:"-c,--contact" json:"contact,omitempty" help:"non-nostr relay operator contact details"`
	Icon           string   `arg:"-i,--icon" json:"icon" help:"icon to show on relay information pages"`
	SecKey         string   `arg:"-s,--seckey" json:"seckey" help:"identity key of relay, its public key is published in the relay information document"`
	WrapDeliveries bool     `arg:"-w,--wrap" json:"wrap_deliveries" help:"deliver events as [\"EVENT\",<subscription id>,<event>] instead of the bare event"`
	MaxMessageSize int64    `arg:"-M,--maxmessage" json:"max_message_size" help:"largest inbound message in bytes, larger ones close the connection (default 131072)"`
	MaxProcs       int      `arg:"-m,--maxprocs" json:"max_procs" help:"maximum number of goroutines to use (default 128)"`
	LogLevel       string   `arg:"--loglevel" default:"info" json:"-" help:"set log level [off,fatal,error,warn,info,debug,trace] (can also use GODEBUG environment variable)"`
}

func (c *Config) Save(filename string) (err error) {
	if c == nil {
		err = errors.New("cannot save nil relay config")
		log.E.Ln(err)
		return
	}
	var b []byte
	if b, err = json.MarshalIndent(c, "", "    "); chk.E(err) {
		return
	}
	if err = os.WriteFile(filename, b, 0600); chk.E(err) {
		return
	}
	return
}

func (c *Config) Load(filename string) (err error) {
	if c == nil {
		err = errors.New("cannot load into nil config")
		log.E.Ln(err)
		return
	}
	var b []byte
	if b, err = os.ReadFile(filename); err != nil {
		return
	}
	if err = json.Unmarshal(b, c); chk.E(err) {
		return
	}
	return
}

// Merge fills fields left empty on the command line from a loaded config.
func (c *Config) Merge(file *Config) {
	if c.Listen == "" {
		c.Listen = file.Listen
	}
	if c.Name == "" {
		c.Name = file.Name
	}
	if c.Description == "" {
		c.Description = file.Description
	}
	if c.Pubkey == "" {
		c.Pubkey = file.Pubkey
	}
	if c.Contact == "" {
		c.Contact = file.Contact
	}
	if c.Icon == "" {
		c.Icon = file.Icon
	}
	if c.SecKey == "" {
		c.SecKey = file.SecKey
	}
	if !c.WrapDeliveries {
		c.WrapDeliveries = file.WrapDeliveries
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = file.MaxMessageSize
	}
	if c.MaxProcs == 0 {
		c.MaxProcs = file.MaxProcs
	}
}

// ApplyDefaults fills whatever is still unset with the built in defaults.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = int64(MaxMessageSize)
	}
	if c.MaxProcs <= 0 {
		c.MaxProcs = DefaultMaxProcs
	}
}
