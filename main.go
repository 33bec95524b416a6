package main

import (
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/Hubmakerlabs/fanoutr/app"
	"github.com/Hubmakerlabs/fanoutr/pkg/context"
	"github.com/Hubmakerlabs/fanoutr/pkg/interrupt"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/keys"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/relayinfo"
	"github.com/Hubmakerlabs/fanoutr/pkg/slog"
	"github.com/alexflint/go-arg"
)

var args, conf app.Config

func main() {
	var log, chk = slog.New(os.Stderr)
	arg.MustParse(&args)
	slog.SetLogLevelString(args.LogLevel)
	var dataDirBase string
	var err error
	if dataDirBase, err = os.UserHomeDir(); chk.E(err) {
		os.Exit(1)
	}
	dataDir := filepath.Join(dataDirBase, "."+args.Profile)
	log.D.F("using profile directory: %s", dataDir)
	infoPath := filepath.Join(dataDir, "info.json")
	configPath := filepath.Join(dataDir, "config.json")
	inf := relayinfo.NewInfo(nil)
	if args.InitCfgCmd != nil {
		if err = os.MkdirAll(dataDir, 0700); chk.E(err) {
			os.Exit(1)
		}
		args.ApplyDefaults()
		// generate a relay identity key if one wasn't given
		if args.SecKey == "" {
			args.SecKey = keys.GeneratePrivateKey()
		}
		inf.Name = args.Name
		inf.Description = args.Description
		inf.Contact = args.Contact
		inf.Icon = args.Icon
		if err = args.Save(configPath); chk.E(err) {
			log.E.F("failed to write relay configuration: '%s'", err)
			os.Exit(1)
		}
		if err = inf.Save(infoPath); chk.E(err) {
			log.E.F("failed to write relay information document: '%s'", err)
			os.Exit(1)
		}
		log.I.Ln("wrote configuration to", dataDir)
		return
	}
	if err = conf.Load(configPath); err != nil {
		log.D.F("no relay configuration loaded: '%s'", err)
	} else {
		args.Merge(&conf)
	}
	args.ApplyDefaults()
	log.T.S(args)
	runtime.GOMAXPROCS(args.MaxProcs)
	if err = inf.Load(infoPath); err != nil {
		log.D.F("failed to load relay information document: '%s' "+
			"deriving from config", err)
		inf = relayinfo.NewInfo(nil)
	}
	// command line and config win over whatever the document had
	if args.Name != "" {
		inf.Name = args.Name
	}
	if args.Description != "" {
		inf.Description = args.Description
	}
	if args.Contact != "" {
		inf.Contact = args.Contact
	}
	if args.Icon != "" {
		inf.Icon = args.Icon
	}
	if args.Pubkey != "" {
		inf.PubKey = args.Pubkey
	}
	var host, p string
	if host, p, err = net.SplitHostPort(args.Listen); chk.E(err) {
		os.Exit(1)
	}
	var port int
	if port, err = strconv.Atoi(p); chk.E(err) {
		os.Exit(1)
	}
	c, cancel := context.Cancel(context.Bg())
	rl := app.NewRelay(c, cancel, inf, &args)
	log.T.S(rl.Info)
	interrupt.AddHandler(func() {
		log.I.Ln("shutting down")
		sc, scancel := context.Timeout(context.Bg(), 5*time.Second)
		defer scancel()
		rl.Shutdown(sc)
	})
	if err = rl.Start(host, port); chk.E(err) {
		os.Exit(1)
	}
	<-interrupt.HandlersDone
	rl.WG.Wait()
	log.I.Ln("relay stopped")
}
