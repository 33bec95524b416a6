package main

// C is the configuration for the client. The secret key may also come from
// SECKEY in the environment or in a .env file in the working directory.
type C struct {
	Relay    string `arg:"positional,required" help:"relay websocket url, eg ws://127.0.0.1:3334"`
	SecKey   string `arg:"-s,--seckey,env:SECKEY" help:"hex secret key to sign the note with"`
	Content  string `arg:"-c,--content" default:"hello from postr" help:"text of the note to publish"`
	Count    int    `arg:"-n,--count" help:"exit after printing this many messages from the relay, 0 to run until interrupted"`
	Info     bool   `arg:"-i,--info" help:"print the relay information document before connecting"`
	LogLevel string `arg:"--loglevel" default:"info" help:"set log level [off,fatal,error,warn,info,debug,trace]"`
}

func (C) Description() string {
	return "postr subscribes to its own text notes on a relay, publishes one, " +
		"and prints what the relay sends back"
}

func (C) Version() string { return appName + " " + version }
