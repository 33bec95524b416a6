package relayws

// State is the lifecycle stage of a relay side connection. It only moves
// forward, Connecting to Open to Closing to Closed.
type State int32

const (
	Connecting State = iota
	Open
	Closing
	Closed
)

var stateNames = map[State]string{
	Connecting: "connecting",
	Open:       "open",
	Closing:    "closing",
	Closed:     "closed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}
