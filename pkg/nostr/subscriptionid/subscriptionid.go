package subscriptionid

// T is the client chosen name of a subscription. It is opaque to the relay
// and only unique within the connection that chose it.
type T string

func (si T) String() string { return string(si) }

// IsValid returns true if the subscription id is between 1 and 64 characters,
// the bounds NIP-01 recommends to clients.
func (si T) IsValid() bool { return len(si) <= 64 && len(si) > 0 }
