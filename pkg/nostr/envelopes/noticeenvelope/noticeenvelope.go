package noticeenvelope

import (
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/enveloper"
	"github.com/Hubmakerlabs/fanoutr/pkg/nostr/envelopes/labels"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

var _ enveloper.I = (*T)(nil)

// T is a free text message from a relay for a human to read.
type T struct {
	Message string
}

func New(msg string) *T { return &T{Message: msg} }

func (env *T) Label() string { return labels.NOTICE }

func (env *T) Bytes() []byte {
	return enveloper.Write(labels.NOTICE, func(w *jwriter.Writer) {
		enveloper.Field(w, env.Message)
	})
}

func (env *T) String() string { return string(env.Bytes()) }

func (env *T) MarshalJSON() ([]byte, error) { return env.Bytes(), nil }

func (env *T) UnmarshalJSON(b []byte) error { return enveloper.Unmarshal(b, env) }

func (env *T) Decode(elems []gjson.Result) (err error) {
	if err = enveloper.Arity(labels.NOTICE, elems, 2); err != nil {
		return
	}
	var msg string
	if msg, err = enveloper.String(labels.NOTICE, elems, 1); err != nil {
		return
	}
	env.Message = msg
	return
}
