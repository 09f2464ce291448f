package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dkeye/roomsignal/internal/domain"
)

// Wire message types.
const (
	TypeHello  = "hello"
	TypeJoin   = "join"
	TypePeers  = "peers"
	TypeOffer  = "offer"
	TypeAnswer = "answer"
	TypeICE    = "ice"
)

// SenderField is added to every relayed negotiation message.
const SenderField = "sender"

var ErrMalformed = errors.New("malformed message")

// Message is an inbound client message, parsed once at the boundary.
// Implemented by Join, Negotiation and Ignored.
type Message interface {
	Type() string
	isMessage()
}

// Join asks to enter a room. Room is empty when the client sent none,
// an empty string, false, null, an array or an object.
type Join struct {
	Room domain.RoomName
}

func (Join) Type() string { return TypeJoin }
func (Join) isMessage()   {}

// Negotiation is an offer, answer or ice message. Fields holds every
// top-level field exactly as received, including "type".
type Negotiation struct {
	Kind   string
	Fields map[string]json.RawMessage
}

func (n Negotiation) Type() string { return n.Kind }
func (Negotiation) isMessage()     {}

// WithSender encodes the message with the sender field set to id.
// A client-supplied sender is overwritten.
func (n Negotiation) WithSender(id domain.ConnID) (Frame, error) {
	out := make(map[string]json.RawMessage, len(n.Fields)+1)
	for k, v := range n.Fields {
		out[k] = v
	}
	sender, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	out[SenderField] = sender
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", n.Kind, err)
	}
	return b, nil
}

// Ignored is any well-formed message with an unrecognized type.
type Ignored struct {
	Kind string
}

func (i Ignored) Type() string { return i.Kind }
func (Ignored) isMessage()     {}

// Parse decodes a raw client payload. It fails with ErrMalformed when the
// payload is not a JSON object carrying a string "type".
func Parse(data []byte) (Message, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	rawType, ok := fields["type"]
	if !ok {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	var typ string
	if err := json.Unmarshal(rawType, &typ); err != nil || typ == "" {
		// null decodes into a string without error
		return nil, fmt.Errorf("%w: type is not a string", ErrMalformed)
	}

	switch typ {
	case TypeJoin:
		return Join{Room: roomName(fields["room"])}, nil
	case TypeOffer, TypeAnswer, TypeICE:
		return Negotiation{Kind: typ, Fields: fields}, nil
	default:
		return Ignored{Kind: typ}, nil
	}
}

// roomName stringifies scalar room values: 42 becomes "42" and true
// becomes "1".
func roomName(raw json.RawMessage) domain.RoomName {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return domain.RoomName(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return domain.RoomName(strconv.FormatInt(i, 10))
		}
		if f, err := x.Float64(); err == nil {
			return domain.RoomName(strconv.FormatFloat(f, 'f', -1, 64))
		}
		return domain.RoomName(x.String())
	case bool:
		if x {
			return "1"
		}
		return ""
	default:
		return ""
	}
}

// HelloMsg greets a freshly accepted connection.
type HelloMsg struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func NewHello() HelloMsg {
	return HelloMsg{Type: TypeHello, Msg: "connected"}
}

// PeersMsg carries the current member count of a room.
type PeersMsg struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func NewPeers(count int) PeersMsg {
	return PeersMsg{Type: TypePeers, Count: count}
}

func Encode(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
