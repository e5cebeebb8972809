package ingest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"voice-call-dashboard/internal/classify"
)

// Shape identifies which inbound payload layout an item used.
type Shape int

const (
	// ShapeLegacy is the flat object with snake_case or title-case keys.
	ShapeLegacy Shape = iota
	// ShapeProvider is {"event":"call.ended","call":{...}}.
	ShapeProvider
)

func (s Shape) String() string {
	if s == ShapeProvider {
		return "provider"
	}
	return "legacy"
}

const providerEventEnded = "call.ended"

// Event is one inbound item with every accepted key alias resolved to a single field.
// Timestamps, cost and follow-up date stay raw until the item is built into a record.
type Event struct {
	Shape Shape

	// ID is the explicit identifier, if any.
	ID string
	// ProviderCallID is the provider's callId, if any.
	ProviderCallID string

	CallerName string
	Phone      string

	Start json.RawMessage
	End   json.RawMessage

	Transcript string
	Summary    string

	// Success is nil when the payload carries no outcome.
	Success *bool

	Cost json.RawMessage

	EndReason      string
	BilledDuration string
	SystemPrompt   string

	PropertyInterest string
	FollowUpDate     json.RawMessage
	AgentNotes       string
}

// fields is a decoded JSON object.
type fields map[string]json.RawMessage

// Normalize maps one raw item onto an Event.
func Normalize(raw json.RawMessage) (Event, error) {
	var obj fields
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Event{}, ErrNotObject
	}

	if obj.str("event") == providerEventEnded {
		var call fields
		if err := json.Unmarshal(obj["call"], &call); err == nil && call != nil {
			return fromProvider(call), nil
		}
	}
	return fromLegacy(obj), nil
}

func fromProvider(call fields) Event {
	endReason := call.str("endReason")
	success := !classify.NoAnswer(endReason)
	return Event{
		Shape:          ShapeProvider,
		ID:             call.first("callId", "id"),
		ProviderCallID: call.str("callId"),
		Start:          call.raw("created"),
		End:            call.raw("ended"),
		Transcript:     call.str("transcript"),
		Summary:        call.first("summary", "shortSummary"),
		Success:        &success,
		EndReason:      endReason,
		BilledDuration: call.str("billedDuration"),
		SystemPrompt:   call.str("systemPrompt"),
	}
}

func fromLegacy(obj fields) Event {
	ev := Event{
		Shape:            ShapeLegacy,
		ID:               obj.first("id", "callId", "ID"),
		ProviderCallID:   obj.str("callId"),
		CallerName:       obj.first("caller_name", "Caller Name"),
		Phone:            obj.str("phone"),
		Start:            obj.firstRaw("call_start", "Call Start", "created"),
		End:              obj.firstRaw("call_end", "Call End", "ended"),
		Transcript:       obj.str("transcript"),
		Summary:          obj.first("summary", "Summary"),
		Cost:             obj.firstPresent("cost", "Cost"),
		EndReason:        obj.str("endReason"),
		BilledDuration:   obj.str("billedDuration"),
		SystemPrompt:     obj.str("systemPrompt"),
		PropertyInterest: obj.str("property_interest"),
		FollowUpDate:     obj.firstRaw("follow_up_date"),
		AgentNotes:       obj.str("agent_notes"),
	}

	switch {
	case obj.present("success_flag"):
		b := truthy(obj["success_flag"])
		ev.Success = &b
	case obj.present("Success"):
		b := truthy(obj["Success"])
		ev.Success = &b
	case ev.EndReason != "":
		b := !classify.NoAnswer(ev.EndReason)
		ev.Success = &b
	}
	return ev
}

// present reports a key with a non-null value.
func (f fields) present(key string) bool {
	v, ok := f[key]
	return ok && !isNull(v)
}

// raw returns the value for key, or nil when it is missing or falsy.
func (f fields) raw(key string) json.RawMessage {
	v, ok := f[key]
	if !ok || falsy(v) {
		return nil
	}
	return v
}

// firstRaw returns the first value among keys that is not falsy.
func (f fields) firstRaw(keys ...string) json.RawMessage {
	for _, k := range keys {
		if v := f.raw(k); v != nil {
			return v
		}
	}
	return nil
}

// firstPresent returns the first value among keys that is not null.
func (f fields) firstPresent(keys ...string) json.RawMessage {
	for _, k := range keys {
		if f.present(k) {
			return f[k]
		}
	}
	return nil
}

func (f fields) str(key string) string { return stringify(f.raw(key)) }

func (f fields) first(keys ...string) string { return stringify(f.firstRaw(keys...)) }

// stringify renders a scalar JSON value as text. Strings are unquoted; numbers and
// booleans keep their literal form; objects and arrays keep their JSON text.
func stringify(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || isNull(v) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// falsy mirrors the values a loose "a || b" chain skips: null, false, 0 and "".
func falsy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch {
	case len(v) == 0, isNull(v), string(v) == "false", string(v) == `""`:
		return true
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f == 0
	}
	return false
}

// truthy converts a flag value to a bool. Strings such as "false", "0" and "no" are false.
func truthy(v json.RawMessage) bool {
	if falsy(v) {
		return false
	}
	v = bytes.TrimSpace(v)
	if v[0] == '"' {
		switch strings.ToLower(strings.TrimSpace(stringify(v))) {
		case "", "false", "0", "no", "n", "off":
			return false
		}
	}
	return true
}
