// Package classify holds the keyword heuristics that label a call's outcome and intent.
//
// The rules are plain substring checks over lowercased text. Order matters: the first
// matching rule wins.
package classify

import (
	"strings"

	"voice-call-dashboard/internal/calls"
)

// End reasons reported by the provider when nobody picked up.
const (
	EndReasonUnjoined = "unjoined"
	EndReasonTimeout  = "timeout"
)

// Input is the text and outcome data the heuristics look at.
type Input struct {
	EndReason    string
	SuccessFlag  *bool
	Summary      string
	Transcript   string
	SystemPrompt string
}

// NoAnswer reports whether endReason means the call never connected.
func NoAnswer(endReason string) bool {
	return endReason == EndReasonUnjoined || endReason == EndReasonTimeout
}

// ClientStatus classifies the call outcome from summary + transcript.
func ClientStatus(in Input) calls.ClientStatus {
	if NoAnswer(in.EndReason) {
		return calls.ClientStatusNoAnswer
	}
	text := lowerJoin(in.Summary, in.Transcript)

	if in.SuccessFlag != nil && *in.SuccessFlag {
		switch {
		case containsAny(text, "appointment", "schedule", "visit"):
			return calls.ClientStatusAppointmentScheduled
		case containsAny(text, "interested", "like to know"):
			return calls.ClientStatusInterested
		case containsAny(text, "callback", "call back"):
			return calls.ClientStatusCallbackRequested
		}
	}
	if in.SuccessFlag != nil && !*in.SuccessFlag {
		return calls.ClientStatusNotInterested
	}
	return calls.ClientStatusUnknown
}

// LeadQuality classifies purchase intent from summary + transcript + system prompt.
func LeadQuality(in Input) calls.LeadQuality {
	text := lowerJoin(in.Summary, in.Transcript, in.SystemPrompt)
	switch {
	case containsAny(text, "very interested", "definitely", "ready to buy"):
		return calls.LeadQualityHot
	case containsAny(text, "interested", "maybe", "thinking"):
		return calls.LeadQualityWarm
	case containsAny(text, "not interested", "no thank") || in.EndReason == EndReasonUnjoined:
		return calls.LeadQualityUnqualified
	default:
		return calls.LeadQualityCold
	}
}

// The dashboard counters check one field each, lowercased.

// MentionsAppointment reports a transcript mentioning an appointment or a summary mentioning scheduling.
func MentionsAppointment(summary, transcript string) bool {
	return strings.Contains(strings.ToLower(transcript), "appointment") ||
		strings.Contains(strings.ToLower(summary), "schedule")
}

// MentionsCallback reports a transcript mentioning a callback or a summary asking to call back.
func MentionsCallback(summary, transcript string) bool {
	return strings.Contains(strings.ToLower(transcript), "callback") ||
		strings.Contains(strings.ToLower(summary), "call back")
}

func lowerJoin(parts ...string) string {
	return strings.ToLower(strings.Join(parts, ""))
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
