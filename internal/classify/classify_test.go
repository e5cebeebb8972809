package classify

import (
	"testing"

	"voice-call-dashboard/internal/calls"
)

func boolp(b bool) *bool { return &b }

func TestClientStatus(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want calls.ClientStatus
	}{
		{"unjoined wins over text", Input{EndReason: "unjoined", SuccessFlag: boolp(true), Summary: "appointment booked"}, calls.ClientStatusNoAnswer},
		{"timeout", Input{EndReason: "timeout"}, calls.ClientStatusNoAnswer},
		{"appointment before interested", Input{SuccessFlag: boolp(true), Summary: "Interested, wants a site visit"}, calls.ClientStatusAppointmentScheduled},
		{"interested", Input{SuccessFlag: boolp(true), Transcript: "I would like to know the price"}, calls.ClientStatusInterested},
		{"callback", Input{SuccessFlag: boolp(true), Summary: "asked us to call back tomorrow"}, calls.ClientStatusCallbackRequested},
		{"success without keywords", Input{SuccessFlag: boolp(true), Summary: "short chat"}, calls.ClientStatusUnknown},
		{"failed", Input{SuccessFlag: boolp(false), Summary: "appointment"}, calls.ClientStatusNotInterested},
		{"unknown outcome", Input{Summary: "appointment"}, calls.ClientStatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClientStatus(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLeadQuality(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want calls.LeadQuality
	}{
		{"very interested is hot", Input{Summary: "Caller is VERY interested"}, calls.LeadQualityHot},
		{"ready to buy in transcript", Input{Transcript: "we are ready to buy"}, calls.LeadQualityHot},
		{"maybe is warm", Input{Summary: "maybe next month"}, calls.LeadQualityWarm},
		// "not interested" contains "interested", so the warm rule fires first.
		{"not interested matches warm first", Input{Summary: "not interested"}, calls.LeadQualityWarm},
		{"no thanks", Input{Transcript: "no thank you"}, calls.LeadQualityUnqualified},
		{"unjoined", Input{EndReason: "unjoined"}, calls.LeadQualityUnqualified},
		{"system prompt counts", Input{SystemPrompt: "Ask if they are thinking of moving"}, calls.LeadQualityWarm},
		{"nothing", Input{Summary: "wrong number"}, calls.LeadQualityCold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LeadQuality(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDashboardCounters(t *testing.T) {
	if !MentionsAppointment("", "Booked an Appointment") || !MentionsAppointment("will Schedule", "") {
		t.Fatalf("expected appointment match")
	}
	if MentionsAppointment("appointment", "schedule") {
		t.Fatalf("fields are checked separately")
	}
	if !MentionsCallback("", "requested a CALLBACK") || !MentionsCallback("please call back", "") {
		t.Fatalf("expected callback match")
	}
	if MentionsCallback("callback", "") {
		t.Fatalf("summary only matches 'call back'")
	}
}
