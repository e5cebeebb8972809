package calls

import "time"

// CallRecord is the canonical persisted representation of one completed voice-AI call.
//
// Invariants:
// - ID is unique across the store and never changes once stored.
// - String fields are truncated to their column bounds before persistence.
// - Duration and Cost are never negative.
//
// Records are insert-only. There is no update or delete path.
type CallRecord struct {
	ID         string    `json:"id" db:"id"`
	CallerName string    `json:"caller_name" db:"caller_name"`
	Phone      string    `json:"phone" db:"phone"`
	CallStart  time.Time `json:"call_start" db:"call_start"`
	CallEnd    time.Time `json:"call_end" db:"call_end"`

	// Duration is in whole seconds.
	Duration int `json:"duration" db:"duration"`

	Transcript string `json:"transcript" db:"transcript"`
	Summary    string `json:"summary" db:"summary"`

	// SuccessFlag is tri-state: nil means the outcome is unknown.
	SuccessFlag *bool `json:"success_flag" db:"success_flag"`

	// Cost has 4-decimal precision (DECIMAL(10,4) in Postgres).
	Cost float64 `json:"cost" db:"cost"`

	ClientStatus     ClientStatus `json:"client_status" db:"client_status"`
	PropertyInterest string       `json:"property_interest" db:"property_interest"`
	LeadQuality      LeadQuality  `json:"lead_quality" db:"lead_quality"`
	FollowUpDate     *time.Time   `json:"follow_up_date,omitempty" db:"follow_up_date"`
	AgentNotes       string       `json:"agent_notes" db:"agent_notes"`

	// ProviderCallID is the upstream provider's own identifier. It differs from ID
	// when a collision forced a fresh local identifier.
	ProviderCallID string `json:"ultravox_call_id" db:"ultravox_call_id"`
}

type ClientStatus string

const (
	ClientStatusInterested           ClientStatus = "interested"
	ClientStatusNotInterested        ClientStatus = "not_interested"
	ClientStatusCallbackRequested    ClientStatus = "callback_requested"
	ClientStatusAppointmentScheduled ClientStatus = "appointment_scheduled"
	ClientStatusNoAnswer             ClientStatus = "no_answer"
	ClientStatusUnknown              ClientStatus = "unknown"
)

type LeadQuality string

const (
	LeadQualityHot         LeadQuality = "hot"
	LeadQualityWarm        LeadQuality = "warm"
	LeadQualityCold        LeadQuality = "cold"
	LeadQualityUnqualified LeadQuality = "unqualified"
)

// Field bounds applied before persistence.
const (
	MaxCallerNameLen = 255
	MaxPhoneLen      = 50
	MaxTextLen       = 10000
)

// DefaultCallerName is used when the event carries no caller name.
const DefaultCallerName = "Unknown Caller"

// Lead is a contact row from the separate Leads table.
// It is unrelated in structure to CallRecord; the JSON keys match the table's column names.
type Lead struct {
	OwnerName *string `json:"Owner Name"`
	MobileNo  *int64  `json:"Mobile No"`
}
