package ingest

import (
	"regexp"
	"strings"

	"voice-call-dashboard/internal/calls"
)

const genericProspectName = "Real Estate Prospect"

var (
	projectNameRe = regexp.MustCompile(`(?i)regarding their new project.*?called\s+([^.]+)`)
	knownProjects = regexp.MustCompile(`(?i)(Kalpataru Srishti|Prestige Mira Road|Prestige Group)`)
)

// callerName returns the name to store for ev. Unknown callers on calls that carry a
// system prompt are named after the project the prompt mentions.
func callerName(ev Event) string {
	name := ev.CallerName
	if name == "" {
		name = calls.DefaultCallerName
	}
	if name != calls.DefaultCallerName || ev.SystemPrompt == "" {
		return name
	}
	if m := projectNameRe.FindStringSubmatch(ev.SystemPrompt); m != nil {
		if project := strings.TrimSpace(m[1]); project != "" {
			return "Prospect - " + project
		}
	}
	return genericProspectName
}

// propertyInterest prefers the supplied value, else joins every known project named in the prompt.
func propertyInterest(ev Event) string {
	if ev.PropertyInterest != "" || ev.SystemPrompt == "" {
		return ev.PropertyInterest
	}
	return strings.Join(knownProjects.FindAllString(ev.SystemPrompt, -1), ", ")
}

func agentNotes(ev Event) string {
	if ev.AgentNotes != "" {
		return ev.AgentNotes
	}
	reason := ev.EndReason
	if reason == "" {
		reason = "Unknown"
	}
	return "AI Agent Call - End Reason: " + reason
}
