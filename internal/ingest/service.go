package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/classify"
	"voice-call-dashboard/internal/pricing"
	"voice-call-dashboard/pkg/logger"
)

// Service turns inbound call events into stored CallRecords.
//
// Contract:
//   - Items are processed sequentially; each stored record is committed on its own.
//   - A failed item never stops the rest of the batch.
//   - The duplicate-id check runs against a snapshot read once per batch. It is not atomic
//     with the insert, so concurrent batches can race on the same id.
type Service struct {
	store     calls.Store
	estimator pricing.Estimator
	clock     func() time.Time
	newID     IDFunc
}

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Estimator pricing.Estimator
	Clock     func() time.Time
	NewID     IDFunc
}

func NewService(store calls.Store, opts Options) *Service {
	s := &Service{
		store:     store,
		estimator: opts.Estimator,
		clock:     opts.Clock,
		newID:     opts.NewID,
	}
	if s.estimator.PerMinute.Sign() <= 0 {
		s.estimator = pricing.Estimator{PerMinute: pricing.DefaultPerMinute}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = NewCallID
	}
	return s
}

// Process ingests every item of one request.
func (s *Service) Process(ctx context.Context, items []json.RawMessage) BatchResult {
	log := logger.From(ctx)
	res := BatchResult{Total: len(items), Errors: []ItemError{}, SavedIDs: []string{}}

	snapshot, err := s.store.ListAll(ctx)
	if err != nil {
		log.Warn("duplicate check snapshot unavailable", "err", err)
		snapshot = nil
	}
	log.Debug("duplicate check snapshot", "existing", len(snapshot), "items", len(items))

	for i, raw := range items {
		out := s.processItem(ctx, log, raw, snapshot)
		switch {
		case out.err != nil:
			res.Failed++
			res.Errors = append(res.Errors, *out.err)
			log.Warn("call item failed", "index", i, "id", out.err.ID, "error", out.err.Error)
		case out.skipped:
			res.Skipped++
			log.Info("call already stored; skipping", "id", out.rec.ID)
		default:
			res.Saved++
			res.SavedIDs = append(res.SavedIDs, out.rec.ID)
			snapshot = append(snapshot, out.rec)
			log.Info("call saved", "id", out.rec.ID, "duration_s", out.rec.Duration, "cost", out.rec.Cost)
		}
	}
	return res
}

type itemOutcome struct {
	rec     calls.CallRecord
	skipped bool
	err     *ItemError
}

func (s *Service) processItem(ctx context.Context, log *slog.Logger, raw json.RawMessage, snapshot []calls.CallRecord) (out itemOutcome) {
	id := "unknown"
	defer func() {
		if p := recover(); p != nil {
			log.Error("panic while processing call item", "id", id, "panic", p)
			out = itemOutcome{err: failed(id, fmt.Errorf("%v", p))}
		}
	}()

	ev, err := Normalize(raw)
	if err != nil {
		return itemOutcome{err: failed(id, err)}
	}
	if ev.Shape == ShapeProvider {
		log.Debug("provider payload detected", "call_id", ev.ProviderCallID)
	}

	candidate := ev.ID
	if candidate == "" {
		candidate = s.newID()
	}
	name := truncate(callerName(ev), calls.MaxCallerNameLen)
	id = Resolve(candidate, name, snapshot, s.newID)
	if id != candidate {
		log.Info("duplicate call id for a different caller; minted new id", "old_id", candidate, "new_id", id)
	}

	rec, err := s.Build(ev, id, name)
	if err != nil {
		if errors.Is(err, ErrInvalidTimestamp) {
			return itemOutcome{err: &ItemError{
				ID:      id,
				Error:   fmt.Sprintf("Invalid date format in call data (ID: %s)", id),
				Details: fmt.Sprintf("Start: %s, End: %s", stringify(ev.Start), stringify(ev.End)),
			}}
		}
		return itemOutcome{err: failed(id, err)}
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return itemOutcome{err: failed(id, err)}
	}
	if exists {
		return itemOutcome{rec: rec, skipped: true}
	}

	ok, err := s.store.Insert(ctx, rec)
	if err != nil {
		return itemOutcome{err: failed(id, err)}
	}
	if !ok {
		return itemOutcome{err: failed(id, ErrSaveRejected)}
	}
	return itemOutcome{rec: rec}
}

func failed(id string, err error) *ItemError {
	return &ItemError{ID: id, Error: "Failed to process call: " + err.Error()}
}

// Build derives the stored record for ev under id. name is the resolved caller name.
func (s *Service) Build(ev Event, id, name string) (calls.CallRecord, error) {
	now := s.clock()
	start, err := parseTimestamp(ev.Start, now)
	if err != nil {
		return calls.CallRecord{}, err
	}
	end, err := parseTimestamp(ev.End, now)
	if err != nil {
		return calls.CallRecord{}, err
	}

	duration := durationSeconds(start, end)
	if billed, ok := billedSeconds(ev.BilledDuration); ok {
		duration = billed
	}

	var followUp *time.Time
	if len(ev.FollowUpDate) > 0 {
		t, err := parseTimestamp(ev.FollowUpDate, now)
		if err != nil {
			return calls.CallRecord{}, fmt.Errorf("follow_up_date: %w", err)
		}
		followUp = &t
	}

	in := classify.Input{
		EndReason:    ev.EndReason,
		SuccessFlag:  ev.Success,
		Summary:      ev.Summary,
		Transcript:   ev.Transcript,
		SystemPrompt: ev.SystemPrompt,
	}

	providerID := ev.ProviderCallID
	if providerID == "" {
		providerID = id
	}

	return calls.CallRecord{
		ID:               id,
		CallerName:       truncate(name, calls.MaxCallerNameLen),
		Phone:            truncate(ev.Phone, calls.MaxPhoneLen),
		CallStart:        start,
		CallEnd:          end,
		Duration:         duration,
		Transcript:       truncate(ev.Transcript, calls.MaxTextLen),
		Summary:          truncate(ev.Summary, calls.MaxTextLen),
		SuccessFlag:      ev.Success,
		Cost:             s.estimator.Resolve(parseAmount(ev.Cost), duration),
		ClientStatus:     classify.ClientStatus(in),
		PropertyInterest: propertyInterest(ev),
		LeadQuality:      classify.LeadQuality(in),
		FollowUpDate:     followUp,
		AgentNotes:       agentNotes(ev),
		ProviderCallID:   providerID,
	}, nil
}
