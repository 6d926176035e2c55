package websocket

import (
	"log/slog"
	"time"

	"github.com/lorrc/erp-backend/internal/core/domain"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// Broadcaster translates structured domain events into registry multicasts.
// It is a convenience layer, not a consistency-critical one: every failure
// mode is absorbed and logged locally, and no call ever raises an error
// into the REST handler that triggered it.
type Broadcaster struct {
	registry *Registry
	logger   *slog.Logger

	// now is swappable for tests
	now func() time.Time
}

// Ensure Broadcaster implements the EventBroadcaster port.
var _ ports.EventBroadcaster = (*Broadcaster)(nil)

// NewBroadcaster creates an event broadcaster over the given registry.
// The registry may be nil when the real-time layer failed to start; every
// emission then logs an error and no-ops so REST traffic keeps flowing.
func NewBroadcaster(registry *Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger.With("component", "event_broadcaster"),
		now:      time.Now,
	}
}

// Emit fans a domain event out to every room scope implied by its
// metadata: the owning organization, the target user, the module room for
// the category, and the global room with a reduced envelope. The four
// steps run in that fixed order but are independent; a failure in one is
// logged and does not prevent the others.
func (b *Broadcaster) Emit(category domain.EventCategory, eventType domain.EventType, subjectID int64, data map[string]any, meta *domain.EventMetadata) {
	if b.registry == nil {
		b.logger.Error("registry not initialised, dropping event",
			"event", domain.EventName(category, eventType),
			"subject_id", subjectID,
		)
		return
	}

	eventName := domain.EventName(category, eventType)

	ts := b.now()
	if meta != nil && !meta.Timestamp.IsZero() {
		ts = meta.Timestamp
	}
	timestamp := ts.UTC().Format(time.RFC3339)

	payload := buildPayload(data, meta, eventName, timestamp)

	if meta != nil && meta.OrgID != 0 {
		b.deliver(OrgRoom(meta.OrgID), eventName, payload)
	}
	if meta != nil && meta.UserID != 0 {
		b.deliver(UserRoom(meta.UserID), eventName, payload)
	}
	b.deliver(ModuleRoom(category), eventName, payload)

	notice := domain.GlobalNotice{
		ID:        subjectID,
		Category:  category,
		Type:      eventType,
		Timestamp: timestamp,
		Summary:   domain.Summarize(category, eventType, subjectID, data),
	}
	b.deliver(GlobalRoom(), domain.GlobalEventName, notice)
}

// buildPayload shallow-merges the event data with a metadata block.
func buildPayload(data map[string]any, meta *domain.EventMetadata, eventName, timestamp string) map[string]any {
	payload := make(map[string]any, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}

	md := make(map[string]any)
	if meta != nil {
		for k, v := range meta.Extra {
			md[k] = v
		}
		if meta.UserID != 0 {
			md["userId"] = meta.UserID
		}
		if meta.OrgID != 0 {
			md["orgId"] = meta.OrgID
		}
	}
	md["timestamp"] = timestamp
	md["eventName"] = eventName

	payload["metadata"] = md
	return payload
}

// deliver performs one multicast step, absorbing any panic so the
// remaining steps still run.
func (b *Broadcaster) deliver(room Room, eventName string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("multicast step failed",
				"room", room.Name(),
				"event", eventName,
				"panic", r,
			)
		}
	}()

	b.registry.Multicast(room, eventName, payload)
}

// --- Typed convenience wrappers ---
//
// Thin argument-shape adapters over Emit: each fixes the category/type
// pair and builds the metadata from the entity and acting user. They carry
// no behavior beyond that.

// LeadCreated announces a new CRM lead.
func (b *Broadcaster) LeadCreated(lead *domain.Lead, actorID int64) {
	b.Emit(domain.CategoryLead, domain.EventCreated, lead.ID, lead.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: lead.OrgID})
}

// LeadUpdated announces a change to a lead's fields.
func (b *Broadcaster) LeadUpdated(lead *domain.Lead, actorID int64) {
	b.Emit(domain.CategoryLead, domain.EventUpdated, lead.ID, lead.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: lead.OrgID})
}

// LeadStatusChanged announces a lead moving through the pipeline.
func (b *Broadcaster) LeadStatusChanged(lead *domain.Lead, actorID int64) {
	b.Emit(domain.CategoryLead, domain.EventStatusChanged, lead.ID, lead.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: lead.OrgID})
}

// DispatchCreated announces a new field-service job.
func (b *Broadcaster) DispatchCreated(job *domain.DispatchJob, actorID int64) {
	b.Emit(domain.CategoryDispatch, domain.EventCreated, job.ID, job.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: job.OrgID})
}

// DispatchAssigned announces a job handed to a technician.
func (b *Broadcaster) DispatchAssigned(job *domain.DispatchJob, actorID int64) {
	b.Emit(domain.CategoryDispatch, domain.EventAssigned, job.ID, job.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: job.OrgID})
}

// DispatchCompleted announces a finished job.
func (b *Broadcaster) DispatchCompleted(job *domain.DispatchJob, actorID int64) {
	b.Emit(domain.CategoryDispatch, domain.EventCompleted, job.ID, job.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: job.OrgID})
}

// InvoiceCreated announces a newly issued invoice.
func (b *Broadcaster) InvoiceCreated(invoice *domain.Invoice, actorID int64) {
	b.Emit(domain.CategoryInvoice, domain.EventCreated, invoice.ID, invoice.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: invoice.OrgID})
}

// InvoicePaid announces a settled invoice.
func (b *Broadcaster) InvoicePaid(invoice *domain.Invoice, actorID int64) {
	b.Emit(domain.CategoryInvoice, domain.EventPaid, invoice.ID, invoice.Snapshot(),
		&domain.EventMetadata{UserID: actorID, OrgID: invoice.OrgID})
}

// SystemAlert broadcasts an operational notice to every listener.
// Level must be "info" or "error"; anything else is coerced to "info".
func (b *Broadcaster) SystemAlert(message, level string) {
	if level != "info" && level != "error" {
		level = "info"
	}
	b.Emit(domain.CategorySystem, domain.EventAlert, 0, map[string]any{
		"message": message,
		"type":    level,
	}, nil)
}
