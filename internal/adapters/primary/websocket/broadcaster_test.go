package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/erp-backend/internal/core/domain"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestBroadcaster(reg *Registry) *Broadcaster {
	b := NewBroadcaster(reg, testLogger())
	b.now = func() time.Time { return fixedNow }
	return b
}

func TestBroadcaster_Emit(t *testing.T) {
	t.Run("invoice paid fans out to org, user, module and global in order", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		b := newTestBroadcaster(reg)

		// One connection joined to all four target rooms observes the
		// full fan-out sequence.
		client := newTestClient(reg, 3, 7)
		reg.Register(client)
		reg.Join(client, ModuleRoom(domain.CategoryInvoice))

		b.Emit(domain.CategoryInvoice, domain.EventPaid, 41,
			map[string]any{"id": int64(41), "amount": float64(1200), "clientName": "Acme Co"},
			&domain.EventMetadata{OrgID: 7, UserID: 3},
		)

		msgs := drain(client)
		require.Len(t, msgs, 4)

		// Org, user and module deliveries carry the enriched payload.
		for _, msg := range msgs[:3] {
			assert.Equal(t, "invoice:paid", msg.Event)

			payload, ok := msg.Payload.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(1200), payload["amount"])
			assert.Equal(t, "Acme Co", payload["clientName"])

			md, ok := payload["metadata"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "invoice:paid", md["eventName"])
			assert.Equal(t, int64(3), md["userId"])
			assert.Equal(t, int64(7), md["orgId"])
			assert.Equal(t, "2025-06-01T12:00:00Z", md["timestamp"])
		}

		// The global room gets the reduced envelope.
		assert.Equal(t, domain.GlobalEventName, msgs[3].Event)
		notice, ok := msgs[3].Payload.(domain.GlobalNotice)
		require.True(t, ok)
		assert.Equal(t, int64(41), notice.ID)
		assert.Equal(t, domain.CategoryInvoice, notice.Category)
		assert.Equal(t, domain.EventPaid, notice.Type)
		assert.Equal(t, "Invoice #41 paid $1200", notice.Summary)
	})

	t.Run("targets only module and global without metadata ids", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		b := newTestBroadcaster(reg)

		orgListener := newTestClient(reg, 1, 7)
		moduleListener := newTestClient(reg, 2, 0)
		reg.Register(orgListener)
		reg.Register(moduleListener)
		drain(orgListener) // discard nothing; rooms start empty
		reg.Join(moduleListener, ModuleRoom(domain.CategoryLead))

		assert.NotPanics(t, func() {
			b.Emit(domain.CategoryLead, domain.EventStatusChanged, 5,
				map[string]any{"id": int64(5), "status": "qualified"}, nil)
		})

		moduleMsgs := drain(moduleListener)
		require.Len(t, moduleMsgs, 2) // module room + global room
		assert.Equal(t, "lead:status_changed", moduleMsgs[0].Event)
		assert.Equal(t, domain.GlobalEventName, moduleMsgs[1].Event)

		// The org listener only sees the global envelope: no org room
		// delivery happened because the metadata carried no org id.
		orgMsgs := drain(orgListener)
		require.Len(t, orgMsgs, 1)
		assert.Equal(t, domain.GlobalEventName, orgMsgs[0].Event)
	})

	t.Run("metadata timestamp wins over emission time", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		b := newTestBroadcaster(reg)

		client := newTestClient(reg, 3, 0)
		reg.Register(client)

		explicit := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		b.Emit(domain.CategoryLead, domain.EventCreated, 1,
			map[string]any{"name": "Acme Co"},
			&domain.EventMetadata{UserID: 3, Timestamp: explicit},
		)

		msgs := drain(client)
		require.NotEmpty(t, msgs)
		payload := msgs[0].Payload.(map[string]any)
		md := payload["metadata"].(map[string]any)
		assert.Equal(t, "2025-01-02T03:04:05Z", md["timestamp"])
	})

	t.Run("extra metadata fields pass through", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		b := newTestBroadcaster(reg)

		client := newTestClient(reg, 3, 0)
		reg.Register(client)

		b.Emit(domain.CategoryLead, domain.EventUpdated, 1,
			map[string]any{"name": "Acme Co"},
			&domain.EventMetadata{UserID: 3, Extra: map[string]any{"requestId": "abc-123"}},
		)

		msgs := drain(client)
		require.NotEmpty(t, msgs)
		md := msgs[0].Payload.(map[string]any)["metadata"].(map[string]any)
		assert.Equal(t, "abc-123", md["requestId"])
	})

	t.Run("never panics on nil data", func(t *testing.T) {
		reg := NewRegistry(testLogger())
		b := newTestBroadcaster(reg)

		assert.NotPanics(t, func() {
			b.Emit(domain.CategoryUser, domain.EventDeleted, 9, nil, nil)
		})
	})

	t.Run("no-ops when registry is missing", func(t *testing.T) {
		b := newTestBroadcaster(nil)

		assert.NotPanics(t, func() {
			b.Emit(domain.CategoryInvoice, domain.EventPaid, 41,
				map[string]any{"amount": float64(1200)},
				&domain.EventMetadata{OrgID: 7, UserID: 3},
			)
		})
	})
}

func TestBroadcaster_TypedWrappers(t *testing.T) {
	lead := &domain.Lead{ID: 11, OrgID: 7, Name: "Acme Co", Status: domain.LeadStatusNew}
	techID := int64(5)
	job := &domain.DispatchJob{ID: 21, OrgID: 7, Title: "Install HVAC", Status: domain.DispatchAssigned, TechnicianID: &techID}
	invoice := &domain.Invoice{ID: 41, OrgID: 7, ClientName: "Acme Co", Amount: 1200, Status: domain.InvoicePaid}

	cases := []struct {
		name      string
		fire      func(b *Broadcaster)
		module    domain.EventCategory
		eventName string
	}{
		{"lead created", func(b *Broadcaster) { b.LeadCreated(lead, 3) }, domain.CategoryLead, "lead:created"},
		{"lead updated", func(b *Broadcaster) { b.LeadUpdated(lead, 3) }, domain.CategoryLead, "lead:updated"},
		{"lead status changed", func(b *Broadcaster) { b.LeadStatusChanged(lead, 3) }, domain.CategoryLead, "lead:status_changed"},
		{"dispatch created", func(b *Broadcaster) { b.DispatchCreated(job, 3) }, domain.CategoryDispatch, "dispatch:created"},
		{"dispatch assigned", func(b *Broadcaster) { b.DispatchAssigned(job, 3) }, domain.CategoryDispatch, "dispatch:assigned"},
		{"dispatch completed", func(b *Broadcaster) { b.DispatchCompleted(job, 3) }, domain.CategoryDispatch, "dispatch:completed"},
		{"invoice created", func(b *Broadcaster) { b.InvoiceCreated(invoice, 3) }, domain.CategoryInvoice, "invoice:created"},
		{"invoice paid", func(b *Broadcaster) { b.InvoicePaid(invoice, 3) }, domain.CategoryInvoice, "invoice:paid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry(testLogger())
			b := newTestBroadcaster(reg)

			listener := newTestClient(reg, 99, 0)
			reg.Register(listener)
			reg.Join(listener, ModuleRoom(tc.module))

			tc.fire(b)

			msgs := drain(listener)
			require.Len(t, msgs, 2) // module + global

			assert.Equal(t, tc.eventName, msgs[0].Event)
			md := msgs[0].Payload.(map[string]any)["metadata"].(map[string]any)
			assert.Equal(t, int64(3), md["userId"])
			assert.Equal(t, int64(7), md["orgId"])
		})
	}
}

func TestBroadcaster_SystemAlert(t *testing.T) {
	reg := NewRegistry(testLogger())
	b := newTestBroadcaster(reg)

	client := newTestClient(reg, 1, 0)
	reg.Register(client)
	reg.Join(client, ModuleRoom(domain.CategorySystem))

	b.SystemAlert("scheduled maintenance at midnight", "bogus-level")

	msgs := drain(client)
	require.Len(t, msgs, 2)

	assert.Equal(t, "system:alert", msgs[0].Event)
	payload := msgs[0].Payload.(map[string]any)
	assert.Equal(t, "scheduled maintenance at midnight", payload["message"])
	assert.Equal(t, "info", payload["type"], "unknown level coerced to info")

	notice := msgs[1].Payload.(domain.GlobalNotice)
	assert.Equal(t, "scheduled maintenance at midnight", notice.Summary)
}
