package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// summaryKey indexes the template table by (category, type).
type summaryKey struct {
	category  EventCategory
	eventType EventType
}

// summaryTemplates maps known (category, type) pairs to a short
// human-readable line for the global feed. Each template pulls at most one
// or two fields out of the event data; missing fields degrade to "#<id>"
// or an empty string, never an error.
var summaryTemplates = map[summaryKey]func(id int64, data map[string]any) string{
	{CategoryLead, EventCreated}: func(id int64, data map[string]any) string {
		return "New lead created: " + entityLabel(data, id)
	},
	{CategoryLead, EventUpdated}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Lead %s updated", entityLabel(data, id))
	},
	{CategoryLead, EventStatusChanged}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Lead %s status changed to %s", entityLabel(data, id), dataString(data, "status"))
	},
	{CategoryLead, EventAssigned}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Lead %s assigned", entityLabel(data, id))
	},
	{CategoryDispatch, EventCreated}: func(id int64, data map[string]any) string {
		return "New dispatch job: " + entityLabel(data, id)
	},
	{CategoryDispatch, EventAssigned}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Dispatch %s assigned", entityLabel(data, id))
	},
	{CategoryDispatch, EventCompleted}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Dispatch %s completed", entityLabel(data, id))
	},
	{CategoryDispatch, EventStatusChanged}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Dispatch %s status changed to %s", entityLabel(data, id), dataString(data, "status"))
	},
	{CategoryInvoice, EventCreated}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Invoice #%d created for %s", id, amountLabel(data))
	},
	{CategoryInvoice, EventPaid}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Invoice #%d paid %s", id, amountLabel(data))
	},
	{CategoryUser, EventCreated}: func(id int64, data map[string]any) string {
		return "New user: " + entityLabel(data, id)
	},
	{CategoryClient, EventCreated}: func(id int64, data map[string]any) string {
		return "New client: " + entityLabel(data, id)
	},
	{CategoryClient, EventUpdated}: func(id int64, data map[string]any) string {
		return fmt.Sprintf("Client %s updated", entityLabel(data, id))
	},
	{CategorySystem, EventAlert}: func(id int64, data map[string]any) string {
		if msg := dataString(data, "message"); msg != "" {
			return msg
		}
		return "System alert"
	},
}

// Summarize produces the one-line summary carried by the global envelope.
// It is a pure lookup and never panics: unmapped (category, type) pairs
// fall back to a generic "<category> was <type>" string.
func Summarize(category EventCategory, eventType EventType, id int64, data map[string]any) string {
	if tmpl, ok := summaryTemplates[summaryKey{category, eventType}]; ok {
		return strings.TrimSpace(tmpl(id, data))
	}
	return fmt.Sprintf("%s was %s", category, eventType)
}

// entityLabel returns a display name for the event subject, falling back
// to "#<id>" when the data carries none.
func entityLabel(data map[string]any, id int64) string {
	for _, key := range []string{"name", "clientName", "title", "fullName"} {
		if s := dataString(data, key); s != "" {
			return s
		}
	}
	return "#" + strconv.FormatInt(id, 10)
}

// dataString pulls a string field out of the event data, returning ""
// for missing or non-string values.
func dataString(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// amountLabel formats a monetary amount out of the event data as "$1200"
// or "$1200.5", trimming trailing zeros. A missing or non-numeric amount
// degrades to "$0".
func amountLabel(data map[string]any) string {
	if data == nil {
		return "$0"
	}
	switch v := data["amount"].(type) {
	case float64:
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return "$" + strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return "$" + strconv.Itoa(v)
	case int64:
		return "$" + strconv.FormatInt(v, 10)
	default:
		return "$0"
	}
}
