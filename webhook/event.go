package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind discriminates the two event shapes.
type Kind string

const (
	KindStateChange Kind = "state_change"
	KindAnalytics   Kind = "analytics"
)

// State-change types the platform is known to send.
const (
	TypeInvitationCreated   = "invitation.created"
	TypeInvitationAccepted  = "invitation.accepted"
	TypeInvitationRevoked   = "invitation.revoked"
	TypeInvitationReinvited = "invitation.reinvited"
)

// Event is a verified webhook delivery: *StateChangeEvent or *AnalyticsEvent.
type Event interface {
	Kind() Kind
	EventID() string
	// Label is the state-change type or the analytics event name.
	Label() string
	isEvent()
}

// StateChangeEvent notifies that a record changed on the platform.
type StateChangeEvent struct {
	ID            ID        `json:"id"`
	Type          string    `json:"type"`
	Timestamp     Timestamp `json:"timestamp"`
	AccountID     string    `json:"accountId"`
	EnvironmentID string    `json:"environmentId,omitempty"`
	SourceTable   string    `json:"sourceTable"`
	Operation     string    `json:"operation"`
	// Data is usually an object (map[string]any) but is kept as decoded.
	Data any `json:"data"`
}

func (e *StateChangeEvent) Kind() Kind      { return KindStateChange }
func (e *StateChangeEvent) EventID() string { return string(e.ID) }
func (e *StateChangeEvent) Label() string   { return e.Type }
func (e *StateChangeEvent) isEvent()        {}

// AnalyticsEvent carries client-side telemetry.
type AnalyticsEvent struct {
	ID                    ID        `json:"id"`
	Name                  string    `json:"name"`
	AccountID             string    `json:"accountId"`
	OrganizationID        string    `json:"organizationId,omitempty"`
	ProjectID             string    `json:"projectId,omitempty"`
	EnvironmentID         string    `json:"environmentId,omitempty"`
	DeploymentID          string    `json:"deploymentId,omitempty"`
	WidgetConfigurationID string    `json:"widgetConfigurationId,omitempty"`
	ForeignUserID         string    `json:"foreignUserId,omitempty"`
	SessionID             string    `json:"sessionId,omitempty"`
	Payload               any       `json:"payload,omitempty"`
	Platform              string    `json:"platform,omitempty"`
	Segmentation          any       `json:"segmentation,omitempty"`
	Timestamp             Timestamp `json:"timestamp"`
}

func (e *AnalyticsEvent) Kind() Kind      { return KindAnalytics }
func (e *AnalyticsEvent) EventID() string { return string(e.ID) }
func (e *AnalyticsEvent) Label() string   { return e.Name }
func (e *AnalyticsEvent) isEvent()        {}

// ID is an event identifier. The platform sends strings, but numeric and
// other literal ids are kept as their JSON text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		*id = ID(b)
	}
	return nil
}

// timestampLayouts are tried in order for string timestamps. Layouts without
// a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp decodes an ISO-8601 string or a Unix epoch number. Numbers at
// or above 1e12 are read as milliseconds. A value that matches no known
// form leaves Time zero and is kept verbatim in Raw.
type Timestamp struct {
	time.Time
	Raw string
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				return nil
			}
		}
		t.Raw = s
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		t.Raw = string(b)
		return nil
	}
	if f >= 1e12 {
		t.Time = time.UnixMilli(int64(f)).UTC()
		return nil
	}
	sec, frac := math.Modf(f)
	t.Time = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		if t.Raw != "" {
			return json.Marshal(t.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func classify(payload []byte, strict bool) (Event, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	_, hasName := fields["name"]
	_, hasType := fields["type"]

	switch {
	case hasName:
		var ev AnalyticsEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		return &ev, nil
	case !hasType && strict:
		return nil, ErrUnclassifiableEvent
	default:
		// TODO: drop the untyped fallback once the platform confirms every
		// state-change delivery carries "type".
		var ev StateChangeEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		return &ev, nil
	}
}
