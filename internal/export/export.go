package export

import (
	"github.com/pfrederiksen/stadium-fixtures/internal/calendar"
)

// Kind is the way an artifact is handed out
type Kind int

const (
	// Download delivers a calendar file
	Download Kind = iota
	// OpenLink sends the client to a hosted calendar link
	OpenLink
)

func (k Kind) String() string {
	switch k {
	case OpenLink:
		return "open_link"
	case Download:
		return "download"
	default:
		return "unknown"
	}
}

// Action describes one export. URL is set for OpenLink; Filename, ContentType and
// Body are set for Download.
type Action struct {
	Kind        Kind
	URL         string
	Filename    string
	ContentType string
	Body        []byte
}

// ForEvent picks the export action for a single event
func ForEvent(evt *calendar.Event, mobile bool) Action {
	if mobile {
		return Action{
			Kind: OpenLink,
			URL:  evt.GoogleCalendarURL(),
		}
	}

	return Action{
		Kind:        Download,
		Filename:    evt.Filename(),
		ContentType: calendar.ContentType,
		Body:        evt.Document().Bytes(),
	}
}

// ForDocument picks the export action for the combined document
func ForDocument(doc *calendar.Document) Action {
	return Action{
		Kind:        Download,
		Filename:    calendar.CombinedFilename,
		ContentType: calendar.ContentType,
		Body:        doc.Bytes(),
	}
}

// Dispatcher applies the export policy with an injected Classifier
type Dispatcher struct {
	Classifier Classifier
}

// NewDispatcher returns a Dispatcher using c, or UserAgentClassifier when c is nil
func NewDispatcher(c Classifier) *Dispatcher {
	if c == nil {
		c = UserAgentClassifier{}
	}
	return &Dispatcher{Classifier: c}
}

// Event classifies userAgent and returns the action for evt
func (d *Dispatcher) Event(evt *calendar.Event, userAgent string) Action {
	return ForEvent(evt, d.Classifier.IsMobile(userAgent))
}
