package headlines

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notice for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

const (
	// EmptyResultTimeout is how long the empty-result notice stays visible.
	EmptyResultTimeout = 4 * time.Second
	// FailureTimeout is how long a fetch failure notice stays visible.
	FailureTimeout = 8 * time.Second
)

// Notice is a user-facing message about an error or informational event. A
// zero Timeout means the notice stays until replaced.
type Notice struct {
	ID       uuid.UUID     `json:"id"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Timeout  time.Duration `json:"timeout"`
}

// Persistent reports whether the notice never auto-dismisses.
func (n Notice) Persistent() bool {
	return n.Timeout == 0
}

func newNotice(message string, severity Severity, timeout time.Duration) Notice {
	return Notice{
		ID:       uuid.New(),
		Message:  message,
		Severity: severity,
		Timeout:  timeout,
	}
}

// ConfigurationNotice is shown instead of fetching when the API key is
// missing or still the placeholder.
func ConfigurationNotice() Notice {
	return newNotice("You must set your NewsAPI API key before fetching.", SeverityWarning, 0)
}

// EmptyResultNotice is shown when a fetch succeeds with no articles.
func EmptyResultNotice() Notice {
	return newNotice("No articles found for the selected filters.", SeverityInfo, EmptyResultTimeout)
}

// FailureNotice wraps a fetch error for display.
func FailureNotice(err error) Notice {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return newNotice("Failed to fetch news: "+message, SeverityDanger, FailureTimeout)
}
