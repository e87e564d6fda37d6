package extract

import (
	"strings"
	"time"
)

// Message is one mail message within a thread.
type Message struct {
	From    string
	Subject string
	Body    string
	Date    time.Time
}

// Thread is an enumerable mail thread with a stable key used for at-most-once
// ingestion tracking.
type Thread struct {
	Key      string
	Messages []Message
}

// Original returns the first message in the thread sent by sender whose
// subject contains the marker phrase, which is the intake form submission
// itself rather than a reply or forward. Sender matching tolerates display
// names ("Intake Forms <forms@example.edu>"); both comparisons are
// case-insensitive.
func (t Thread) Original(sender, marker string) (Message, bool) {
	lowerSender := strings.ToLower(sender)
	lowerMarker := strings.ToLower(marker)
	for _, m := range t.Messages {
		if !strings.Contains(strings.ToLower(m.From), lowerSender) {
			continue
		}
		if !strings.Contains(strings.ToLower(m.Subject), lowerMarker) {
			continue
		}
		return m, true
	}
	return Message{}, false
}
