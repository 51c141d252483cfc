package staging

import (
	"time"

	"github.com/Jeffail/gabs"
)

// Activity is one entry of a repository's activity timeline, covering
// a single transition attempt. The nested events payload varies
// between server versions and rule sets, so it is kept untyped and
// picked apart with gabs where needed.
type Activity struct {
	Name    string      `json:"name"`
	Started time.Time   `json:"started,omitempty"`
	Stopped time.Time   `json:"stopped,omitempty"`
	Events  interface{} `json:"events,omitempty"`
}

// RuleFailures collects the human-readable rule failure messages from
// an activity timeline. These are what the server has to say when a
// close is rejected, e.g. a missing signature or javadoc jar.
func RuleFailures(timeline []Activity) []string {
	var failures []string
	for _, entry := range timeline {
		events, err := gabs.Consume(entry.Events)
		if err != nil {
			continue
		}
		children, err := events.Children()
		if err != nil {
			continue
		}
		for _, event := range children {
			if name, _ := event.Path("name").Data().(string); name != "ruleFailed" {
				continue
			}
			props, err := event.Path("properties").Children()
			if err != nil {
				continue
			}
			for _, prop := range props {
				if name, _ := prop.Path("name").Data().(string); name != "failureMessage" {
					continue
				}
				if msg, ok := prop.Path("value").Data().(string); ok {
					failures = append(failures, msg)
				}
			}
		}
	}
	return failures
}
