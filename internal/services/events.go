package services

import "log"

// EventPublisher publishes mutation events to the message broker. The
// RabbitMQ client satisfies this; a nil publisher disables publishing.
type EventPublisher interface {
	PublishEvent(event string, payload map[string]interface{}) error
}

// publishEvent fires a best-effort event. Publishing failures are logged and
// never fail the request that triggered them.
func publishEvent(events EventPublisher, event string, payload map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
