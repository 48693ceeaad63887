package ws

import (
	"encoding/json"
	"time"
)

// JobsUpdatedEvent tells connected clients the posting catalog changed and
// they should re-fetch.
type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// Events publishes domain events over a hub.
type Events struct {
	hub *Hub
}

func NewEvents(hub *Hub) *Events {
	return &Events{hub: hub}
}

// JobsUpdated broadcasts a jobs_updated event. source says what changed
// the catalog ("post" or a feed name) and count how many postings.
func (e *Events) JobsUpdated(source string, count int) {
	if e == nil || e.hub == nil {
		return
	}
	evt := JobsUpdatedEvent{
		Type:      "jobs_updated",
		Source:    source,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	e.hub.Broadcast(b)
}
