package models

// Event is one recorded occurrence: a QR scan or a client-reported action.
// Rows are immutable once written; the events table is append-only for the
// lifetime of the process.
type Event struct {
	Timestamp int64  `json:"ts" db:"ts"` // milliseconds since epoch, assigned at ingestion
	ClientIP  string `json:"ip" db:"ip"`
	UserAgent string `json:"ua" db:"ua"`
	Kind      string `json:"kind" db:"kind"`
	SessionID string `json:"session_id" db:"session_id"`
}

// Stats is the aggregate summary served to the admin dashboard.
type Stats struct {
	TotalScans    int64   `json:"total_scans"`
	UniqueDevices int64   `json:"unique_devices"`
	LastEvents    []Event `json:"last_events"`
}

// WebSocketMessage represents a message sent via WebSocket
type WebSocketMessage struct {
	Type  string `json:"type"` // event
	Event *Event `json:"event"`
}
