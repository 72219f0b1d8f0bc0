// Package events declares the payloads published through the transactional
// outbox. Payloads are versioned implicitly by their event_type string.
package events

import "time"

const (
	WorkerLifecycleTopic      = "worker.lifecycle"
	PayrollRecalculationTopic = "payroll.recalculation"
)

type WorkerRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	Rut        string    `json:"rut"`
	OccurredAt time.Time `json:"occurred_at"`
}

type WorkerDisengagedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type WorkerReactivatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PayrollRecalculationEvent signals that the cached salary calculation for
// an employment file is stale and must be recomputed.
type PayrollRecalculationEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	EmploymentFileID string    `json:"employment_file_id"`
	Reason           string    `json:"reason"`
	OccurredAt       time.Time `json:"occurred_at"`
}

const (
	TypeWorkerRegistered     = "worker_registered"
	TypeWorkerDisengaged     = "worker_disengaged"
	TypeWorkerReactivated    = "worker_reactivated"
	TypePayrollRecalculation = "payroll_recalculation_requested"
)
