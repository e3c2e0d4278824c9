package domain

import (
	"time"
)

// SyncState representa o estado do orquestrador de sincronização de gasto
// de anúncios. Os estados terminais sempre voltam para Idle depois que o
// resumo é consumido.
type SyncState string

const (
	SyncStateIdle            SyncState = "idle"
	SyncStateRunning         SyncState = "running"
	SyncStateCompleted       SyncState = "completed"
	SyncStatePartiallyFailed SyncState = "partially_failed"
)

// SyncOutcome é o resultado de uma tarefa de sincronização (marca, plataforma)
type SyncOutcome struct {
	BrandCode string     `json:"brand_code"`
	Platform  AdPlatform `json:"platform"`
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
}

// SyncFailure identifica uma tarefa que falhou, com o rótulo da plataforma
// e a mensagem de erro
type SyncFailure struct {
	PlatformLabel string `json:"platform_label"`
	Message       string `json:"message"`
}

// SyncSummary agrega os resultados de uma execução completa de sincronização
type SyncSummary struct {
	State        SyncState      `json:"state"`
	SuccessCount int            `json:"success_count"`
	FailCount    int            `json:"fail_count"`
	Outcomes     []*SyncOutcome `json:"outcomes"`
	Failures     []SyncFailure  `json:"failures,omitempty"`
	FirstError   string         `json:"first_error,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}
