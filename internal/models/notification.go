package models

import (
	"encoding/json"
	"time"
)

// Notification types mirror the badge styling used by clients.
const (
	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeWarning = "warning"
)

// Notification categories group messages by originating workflow.
const (
	NotificationCategoryPendaftaran = "pendaftaran"
	NotificationCategoryReview      = "review"
	NotificationCategoryJadwal      = "jadwal"
)

// Notification is an in-app message produced as a side effect of the
// registration and review workflows. Delivery is fire-and-forget; failures
// never block the primary operation.
type Notification struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	SeminarID *string         `db:"seminar_id" json:"seminar_id,omitempty"`
	Judul     string          `db:"judul" json:"judul"`
	Pesan     string          `db:"pesan" json:"pesan"`
	Tipe      string          `db:"tipe" json:"tipe"`
	Kategori  string          `db:"kategori" json:"kategori"`
	Metadata  json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	Dibaca    bool            `db:"dibaca" json:"dibaca"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
