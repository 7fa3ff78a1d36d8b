package models

import "time"

// QuotaEntry is a per-category capacity counter, optionally scoped to a
// date. Remaining is always recomputed from total and used when the row is
// written; it is never adjusted independently.
type QuotaEntry struct {
	ID        string          `db:"id" json:"id"`
	Jenis     SeminarCategory `db:"jenis_seminar" json:"jenis_seminar"`
	Tanggal   *time.Time      `db:"tanggal" json:"tanggal,omitempty"`
	Total     int             `db:"kuota_total" json:"kuota_total"`
	Terpakai  int             `db:"kuota_terpakai" json:"kuota_terpakai"`
	Tersisa   int             `db:"kuota_tersisa" json:"kuota_tersisa"`
	Aktif     bool            `db:"aktif" json:"aktif"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// QuotaInfo is the public quota snapshot for one category.
type QuotaInfo struct {
	Total    int  `json:"total"`
	Terpakai int  `json:"terpakai"`
	Tersisa  int  `json:"tersisa"`
	Aktif    bool `json:"aktif"`
}

// QuotaMap keys quota snapshots by seminar category.
type QuotaMap map[SeminarCategory]QuotaInfo
