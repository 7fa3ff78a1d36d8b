package models

import "time"

// SeminarCategory enumerates the five registrable seminar types.
type SeminarCategory string

const (
	CategoryProposal SeminarCategory = "seminar_proposal"
	CategoryHasil    SeminarCategory = "seminar_hasil"
	CategoryKP       SeminarCategory = "seminar_kp"
	CategoryUmum     SeminarCategory = "seminar_umum"
	CategorySkripsi  SeminarCategory = "sidang_skripsi"
)

// AllCategories lists categories in presentation order.
var AllCategories = []SeminarCategory{
	CategoryProposal,
	CategoryHasil,
	CategoryKP,
	CategoryUmum,
	CategorySkripsi,
}

// Valid reports whether the category is one of the five known types.
func (c SeminarCategory) Valid() bool {
	switch c {
	case CategoryProposal, CategoryHasil, CategoryKP, CategoryUmum, CategorySkripsi:
		return true
	}
	return false
}

// Label returns the human readable name used on dashboards.
func (c SeminarCategory) Label() string {
	switch c {
	case CategoryProposal:
		return "Seminar Proposal"
	case CategoryHasil:
		return "Seminar Hasil"
	case CategoryKP:
		return "Seminar Kerja Praktek"
	case CategoryUmum:
		return "Seminar Umum"
	case CategorySkripsi:
		return "Sidang Skripsi"
	}
	return string(c)
}

// SeminarStatus is the seminar lifecycle state. After creation it is written
// exclusively by the review aggregator; selesai is set by an admin override.
type SeminarStatus string

const (
	SeminarStatusPending   SeminarStatus = "pending"
	SeminarStatusDisetujui SeminarStatus = "disetujui"
	SeminarStatusDitolak   SeminarStatus = "ditolak"
	SeminarStatusSelesai   SeminarStatus = "selesai"
)

// Label returns the human readable status text.
func (s SeminarStatus) Label() string {
	switch s {
	case SeminarStatusPending:
		return "Menunggu Review"
	case SeminarStatusDisetujui:
		return "Disetujui"
	case SeminarStatusDitolak:
		return "Ditolak"
	case SeminarStatusSelesai:
		return "Selesai"
	}
	return string(s)
}

// Seminar is the aggregate root of a registration. Reviewer slots map to the
// four fixed roles; pembimbing_1 is the only slot required at registration.
type Seminar struct {
	ID            string          `db:"id" json:"id"`
	MahasiswaID   string          `db:"mahasiswa_id" json:"mahasiswa_id"`
	Pembimbing1ID string          `db:"pembimbing_1_id" json:"pembimbing_1_id"`
	Pembimbing2ID *string         `db:"pembimbing_2_id" json:"pembimbing_2_id,omitempty"`
	Penguji1ID    *string         `db:"penguji_1_id" json:"penguji_1_id,omitempty"`
	Penguji2ID    *string         `db:"penguji_2_id" json:"penguji_2_id,omitempty"`
	Judul         string          `db:"judul_seminar" json:"judul_seminar"`
	Jenis         SeminarCategory `db:"jenis_seminar" json:"jenis_seminar"`
	Abstrak       string          `db:"abstrak" json:"abstrak"`
	FileProposal  *string         `db:"file_proposal" json:"file_proposal,omitempty"`

	TanggalSeminar *time.Time `db:"tanggal_seminar" json:"tanggal_seminar,omitempty"`
	JamMulai       *string    `db:"jam_mulai" json:"jam_mulai,omitempty"`
	JamSelesai     *string    `db:"jam_selesai" json:"jam_selesai,omitempty"`
	RuangSeminar   *string    `db:"ruang_seminar" json:"ruang_seminar,omitempty"`

	Status     SeminarStatus `db:"status" json:"status"`
	Catatan    *string       `db:"catatan" json:"catatan,omitempty"`
	Nilai      *string       `db:"nilai" json:"nilai,omitempty"`
	NilaiAngka *float64      `db:"nilai_angka" json:"nilai_angka,omitempty"`

	TanggalDaftar  time.Time  `db:"tanggal_daftar" json:"tanggal_daftar"`
	TanggalReview  *time.Time `db:"tanggal_review" json:"tanggal_review,omitempty"`
	TanggalSelesai *time.Time `db:"tanggal_selesai" json:"tanggal_selesai,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// RoleOf resolves which reviewer role the given user occupies on this
// seminar. Slots are checked in fixed priority order; the first match wins.
// An empty result means the user is not a reviewer here.
func (s *Seminar) RoleOf(userID string) ReviewerRole {
	if userID == "" {
		return ""
	}
	if s.Pembimbing1ID == userID {
		return RolePembimbing1
	}
	if s.Pembimbing2ID != nil && *s.Pembimbing2ID == userID {
		return RolePembimbing2
	}
	if s.Penguji1ID != nil && *s.Penguji1ID == userID {
		return RolePenguji1
	}
	if s.Penguji2ID != nil && *s.Penguji2ID == userID {
		return RolePenguji2
	}
	return ""
}

// ReviewerIDs returns the assigned reviewer ids keyed by role, in role order.
func (s *Seminar) ReviewerIDs() []ReviewerSlot {
	slots := []ReviewerSlot{{Role: RolePembimbing1, UserID: s.Pembimbing1ID}}
	if s.Pembimbing2ID != nil {
		slots = append(slots, ReviewerSlot{Role: RolePembimbing2, UserID: *s.Pembimbing2ID})
	}
	if s.Penguji1ID != nil {
		slots = append(slots, ReviewerSlot{Role: RolePenguji1, UserID: *s.Penguji1ID})
	}
	if s.Penguji2ID != nil {
		slots = append(slots, ReviewerSlot{Role: RolePenguji2, UserID: *s.Penguji2ID})
	}
	return slots
}

// ReviewerSlot pairs an assigned reviewer with the role the slot carries.
type ReviewerSlot struct {
	Role   ReviewerRole
	UserID string
}

// SeminarDetail enriches a seminar with participant names for read APIs.
type SeminarDetail struct {
	Seminar
	MahasiswaNama   string  `db:"mahasiswa_nama" json:"mahasiswa_nama"`
	MahasiswaNPM    *string `db:"mahasiswa_npm" json:"mahasiswa_npm,omitempty"`
	Pembimbing1Nama *string `db:"pembimbing_1_nama" json:"pembimbing_1_nama,omitempty"`
	Pembimbing2Nama *string `db:"pembimbing_2_nama" json:"pembimbing_2_nama,omitempty"`
	Penguji1Nama    *string `db:"penguji_1_nama" json:"penguji_1_nama,omitempty"`
	Penguji2Nama    *string `db:"penguji_2_nama" json:"penguji_2_nama,omitempty"`
}

// SeminarView is the detail payload returned to clients, with nested reviews
// and any reviewer-proposed alternate schedules.
type SeminarView struct {
	SeminarDetail
	JenisText  string              `json:"jenis_seminar_text"`
	StatusText string              `json:"status_text"`
	Reviews    []ReviewDetail      `json:"reviews"`
	Alternates []AlternateSchedule `json:"alternates,omitempty"`
}

// SeminarFilter scopes seminar listings.
type SeminarFilter struct {
	MahasiswaID string
	ReviewerID  string
	Status      SeminarStatus
	Jenis       SeminarCategory
}

// SeminarStatusCounts aggregates seminar counts per lifecycle state.
type SeminarStatusCounts struct {
	Total     int `db:"total" json:"total"`
	Disetujui int `db:"disetujui" json:"disetujui"`
	Pending   int `db:"pending" json:"pending"`
	Ditolak   int `db:"ditolak" json:"ditolak"`
}

// CategoryStat aggregates per-category counts for the admin dashboard.
type CategoryStat struct {
	Jenis SeminarCategory `db:"jenis_seminar" json:"jenis_seminar"`
	SeminarStatusCounts
}

// MonthlyStat summarises registrations in a calendar month.
type MonthlyStat struct {
	Month     string `db:"month" json:"month"`
	MonthName string `db:"-" json:"month_name"`
	SeminarStatusCounts
}
