package models

import (
	"math"
	"time"
)

// ReviewerRole identifies one of the four fixed reviewer positions on a
// seminar. The role is derived from the seminar's reviewer-id fields, never
// supplied by clients.
type ReviewerRole string

const (
	RolePembimbing1 ReviewerRole = "pembimbing_1"
	RolePembimbing2 ReviewerRole = "pembimbing_2"
	RolePenguji1    ReviewerRole = "penguji_1"
	RolePenguji2    ReviewerRole = "penguji_2"
)

// Label returns the display name of the role.
func (r ReviewerRole) Label() string {
	switch r {
	case RolePembimbing1:
		return "Pembimbing 1"
	case RolePembimbing2:
		return "Pembimbing 2"
	case RolePenguji1:
		return "Penguji 1"
	case RolePenguji2:
		return "Penguji 2"
	}
	return string(r)
}

// ReviewStatus is the per-review decision state.
type ReviewStatus string

const (
	ReviewStatusMenunggu  ReviewStatus = "menunggu"
	ReviewStatusDireview  ReviewStatus = "direview"
	ReviewStatusDisetujui ReviewStatus = "disetujui"
	ReviewStatusDitolak   ReviewStatus = "ditolak"
	ReviewStatusRevisi    ReviewStatus = "revisi"
)

// Valid reports whether the status is a known review state.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusMenunggu, ReviewStatusDireview, ReviewStatusDisetujui, ReviewStatusDitolak, ReviewStatusRevisi:
		return true
	}
	return false
}

// Review is a single reviewer decision. At most one row may exist per
// (seminar, reviewer, role) triple.
type Review struct {
	ID         string       `db:"id" json:"id"`
	SeminarID  string       `db:"seminar_id" json:"seminar_id"`
	DosenID    string       `db:"dosen_id" json:"dosen_id"`
	Peran      ReviewerRole `db:"peran" json:"peran"`
	Status     ReviewStatus `db:"status" json:"status"`
	Catatan    *string      `db:"catatan" json:"catatan,omitempty"`
	FileReview *string      `db:"file_review" json:"file_review,omitempty"`

	NilaiKomponen1 *int     `db:"nilai_komponen_1" json:"nilai_komponen_1,omitempty"`
	NilaiKomponen2 *int     `db:"nilai_komponen_2" json:"nilai_komponen_2,omitempty"`
	NilaiKomponen3 *int     `db:"nilai_komponen_3" json:"nilai_komponen_3,omitempty"`
	NilaiKomponen4 *int     `db:"nilai_komponen_4" json:"nilai_komponen_4,omitempty"`
	NilaiKomponen5 *int     `db:"nilai_komponen_5" json:"nilai_komponen_5,omitempty"`
	NilaiAkhir     *float64 `db:"nilai_akhir" json:"nilai_akhir,omitempty"`

	TanggalAlternatif *time.Time `db:"tanggal_alternatif" json:"tanggal_alternatif,omitempty"`
	JamAlternatif     *string    `db:"jam_alternatif" json:"jam_alternatif,omitempty"`
	RuangAlternatif   *string    `db:"ruang_alternatif" json:"ruang_alternatif,omitempty"`

	TanggalReview  *time.Time `db:"tanggal_review" json:"tanggal_review,omitempty"`
	DeadlineReview *time.Time `db:"deadline_review" json:"deadline_review,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ComponentScores returns the five component score slots in order.
func (r *Review) ComponentScores() []*int {
	return []*int{r.NilaiKomponen1, r.NilaiKomponen2, r.NilaiKomponen3, r.NilaiKomponen4, r.NilaiKomponen5}
}

// RecomputeFinalScore derives nilai_akhir as the two-decimal average of the
// five component scores. The final score stays unset until every component
// is present.
func (r *Review) RecomputeFinalScore() {
	sum := 0
	for _, score := range r.ComponentScores() {
		if score == nil {
			r.NilaiAkhir = nil
			return
		}
		sum += *score
	}
	avg := math.Round(float64(sum)/5*100) / 100
	r.NilaiAkhir = &avg
}

// HasAlternate reports whether the reviewer proposed a substitute schedule.
func (r *Review) HasAlternate() bool {
	return r.TanggalAlternatif != nil
}

// ReviewDetail enriches a review with the reviewer's name for read APIs.
type ReviewDetail struct {
	Review
	DosenNama string `db:"dosen_nama" json:"dosen_nama"`
	PeranText string `json:"peran_text"`
}

// AlternateSchedule is a reviewer-proposed substitute slot, surfaced to the
// student when the reviewer cannot attend the scheduled one.
type AlternateSchedule struct {
	DosenNama  string       `json:"dosen_nama"`
	Peran      ReviewerRole `json:"peran"`
	Tanggal    time.Time    `json:"tanggal"`
	Jam        *string      `json:"jam,omitempty"`
	Ruang      *string      `json:"ruang,omitempty"`
	ProposedAt *time.Time   `json:"proposed_at,omitempty"`
}
