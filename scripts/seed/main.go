// Command seed provisions a development database with demo accounts and an
// initial quota ledger. It is idempotent: existing rows are left alone.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/pkg/config"
	"github.com/noah-isme/simseminar-api/pkg/database"
)

type account struct {
	nama        string
	email       string
	username    string
	role        models.UserRole
	npm         string
	konsentrasi string
}

var accounts = []account{
	{nama: "Administrator", email: "admin@simseminar.local", username: "admin", role: models.RoleAdmin},
	{nama: "Dr. Sari Wijaya", email: "sari@simseminar.local", username: "sari", role: models.RoleDosen},
	{nama: "Dr. Tono Prasetyo", email: "tono@simseminar.local", username: "tono", role: models.RoleDosen},
	{nama: "Dr. Rina Kusuma", email: "rina@simseminar.local", username: "rina", role: models.RoleDosen},
	{nama: "Dr. Agus Halim", email: "agus@simseminar.local", username: "agus", role: models.RoleDosen},
	{nama: "Budi Santoso", email: "budi@simseminar.local", username: "budi", role: models.RoleMahasiswa, npm: "1915061001", konsentrasi: "RPL"},
}

func main() {
	var (
		password   string
		quotaTotal int
	)
	flag.StringVar(&password, "password", "password123", "password for all seeded accounts")
	flag.IntVar(&quotaTotal, "quota", 20, "initial quota total per category")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	for _, acc := range accounts {
		if err := seedAccount(ctx, db, acc, string(hash)); err != nil {
			log.Fatalf("failed to seed %s: %v", acc.username, err)
		}
	}

	for _, category := range models.AllCategories {
		if err := seedQuota(ctx, db, category, quotaTotal); err != nil {
			log.Fatalf("failed to seed quota for %s: %v", category, err)
		}
	}

	log.Printf("seeded %d accounts and %d quota categories", len(accounts), len(models.AllCategories))
}

func seedAccount(ctx context.Context, db *sqlx.DB, acc account, passwordHash string) error {
	var npm, konsentrasi *string
	if acc.npm != "" {
		npm = &acc.npm
	}
	if acc.konsentrasi != "" {
		konsentrasi = &acc.konsentrasi
	}

	now := time.Now().UTC()
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, nama, email, username, password_hash, role, npm, konsentrasi, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9)
		ON CONFLICT (username) DO NOTHING`,
		uuid.NewString(), acc.nama, acc.email, acc.username, passwordHash, acc.role, npm, konsentrasi, now)
	return err
}

func seedQuota(ctx context.Context, db *sqlx.DB, category models.SeminarCategory, total int) error {
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx, `
		INSERT INTO kuota_seminar (id, jenis_seminar, tanggal, kuota_total, kuota_terpakai, kuota_tersisa, aktif, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, 0, $3, TRUE, $4, $4)
		ON CONFLICT (jenis_seminar) WHERE aktif DO NOTHING`,
		uuid.NewString(), category, total, now)
	return err
}
