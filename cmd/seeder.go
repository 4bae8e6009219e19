package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"attendances", "schedule_users", "notifications", "audit_logs", "schedules", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		seedUsers := []struct {
			Username string
			FullName string
			Email    string
			RFID     string
			Role     string
		}{
			{"admin", "System Admin", "admin@mail.com", "RFID-ADMIN-001", "ADMIN"},
			{"budi", "Budi Santoso", "budi@mail.com", "RFID-0001", "STUDENT"},
			{"sari", "Sari Lestari", "sari@mail.com", "RFID-0002", "STUDENT"},
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}
			_, err := db.Exec(
				`INSERT INTO users (username, full_name, email, rfid_card, password_hash, role, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())`,
				u.Username, u.FullName, u.Email, u.RFID, string(hash), u.Role,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		today := time.Now()
		classStart := time.Date(today.Year(), today.Month(), today.Day(), 8, 0, 0, 0, today.Location())
		classEnd := classStart.Add(2 * time.Hour)

		var scheduleID int64
		err = db.QueryRow("SELECT id FROM schedules WHERE class_name = $1 AND schedule_date = $2", "XII-A", dateOnly(today)).Scan(&scheduleID)
		if err != nil {
			err = db.QueryRow(
				`INSERT INTO schedules (class_name, subject, instructor, room, schedule_date, start_time, end_time, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, true, now(), now()) RETURNING id`,
				"XII-A", "Mathematics", "Pak Agus", "R-101", dateOnly(today), classStart, classEnd,
			).Scan(&scheduleID)
			if err != nil {
				log.Fatalf("failed to insert schedule: %v", err)
			}
			fmt.Println("Seeded schedule XII-A Mathematics")
		}

		rows, err := db.Query("SELECT id FROM users WHERE role = 'STUDENT'")
		if err != nil {
			log.Fatalf("failed to list students: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var userID int64
			if err := rows.Scan(&userID); err != nil {
				log.Fatalf("failed to scan student id: %v", err)
			}
			_, err := db.Exec(
				`INSERT INTO schedule_users (user_id, schedule_id, created_at)
				 VALUES ($1, $2, now()) ON CONFLICT (user_id, schedule_id) DO NOTHING`,
				userID, scheduleID,
			)
			if err != nil {
				log.Fatalf("failed to assign user %d: %v", userID, err)
			}
		}

		fmt.Println("Seeding complete")
	},
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
