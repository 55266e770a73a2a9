package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

const usage = "Usage: go run ./cmd/migrate [up|drop|seed|reset-teams]"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	case "reset-teams":
		if err := resetTeams(ctx, conn); err != nil {
			log.Fatalf("Failed to reset teams: %v", err)
		}
		fmt.Println("✅ Team assignments cleared")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS registrations CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS registrations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			year_of_study VARCHAR(10),
			has_team VARCHAR(10),
			team_name VARCHAR(255),
			team_members TEXT[] NOT NULL DEFAULT '{}',
			experience_level VARCHAR(20),
			skills TEXT[] NOT NULL DEFAULT '{}',
			other_skills TEXT,
			additional_notes TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'approved', 'rejected')),
			registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_email ON registrations(LOWER(email))`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_status ON registrations(status)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_team_name ON registrations(team_name) WHERE team_name IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_registered_at ON registrations(registered_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

type seedRegistration struct {
	fullName   string
	email      string
	year       string
	teamName   string
	experience string
	skills     []string
	status     string
}

var seedRegistrations = []seedRegistration{
	{"Lina Benali", "lina.benali@example.com", "L1", "Alpha", "Beginner", []string{"Web Development"}, "approved"},
	{"Yacine Merah", "yacine.merah@example.com", "L2", "Alpha", "Advanced", []string{"AI/ML"}, "approved"},
	{"Sara Kaci", "sara.kaci@example.com", "L3", "Byte Me", "Intermediate", []string{"Web Development", "UI/UX Design"}, "pending"},
	{"Rayan Amrani", "rayan.amrani@example.com", "L2", "Byte Me", "Intermediate", []string{"Mobile Development", "Cloud Computing"}, "pending"},
	{"Nour Haddad", "nour.haddad@example.com", "L3", "Byte Me", "Advanced", []string{"Cybersecurity", "DevOps"}, "pending"},
	{"Imene Saidi", "imene.saidi@example.com", "L1", "", "Beginner", []string{"UI/UX Design", "Game Development"}, "pending"},
	{"Adam Belkacem", "adam.belkacem@example.com", "L2", "", "Intermediate", []string{"Cloud Computing", "Data Science"}, "pending"},
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		INSERT INTO registrations (full_name, email, year_of_study, has_team, team_name,
			experience_level, skills, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		ON CONFLICT ((LOWER(email))) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			year_of_study = EXCLUDED.year_of_study,
			has_team = EXCLUDED.has_team,
			team_name = EXCLUDED.team_name,
			experience_level = EXCLUDED.experience_level,
			skills = EXCLUDED.skills,
			status = EXCLUDED.status
	`

	batch := &pgx.Batch{}
	for _, s := range seedRegistrations {
		hasTeam := "no"
		if s.teamName != "" {
			hasTeam = "yes"
		}
		batch.Queue(query, s.fullName, strings.ToLower(s.email), s.year, hasTeam, s.teamName, s.experience, s.skills, s.status)
	}

	if err := conn.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to seed registrations: %w", err)
	}

	fmt.Printf("  Seeded %d registrations\n", len(seedRegistrations))
	return nil
}

// resetTeams puts everyone back in the solo pool, used between dry runs of team formation
func resetTeams(ctx context.Context, conn *pgx.Conn) error {
	tag, err := conn.Exec(ctx, `
		UPDATE registrations
		SET has_team = 'no', team_name = NULL, status = 'pending'
		WHERE team_name IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("failed to reset teams: %w", err)
	}

	fmt.Printf("  Cleared %d team assignments\n", tag.RowsAffected())
	return nil
}

func getTableName(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
