// Package main provides a CLI tool for preparing the database schema and
// seeding it with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/auth"
	"agroplan/internal/infrastructure/storage/postgres"
	"agroplan/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := ensureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema is up to date")

	companyID, err := seedCompany(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed company", "error", err)
	}

	adminID, err := seedAdminUser(ctx, pool, log, companyID)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		if err := printAccessToken(log, secret, adminID, companyID); err != nil {
			log.Fatalw("failed to mint access token", "error", err)
		}
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, companyID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// ensureSchema creates all tables when they do not exist yet.
func ensureSchema(ctx context.Context, pool *postgres.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS farms (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS plots (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			farm_id UUID NOT NULL REFERENCES farms(id),
			name TEXT NOT NULL,
			hectares DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cycles (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL,
			product TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cycle_plots (
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			plot_id UUID NOT NULL REFERENCES plots(id),
			PRIMARY KEY (cycle_id, plot_id)
		)`,
		`CREATE TABLE IF NOT EXISTS varieties (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL,
			product TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS grain_harvests (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			plot_id UUID NOT NULL REFERENCES plots(id),
			product TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			harvest_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seed_harvests (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			plot_id UUID NOT NULL REFERENCES plots(id),
			product TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			harvest_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS beneficiations (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			product TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			processed_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS grain_stocks (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			farm_id UUID NOT NULL REFERENCES farms(id),
			product TEXT NOT NULL,
			quantity DOUBLE PRECISION,
			unit TEXT NOT NULL DEFAULT 'kg',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS seed_stocks (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			variety_id UUID NOT NULL REFERENCES varieties(id),
			quantity DOUBLE PRECISION,
			unit TEXT NOT NULL DEFAULT 'kg',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS input_stocks (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			quantity DOUBLE PRECISION,
			unit TEXT NOT NULL DEFAULT 'kg',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS fuel_tanks (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL,
			capacity_liters DOUBLE PRECISION NOT NULL,
			current_liters DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS grain_sales (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			quantity DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			sale_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seed_sales (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			cycle_id UUID NOT NULL REFERENCES cycles(id),
			quantity DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			sale_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS input_purchases (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			description TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			purchase_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS general_expenses (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			description TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			expense_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS machines (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS refuels (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			machine_id UUID NOT NULL REFERENCES machines(id),
			volume_liters DOUBLE PRECISION NOT NULL,
			refuel_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS maintenances (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			machine_id UUID NOT NULL REFERENCES machines(id),
			cost DOUBLE PRECISION NOT NULL,
			maintenance_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fuel_purchases (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			volume_liters DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			purchase_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			kind TEXT NOT NULL,
			counterparty TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			due_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
		)`,
		`CREATE TABLE IF NOT EXISTS rainfalls (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id),
			millimeters DOUBLE PRECISION NOT NULL,
			reading_date TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

func seedCompany(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	companyName := os.Getenv("COMPANY_NAME")
	if companyName == "" {
		companyName = "Fazenda Demo"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM companies WHERE name = $1`,
		companyName,
	).Scan(&existingID)
	if err == nil {
		log.Infow("company already exists", "name", companyName, "company_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check company exists: %w", err)
	}

	companyID := id.New()
	if _, err := pool.Exec(ctx,
		`INSERT INTO companies (id, name) VALUES ($1, $2)`,
		companyID, companyName,
	); err != nil {
		return id.Nil(), fmt.Errorf("insert company: %w", err)
	}

	log.Infow("company created", "name", companyName, "company_id", companyID)
	return companyID, nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger, companyID id.ID) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@agroplan.io"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	if _, err := pool.Exec(ctx, `
		INSERT INTO users (id, company_id, email, password_hash, name, is_admin)
		VALUES ($1, $2, $3, $4, 'Administrator', true)
	`, userID, companyID, adminEmail, string(passwordHash)); err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

// printAccessToken mints a ready-to-use token for the admin user so the API
// can be exercised right after seeding.
func printAccessToken(log *logger.Logger, secret string, userID, companyID id.ID) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@agroplan.io"
	}

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(secret))
	token, expiresAt, err := jwtService.GenerateAccessToken(
		userID.String(), companyID.String(), adminEmail, "Administrator",
		[]string{"admin"}, true,
	)
	if err != nil {
		return err
	}

	log.Infow("access token for admin user", "token", token, "expires_at", expiresAt.Format(time.RFC3339))
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, companyID id.ID) error {
	log.Info("seeding demo data...")

	var count int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM farms WHERE company_id = $1`, companyID,
	).Scan(&count); err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	now := time.Now()

	// Farm, plots, cycle
	farmID := id.New()
	if _, err := pool.Exec(ctx,
		`INSERT INTO farms (id, company_id, name) VALUES ($1, $2, $3)`,
		farmID, companyID, "Fazenda Santa Clara",
	); err != nil {
		return fmt.Errorf("insert farm: %w", err)
	}

	plots := []struct {
		name     string
		hectares float64
	}{
		{"Talhão 1", 120},
		{"Talhão 2", 85.5},
		{"Talhão 3", 64},
	}
	plotIDs := make([]id.ID, 0, len(plots))
	for _, p := range plots {
		plotID := id.New()
		if _, err := pool.Exec(ctx,
			`INSERT INTO plots (id, company_id, farm_id, name, hectares) VALUES ($1, $2, $3, $4, $5)`,
			plotID, companyID, farmID, p.name, p.hectares,
		); err != nil {
			return fmt.Errorf("insert plot: %w", err)
		}
		plotIDs = append(plotIDs, plotID)
	}

	cycleID := id.New()
	cycleStart := now.AddDate(0, -4, 0)
	cycleEnd := now.AddDate(0, 2, 0)
	if _, err := pool.Exec(ctx, `
		INSERT INTO cycles (id, company_id, name, product, active, start_date, end_date)
		VALUES ($1, $2, $3, $4, true, $5, $6)
	`, cycleID, companyID, "Safra 2026", "soybean", cycleStart, cycleEnd); err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	for _, plotID := range plotIDs {
		if _, err := pool.Exec(ctx,
			`INSERT INTO cycle_plots (cycle_id, plot_id) VALUES ($1, $2)`,
			cycleID, plotID,
		); err != nil {
			return fmt.Errorf("insert cycle plot: %w", err)
		}
	}

	// Varieties and stocks
	varietyID := id.New()
	if _, err := pool.Exec(ctx,
		`INSERT INTO varieties (id, company_id, name, product) VALUES ($1, $2, $3, $4)`,
		varietyID, companyID, "BRS 284", "soybean",
	); err != nil {
		return fmt.Errorf("insert variety: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO seed_stocks (id, company_id, variety_id, quantity) VALUES ($1, $2, $3, $4)`,
		id.New(), companyID, varietyID, 80.0,
	); err != nil {
		return fmt.Errorf("insert seed stock: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO grain_stocks (id, company_id, farm_id, product, quantity) VALUES ($1, $2, $3, $4, $5)`,
		id.New(), companyID, farmID, "soybean", 185000.0,
	); err != nil {
		return fmt.Errorf("insert grain stock: %w", err)
	}
	inputs := []struct {
		name     string
		category string
		quantity float64
	}{
		{"Glyphosate", "defensive", 40},
		{"NPK 4-14-8", "fertilizer", 0},
	}
	for _, in := range inputs {
		if _, err := pool.Exec(ctx,
			`INSERT INTO input_stocks (id, company_id, name, category, quantity) VALUES ($1, $2, $3, $4, $5)`,
			id.New(), companyID, in.name, in.category, in.quantity,
		); err != nil {
			return fmt.Errorf("insert input stock: %w", err)
		}
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO fuel_tanks (id, company_id, name, capacity_liters, current_liters) VALUES ($1, $2, $3, $4, $5)`,
		id.New(), companyID, "Tanque Diesel 1", 15000.0, 1200.0,
	); err != nil {
		return fmt.Errorf("insert fuel tank: %w", err)
	}

	// Harvests and beneficiation inside the cycle
	harvestDate := now.AddDate(0, -1, 0)
	for i, plotID := range plotIDs {
		if _, err := pool.Exec(ctx, `
			INSERT INTO grain_harvests (id, company_id, cycle_id, plot_id, product, quantity, harvest_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id.New(), companyID, cycleID, plotID, "soybean", 3500.0*float64(i+1), harvestDate); err != nil {
			return fmt.Errorf("insert grain harvest: %w", err)
		}
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO seed_harvests (id, company_id, cycle_id, plot_id, product, quantity, harvest_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id.New(), companyID, cycleID, plotIDs[0], "soybean", 900.0, harvestDate); err != nil {
		return fmt.Errorf("insert seed harvest: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO beneficiations (id, company_id, cycle_id, product, quantity, processed_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id.New(), companyID, cycleID, "soybean", 14200.0, harvestDate.AddDate(0, 0, 7)); err != nil {
		return fmt.Errorf("insert beneficiation: %w", err)
	}

	// Machines and operations
	machines := []string{"Trator John Deere 6110J", "Colheitadeira Case 5130"}
	machineIDs := make([]id.ID, 0, len(machines))
	for _, name := range machines {
		machineID := id.New()
		if _, err := pool.Exec(ctx,
			`INSERT INTO machines (id, company_id, name) VALUES ($1, $2, $3)`,
			machineID, companyID, name,
		); err != nil {
			return fmt.Errorf("insert machine: %w", err)
		}
		machineIDs = append(machineIDs, machineID)
	}
	for i, machineID := range machineIDs {
		if _, err := pool.Exec(ctx, `
			INSERT INTO refuels (id, company_id, machine_id, volume_liters, refuel_date)
			VALUES ($1, $2, $3, $4, $5)
		`, id.New(), companyID, machineID, 180.0*float64(i+1), now.AddDate(0, 0, -10)); err != nil {
			return fmt.Errorf("insert refuel: %w", err)
		}
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO maintenances (id, company_id, machine_id, cost, maintenance_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id.New(), companyID, machineIDs[0], 4200.0, now.AddDate(0, 0, -20)); err != nil {
		return fmt.Errorf("insert maintenance: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO fuel_purchases (id, company_id, volume_liters, amount, purchase_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id.New(), companyID, 5000.0, 29500.0, now.AddDate(0, -1, 0)); err != nil {
		return fmt.Errorf("insert fuel purchase: %w", err)
	}

	// Commercial and financial records
	if _, err := pool.Exec(ctx, `
		INSERT INTO grain_sales (id, company_id, cycle_id, quantity, amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id.New(), companyID, cycleID, 120000.0, 216000.0, now.AddDate(0, 0, -15)); err != nil {
		return fmt.Errorf("insert grain sale: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO seed_sales (id, company_id, cycle_id, quantity, amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id.New(), companyID, cycleID, 600.0, 7800.0, now.AddDate(0, 0, -12)); err != nil {
		return fmt.Errorf("insert seed sale: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO input_purchases (id, company_id, description, amount, purchase_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id.New(), companyID, "Fertilizer restock", 38000.0, now.AddDate(0, -2, 0)); err != nil {
		return fmt.Errorf("insert input purchase: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO general_expenses (id, company_id, description, amount, expense_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id.New(), companyID, "Electricity", 5600.0, now.AddDate(0, -1, -5)); err != nil {
		return fmt.Errorf("insert general expense: %w", err)
	}

	accounts := []struct {
		kind         string
		counterparty string
		amount       float64
		dueDate      time.Time
		status       string
	}{
		{"payable", "Agro Insumos Ltda", 18500, now.AddDate(0, 0, 10), "pending"},
		{"payable", "Posto Rural", 9200, now.AddDate(0, 0, -5), "overdue"},
		{"receivable", "Cooperativa Central", 54000, now.AddDate(0, 0, 12), "pending"},
		{"receivable", "Moinho União", 21000, now.AddDate(0, -1, 0), "paid"},
	}
	for _, a := range accounts {
		if _, err := pool.Exec(ctx, `
			INSERT INTO accounts (id, company_id, kind, counterparty, amount, due_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id.New(), companyID, a.kind, a.counterparty, a.amount, a.dueDate, a.status); err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
	}

	for i := 0; i < 6; i++ {
		if _, err := pool.Exec(ctx, `
			INSERT INTO rainfalls (id, company_id, millimeters, reading_date)
			VALUES ($1, $2, $3, $4)
		`, id.New(), companyID, 8.0+float64(i*3), now.AddDate(0, 0, -i*7)); err != nil {
			return fmt.Errorf("insert rainfall: %w", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
