package db

import (
	"context"
	"fmt"
	"strings"
)

// Bootstrap ensures every table and index the service depends on exists. All
// statements are additive: create-if-missing plus column upgrades that only
// ever add, never drop or rewrite data. The caller is expected to log a
// failure and keep serving; with a missing schema the service degrades to
// failing data-dependent requests instead of refusing to start.
func Bootstrap(ctx context.Context, d *DB) error {
	for _, stmt := range schemaStatements(d.Driver()) {
		if _, err := d.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	for _, stmt := range columnUpgrades(d.Driver()) {
		if _, err := d.Exec(ctx, stmt); err != nil && !isDuplicateColumn(err) {
			return fmt.Errorf("bootstrap column upgrade: %w", err)
		}
	}
	return nil
}

func schemaStatements(driver string) []string {
	if driver == DriverPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// columnUpgrades holds additive ALTERs for columns introduced after the table
// shipped. Sqlite has no ADD COLUMN IF NOT EXISTS, so the duplicate-column
// error is swallowed instead.
func columnUpgrades(driver string) []string {
	if driver == DriverPostgres {
		return []string{
			`ALTER TABLE inspections ADD COLUMN IF NOT EXISTS status VARCHAR(20) DEFAULT 'completed'`,
		}
	}
	return []string{
		`ALTER TABLE inspections ADD COLUMN status TEXT DEFAULT 'completed'`,
	}
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column")
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inspections (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		type VARCHAR(50) NOT NULL,
		data JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'completed',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	// superseded per-type tables, kept so older deployments keep their data
	`CREATE TABLE IF NOT EXISTS lidar_inspections (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id),
		bridge_no VARCHAR(255) NOT NULL,
		chainage VARCHAR(255) NOT NULL,
		project_name VARCHAR(255) NOT NULL,
		location TEXT,
		scan_date DATE,
		operator_name VARCHAR(255),
		equipment_used VARCHAR(255),
		scan_density VARCHAR(255),
		accuracy VARCHAR(255),
		point_cloud_data TEXT,
		measurements TEXT,
		findings TEXT,
		recommendations TEXT,
		photos JSONB,
		latitude DECIMAL(10, 8),
		longitude DECIMAL(11, 8),
		state VARCHAR(255),
		zone VARCHAR(255),
		structure_type VARCHAR(255),
		structural_measurements JSONB,
		technical_scope JSONB,
		structure_layout TEXT,
		layout_legends JSONB,
		distress_nomenclature JSONB,
		observations_lhs JSONB,
		observations_rhs JSONB,
		non_structural_observations JSONB,
		distress_photos JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sar_inspections (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id),
		bridge_no VARCHAR(255) NOT NULL,
		chainage VARCHAR(255) NOT NULL,
		project_name VARCHAR(255) NOT NULL,
		location TEXT,
		inspection_date DATE,
		inspector_name VARCHAR(255),
		equipment_used VARCHAR(255),
		methodology TEXT,
		findings TEXT,
		recommendations TEXT,
		photos JSONB,
		latitude DECIMAL(10, 8),
		longitude DECIMAL(11, 8),
		state VARCHAR(255),
		zone VARCHAR(255),
		structure_type VARCHAR(255),
		structural_assessment JSONB,
		material_condition JSONB,
		corrosion_assessment JSONB,
		crack_analysis JSONB,
		spalling_analysis JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_inspections_user_id ON inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inspections_created_at ON inspections(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_lidar_user_id ON lidar_inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lidar_bridge_no ON lidar_inspections(bridge_no)`,
	`CREATE INDEX IF NOT EXISTS idx_sar_user_id ON sar_inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sar_bridge_no ON sar_inspections(bridge_no)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inspections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		data TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'completed',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lidar_inspections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER REFERENCES users(id),
		bridge_no TEXT NOT NULL,
		chainage TEXT NOT NULL,
		project_name TEXT NOT NULL,
		location TEXT,
		scan_date TEXT,
		operator_name TEXT,
		equipment_used TEXT,
		scan_density TEXT,
		accuracy TEXT,
		point_cloud_data TEXT,
		measurements TEXT,
		findings TEXT,
		recommendations TEXT,
		photos TEXT,
		latitude REAL,
		longitude REAL,
		state TEXT,
		zone TEXT,
		structure_type TEXT,
		structural_measurements TEXT,
		technical_scope TEXT,
		structure_layout TEXT,
		layout_legends TEXT,
		distress_nomenclature TEXT,
		observations_lhs TEXT,
		observations_rhs TEXT,
		non_structural_observations TEXT,
		distress_photos TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sar_inspections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER REFERENCES users(id),
		bridge_no TEXT NOT NULL,
		chainage TEXT NOT NULL,
		project_name TEXT NOT NULL,
		location TEXT,
		inspection_date TEXT,
		inspector_name TEXT,
		equipment_used TEXT,
		methodology TEXT,
		findings TEXT,
		recommendations TEXT,
		photos TEXT,
		latitude REAL,
		longitude REAL,
		state TEXT,
		zone TEXT,
		structure_type TEXT,
		structural_assessment TEXT,
		material_condition TEXT,
		corrosion_assessment TEXT,
		crack_analysis TEXT,
		spalling_analysis TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_inspections_user_id ON inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inspections_created_at ON inspections(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_lidar_user_id ON lidar_inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lidar_bridge_no ON lidar_inspections(bridge_no)`,
	`CREATE INDEX IF NOT EXISTS idx_sar_user_id ON sar_inspections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sar_bridge_no ON sar_inspections(bridge_no)`,
}
