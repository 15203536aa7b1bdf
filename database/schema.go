package database

import (
	"database/sql"
	"fmt"
)

// enumTypes : types énumérés PostgreSQL du schéma.
// Le bloc DO avance malgré un duplicate_object, ce qui rend la création ré-exécutable.
var enumTypes = []struct {
	name   string
	values string
}{
	{"segment_enum", "'Consumer', 'Corporate', 'Home Office'"},
	{"region_enum", "'East', 'West', 'Central', 'South'"},
	{"ship_mode_enum", "'First Class', 'Second Class', 'Standard Class', 'Same Day'"},
}

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		category_id SERIAL PRIMARY KEY,
		category_name VARCHAR(100) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subcategories (
		subcategory_id SERIAL PRIMARY KEY,
		category_id INTEGER NOT NULL REFERENCES categories(category_id),
		subcategory_name VARCHAR(100) NOT NULL,
		UNIQUE (category_id, subcategory_name)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id VARCHAR(50) PRIMARY KEY,
		customer_name VARCHAR(255),
		segment segment_enum,
		country VARCHAR(100),
		city VARCHAR(100),
		state VARCHAR(100),
		postal_code VARCHAR(20),
		region region_enum
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id VARCHAR(50) PRIMARY KEY,
		category_id INTEGER NOT NULL REFERENCES categories(category_id),
		subcategory_id INTEGER NOT NULL REFERENCES subcategories(subcategory_id),
		product_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id VARCHAR(50) PRIMARY KEY,
		order_date DATE,
		ship_date DATE,
		ship_mode ship_mode_enum,
		customer_id VARCHAR(50) REFERENCES customers(customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id BIGSERIAL PRIMARY KEY,
		order_id VARCHAR(50) REFERENCES orders(order_id),
		product_id VARCHAR(50) REFERENCES products(product_id),
		seller_id VARCHAR(50),
		sales DECIMAL(12,4) DEFAULT 0,
		quantity INTEGER DEFAULT 0,
		discount DECIMAL(4,2) DEFAULT 0,
		profit DECIMAL(12,4) DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		seller_id VARCHAR(50) PRIMARY KEY,
		seller_name VARCHAR(255),
		seller_email VARCHAR(255),
		seller_phone VARCHAR(20),
		seller_region region_enum,
		seller_rating DECIMAL(3,2),
		join_date DATE
	)`,
}

// EnsureSchema crée les types énumérés et les tables si absents.
// Purement additif : aucune migration, aucun DROP, ré-exécutable sans risque.
func EnsureSchema(db *sql.DB) error {
	for _, et := range enumTypes {
		stmt := fmt.Sprintf(`DO $$ BEGIN
			CREATE TYPE %s AS ENUM (%s);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;`, et.name, et.values)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("création type %s: %w", et.name, err)
		}
	}

	for _, stmt := range tableStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("création table: %w", err)
		}
	}
	return nil
}
