package mysql

import (
	"database/sql"
	"fmt"
)

// Bootstrap creates the schema if it does not exist. Statements run in
// dependency order; party and catalog foreign keys use ON DELETE RESTRICT
// so referenced rows cannot be removed while orders or archives point at
// them.
func Bootstrap(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS realization_types (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dishes (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(10,2)
	)`,

	`CREATE TABLE IF NOT EXISTS inventories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(10,2)
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS category_dishes (
		category_id INT UNSIGNED NOT NULL,
		dish_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (category_id, dish_id),
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE,
		FOREIGN KEY (dish_id) REFERENCES dishes(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS menus (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(10,2)
	)`,

	`CREATE TABLE IF NOT EXISTS menu_categories (
		menu_id INT UNSIGNED NOT NULL,
		category_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (menu_id, category_id),
		FOREIGN KEY (menu_id) REFERENCES menus(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS addresses (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		city VARCHAR(50) NOT NULL,
		street VARCHAR(50) NOT NULL,
		house_number VARCHAR(10) NOT NULL,
		postal_code VARCHAR(10),
		apartment VARCHAR(10),
		note TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		tax_id VARCHAR(20) NOT NULL,
		UNIQUE KEY uq_companies_tax_id (tax_id)
	)`,

	`CREATE TABLE IF NOT EXISTS company_addresses (
		company_id INT UNSIGNED NOT NULL,
		address_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (company_id, address_id),
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE,
		FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		phone VARCHAR(30),
		email VARCHAR(150),
		document_id VARCHAR(30) NOT NULL,
		document_type ENUM('national_id', 'passport', 'id_card', 'other') NOT NULL,
		UNIQUE KEY uq_clients_document (document_id, document_type)
	)`,

	`CREATE TABLE IF NOT EXISTS client_companies (
		client_id INT UNSIGNED NOT NULL,
		company_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (client_id, company_id),
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_date DATETIME,
		created_at DATETIME NOT NULL,
		people_count INT UNSIGNED NOT NULL,
		realization_type_id INT UNSIGNED NOT NULL,
		address_id INT UNSIGNED,
		company_id INT UNSIGNED,
		client_id INT UNSIGNED,
		status ENUM('pending', 'completed', 'cancelled') NOT NULL DEFAULT 'pending',
		cancel_reason TEXT,
		total_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		FOREIGN KEY (realization_type_id) REFERENCES realization_types(id) ON DELETE RESTRICT,
		FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE RESTRICT,
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE RESTRICT,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS order_dishes (
		order_id INT UNSIGNED NOT NULL,
		dish_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (order_id, dish_id),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (dish_id) REFERENCES dishes(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS order_inventories (
		order_id INT UNSIGNED NOT NULL,
		inventory_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (order_id, inventory_id),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (inventory_id) REFERENCES inventories(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS archived_dishes (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		UNIQUE KEY uq_archived_dishes_name_price (name, price)
	)`,

	`CREATE TABLE IF NOT EXISTS archived_inventories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		UNIQUE KEY uq_archived_inventories_name_price (name, price)
	)`,

	`CREATE TABLE IF NOT EXISTS archived_orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_date DATETIME,
		created_at DATETIME NOT NULL,
		people_count INT UNSIGNED NOT NULL,
		realization_type_id INT UNSIGNED NOT NULL,
		address_id INT UNSIGNED,
		company_id INT UNSIGNED,
		client_id INT UNSIGNED,
		status ENUM('completed', 'cancelled') NOT NULL,
		cancel_reason TEXT,
		total_price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (realization_type_id) REFERENCES realization_types(id) ON DELETE RESTRICT,
		FOREIGN KEY (address_id) REFERENCES addresses(id) ON DELETE RESTRICT,
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE RESTRICT,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS archived_order_dishes (
		archived_order_id INT UNSIGNED NOT NULL,
		archived_dish_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (archived_order_id, archived_dish_id),
		FOREIGN KEY (archived_order_id) REFERENCES archived_orders(id) ON DELETE CASCADE,
		FOREIGN KEY (archived_dish_id) REFERENCES archived_dishes(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS archived_order_inventories (
		archived_order_id INT UNSIGNED NOT NULL,
		archived_inventory_id INT UNSIGNED NOT NULL,
		PRIMARY KEY (archived_order_id, archived_inventory_id),
		FOREIGN KEY (archived_order_id) REFERENCES archived_orders(id) ON DELETE CASCADE,
		FOREIGN KEY (archived_inventory_id) REFERENCES archived_inventories(id) ON DELETE RESTRICT
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		email VARCHAR(150) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		is_staff TINYINT(1) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	)`,
}
