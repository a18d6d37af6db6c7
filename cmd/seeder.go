package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo tenant, admin user, and catalog for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"messages", "chats", "activity_logs", "notifications",
				"qr_codes", "documents", "folders", "products",
				"product_statuses", "categories", "users", "roles", "tenants",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		brandName := "Acme Outdoors"
		var tenantID int64
		row := db.Raw("SELECT id FROM tenants WHERE brand_name = ?", brandName).Row()
		if err := row.Scan(&tenantID); err != nil {
			if err := db.Exec(
				"INSERT INTO tenants (brand_name, theme_color, description, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				brandName, "#1f6f43", "Demo outdoor gear brand").Error; err != nil {
				log.Fatalf("failed to insert tenant: %v", err)
			}
			if err := db.Raw("SELECT id FROM tenants WHERE brand_name = ?", brandName).Row().Scan(&tenantID); err != nil {
				log.Fatalf("failed to lookup tenant id: %v", err)
			}
			fmt.Println("Seeded tenant:", brandName)
		}

		permissions, err := json.Marshal(auth.DefaultPermissions)
		if err != nil {
			log.Fatalf("failed to marshal permissions: %v", err)
		}

		roleName := "acme-admin"
		var roleID int64
		row = db.Raw("SELECT id FROM roles WHERE tenant_id = ? AND name = ?", tenantID, roleName).Row()
		if err := row.Scan(&roleID); err != nil {
			if err := db.Exec(
				"INSERT INTO roles (tenant_id, name, permissions, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				tenantID, roleName, string(permissions)).Error; err != nil {
				log.Fatalf("failed to insert role: %v", err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE tenant_id = ? AND name = ?", tenantID, roleName).Row().Scan(&roleID); err != nil {
				log.Fatalf("failed to lookup role id: %v", err)
			}
			fmt.Println("Seeded role:", roleName)
		}

		adminEmail := "admin@acme.test"
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		var exists int
		row = db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO users (tenant_id, role_id, email, name, password_hash, email_verified, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
				tenantID, roleID, adminEmail, "Acme Admin", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		categories := []string{"Tents", "Backpacks", "Footwear"}
		for _, name := range categories {
			row := db.Raw("SELECT 1 FROM categories WHERE tenant_id = ? AND name = ?", tenantID, name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO categories (tenant_id, name, created_at, updated_at) VALUES (?, ?, now(), now())",
					tenantID, name).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", name, err)
				}
				fmt.Println("Seeded category:", name)
			}
		}

		statuses := []string{"In production", "In transit", "Delivered", "Sold"}
		for _, name := range statuses {
			row := db.Raw("SELECT 1 FROM product_statuses WHERE tenant_id = ? AND name = ?", tenantID, name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO product_statuses (tenant_id, name, created_at, updated_at) VALUES (?, ?, now(), now())",
					tenantID, name).Error; err != nil {
					log.Fatalf("failed to insert status %s: %v", name, err)
				}
				fmt.Println("Seeded status:", name)
			}
		}

		fmt.Println("Demo tenant seeded successfully")
	},
}
