package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Harden applies the Postgres-only schema tightening AutoMigrate does not
// cover:
// - Money column types (NUMERIC(12,2))
// - Indexes on hot join paths
// - Foreign key: invoice_lines.product_id → products.id
// - Basic CHECK constraints
// All statements are idempotent so Harden can run on every boot.
func Harden() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		alters := []string{
			`ALTER TABLE products      ALTER COLUMN unit_price TYPE numeric(12,2)`,
			`ALTER TABLE invoice_lines ALTER COLUMN unit_price TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN vat_rate   TYPE numeric(5,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines (invoice_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_lines_product ON invoice_lines (product_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_user ON invoices (user_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// invoice_lines.product_id -> products.id; deleting a product in use
		// must not orphan historical lines, so RESTRICT.
		fk := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'invoice_lines'::regclass
		  AND conname  = 'fk_invoice_lines_product'
	) THEN
		ALTER TABLE invoice_lines
		ADD CONSTRAINT fk_invoice_lines_product
		FOREIGN KEY (product_id)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`
		if err := tx.Exec(fk).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_unit_price_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_lines'::regclass
					  AND conname  = 'chk_invoice_lines_unit_price_nonneg'
				) THEN
					ALTER TABLE invoice_lines
					ADD CONSTRAINT chk_invoice_lines_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
