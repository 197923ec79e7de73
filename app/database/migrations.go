package database

import (
	"database/sql"

	"github.com/vibhu927/pg-next-full/app/config"
	"go.uber.org/zap"
)

// InitSchema ensures all tables, constraints and indexes exist. Safe to run on
// every startup.
func InitSchema(db *sql.DB) error {
	log := config.GetLogger()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'USER',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL,
			state VARCHAR(100) NOT NULL,
			zip_code VARCHAR(20) NOT NULL,
			total_rooms INTEGER NOT NULL DEFAULT 0,
			occupied_rooms INTEGER NOT NULL DEFAULT 0,
			payment_qr_code TEXT,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			room_number VARCHAR(50) NOT NULL,
			floor VARCHAR(20),
			type VARCHAR(20) NOT NULL CHECK (type IN ('SINGLE', 'DOUBLE', 'TRIPLE', 'SUITE')),
			capacity INTEGER NOT NULL CHECK (capacity > 0),
			price NUMERIC(10,2) NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT true,
			property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tenants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			lease_start TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			lease_end TIMESTAMP WITH TIME ZONE NOT NULL,
			rent_amount NUMERIC(10,2) NOT NULL,
			room_id UUID NOT NULL UNIQUE REFERENCES rooms(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
			payment_type VARCHAR(20) NOT NULL CHECK (payment_type IN ('RENT', 'SECURITY_DEPOSIT', 'MAINTENANCE', 'OTHER')),
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'WAITING_APPROVAL', 'PAID', 'FAILED', 'REFUNDED')),
			payment_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			tenant_id UUID NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Error("failed to create table", zap.Error(err))
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_properties_user_id ON properties(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_property_id ON rooms(property_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tenants_user_id ON tenants(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tenants_email ON tenants(email)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_tenant_id ON payments(tenant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			// Index creation can race across instances, keep going.
			log.Warn("failed to create index", zap.Error(err))
		}
	}

	log.Info("database schema ready")
	return nil
}
