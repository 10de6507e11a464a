package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/api-sage/bank-backoffice/src/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bank_backoffice_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultAdminUser = "backoffice"

// Dev-only default; override ADMIN_API_KEY_HASH in any real deployment.
const defaultAdminKeyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const defaultIndividualMonthlyYield = "1.01"
const defaultOrganizationMonthlyYield = "1.02"

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	AdminUser     string
	AdminKeyHash  string

	// MonthlyYields maps a customer category to the multiplicative factor
	// applied to investment balances on each accrual run.
	MonthlyYields map[domain.CustomerCategory]decimal.Decimal
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("src", "migrations")
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	adminUser := strings.TrimSpace(os.Getenv("ADMIN_API_USER"))
	if adminUser == "" {
		adminUser = defaultAdminUser
	}

	adminKeyHash := strings.TrimSpace(os.Getenv("ADMIN_API_KEY_HASH"))
	if adminKeyHash == "" {
		adminKeyHash = defaultAdminKeyHash
	}

	individualYield, err := yieldFromEnv("INDIVIDUAL_MONTHLY_YIELD", defaultIndividualMonthlyYield)
	if err != nil {
		return Config{}, err
	}
	organizationYield, err := yieldFromEnv("ORGANIZATION_MONTHLY_YIELD", defaultOrganizationMonthlyYield)
	if err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(conn),
		MigrationsDir: migrationsDir,
		HTTPAddr:      httpAddr,
		AdminUser:     adminUser,
		AdminKeyHash:  adminKeyHash,
		MonthlyYields: map[domain.CustomerCategory]decimal.Decimal{
			domain.CustomerCategoryIndividual:   individualYield,
			domain.CustomerCategoryOrganization: organizationYield,
		},
	}, nil
}

func yieldFromEnv(key, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}

	factor, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s %q: %w", key, raw, err)
	}
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%s must be greater than zero, got %q", key, raw)
	}

	return factor, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
