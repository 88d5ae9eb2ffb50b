//go:build integration
// +build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mytheresa/warehouse-service/config"
	"github.com/mytheresa/warehouse-service/models"
)

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("warehouse"),
		tcpostgres.WithUsername("warehouse"),
		tcpostgres.WithPassword("warehouse"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	for _, driver := range []string{config.DriverPgx, config.DriverPq} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{
				DatabaseURL:     dsn,
				DBDriver:        driver,
				LogLevel:        "silent",
				MaxOpenConns:    4,
				MaxIdleConns:    2,
				ConnMaxLifetime: time.Minute,
			}
			fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			db, err := Open(cfg, WithNowFunc(func() time.Time { return fixed }))
			require.NoError(t, err)
			defer Close(db)

			require.NoError(t, Migrate(db))
			require.NoError(t, Migrate(db), "migrating twice is a no-op")

			for _, model := range models.All() {
				assert.True(t, db.Migrator().HasTable(model))
			}
			assert.True(t, db.Migrator().HasConstraint(&models.Stock{}, "chk_stocks_quantity"))
			assert.True(t, db.Migrator().HasIndex(&models.OrderItem{}, "unique_order_product"))

			supplier := &models.Supplier{NameOrganization: "Acme " + driver, Country: "DE", City: "Berlin", Street: "Main", Building: "1"}
			require.NoError(t, models.NewSuppliersRepository(db).CreateSupplier(ctx, supplier))
			assert.True(t, supplier.CreatedAt.Equal(fixed))

			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)
		})
	}

	_, err = Open(&config.Config{DatabaseURL: "postgres://nobody@127.0.0.1:1/none?sslmode=disable", DBDriver: config.DriverPgx})
	assert.Error(t, err)
}
