// Package demo initializes and runs the demo application.
// It opens the configured database, applies the schema migrations, and
// walks the products table through the full set of record operations.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/sqlrecord"
	"github.com/dmitrijs2005/sqlrecord/internal/demo/config"
	"github.com/dmitrijs2005/sqlrecord/internal/demo/migrations"
	"github.com/dmitrijs2005/sqlrecord/internal/demo/models"
	"github.com/dmitrijs2005/sqlrecord/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *sqlrecord.Store
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	dialect, err := sqlrecord.ParseDialect(c.Engine)
	if err != nil {
		return nil, err
	}

	store, err := sqlrecord.Open(ctx, dialect, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// An in-memory SQLite database evaporates with its last connection, so
	// keep a couple alive for the whole run.
	store.DB().SetMaxOpenConns(4)
	store.DB().SetMaxIdleConns(4)

	if err := runMigrations(ctx, store); err != nil {
		store.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{config: c, logger: logger, store: store}, nil
}

func runMigrations(ctx context.Context, s *sqlrecord.Store) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect(gooseDialect(s.Dialect())); err != nil {
		return err
	}

	return goose.UpContext(ctx, s.DB().DB, ".")
}

func gooseDialect(d sqlrecord.Dialect) string {
	if d == sqlrecord.SQLite {
		return "sqlite3"
	}
	return "pgx"
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run walks the record lifecycle once: seed, restock, reprice, scan in
// batches, clean up. Progress is reported through the structured logger.
func (app *App) Run(ctx context.Context) error {
	defer app.store.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "Starting demo...",
		"engine", app.store.Dialect().String(), "rows", app.config.Rows)

	if err := app.seed(ctx); err != nil {
		return err
	}
	if err := app.restock(ctx); err != nil {
		return err
	}
	if err := app.reprice(ctx); err != nil {
		return err
	}
	if err := app.scan(ctx); err != nil {
		return err
	}
	if err := app.cleanup(ctx); err != nil {
		return err
	}

	app.logger.Info(ctx, "Demo finished")
	return nil
}

// seed fills the products table: a bulk batch plus one flagship product
// inserted on its own.
func (app *App) seed(ctx context.Context) error {
	products := make([]models.Product, 0, app.config.Rows)
	for i := 0; i < app.config.Rows; i++ {
		products = append(products, models.Product{
			ID:     uuid.NewString(),
			SKU:    fmt.Sprintf("SKU-%04d", i+1),
			Name:   fmt.Sprintf("Demo product %d", i+1),
			Price:  decimal.New(int64(499+i*50), -2),
			Qty:    int64(i % 10),
			Active: i%4 != 0,
		})
	}

	if err := sqlrecord.InsertAll(ctx, app.store, products); err != nil {
		return err
	}

	flagship := models.Product{
		ID:     uuid.NewString(),
		SKU:    "SKU-FLAGSHIP",
		Name:   "Flagship demo product",
		Price:  decimal.New(19999, -2),
		Qty:    100,
		Active: true,
	}
	if err := sqlrecord.Insert(ctx, app.store, flagship); err != nil {
		return err
	}

	app.logger.Info(ctx, "seeded products", "count", len(products)+1)
	return nil
}

// restock tops up everything that is nearly out of stock. The read and the
// writes share one transaction, so a concurrent run never sees a half
// restocked table.
func (app *App) restock(ctx context.Context) error {
	return app.store.WithTx(ctx, nil, func(tx *sqlrecord.Store) error {
		low, err := sqlrecord.SelectAll[models.Product](ctx, tx, "qty < 3")
		if err != nil {
			return err
		}

		for i := range low {
			low[i].Qty += 20
		}

		if err := sqlrecord.UpdateAll(ctx, tx, low, "id"); err != nil {
			return err
		}

		app.logger.Info(ctx, "restocked products", "count", len(low))
		return nil
	})
}

// reprice doubles the flagship price through an upsert keyed on sku and
// upserts two products that do not exist yet, so both conflict branches
// run.
func (app *App) reprice(ctx context.Context) error {
	flagship, err := sqlrecord.SelectOne[models.Product](ctx, app.store, "sku = 'SKU-FLAGSHIP'")
	if err != nil {
		return err
	}
	if flagship == nil {
		return errors.New("flagship product is missing")
	}

	flagship.Price = flagship.Price.Mul(decimal.NewFromInt(2))
	if err := sqlrecord.Upsert(ctx, app.store, *flagship, "sku"); err != nil {
		return err
	}

	extras := []models.Product{
		{
			ID:     uuid.NewString(),
			SKU:    "SKU-SEASONAL",
			Name:   "Seasonal special",
			Price:  decimal.New(1299, -2),
			Qty:    40,
			Active: true,
		},
		{
			ID:     uuid.NewString(),
			SKU:    "SKU-CLEARANCE",
			Name:   "Clearance leftover",
			Price:  decimal.New(199, -2),
			Qty:    3,
			Active: false,
		},
	}
	if err := sqlrecord.UpsertAll(ctx, app.store, extras, "sku"); err != nil {
		return err
	}

	app.logger.Info(ctx, "repriced and upserted products",
		"flagship_price", flagship.Price.String(), "new", len(extras))
	return nil
}

// scan walks the whole table in chunks of the configured batch size.
func (app *App) scan(ctx context.Context) error {
	batches := 0
	total := 0

	err := sqlrecord.SelectInBatches(ctx, app.store, "", app.config.BatchSize,
		func(batch []models.Product) error {
			batches++
			total += len(batch)
			app.logger.Info(ctx, "scanned batch", "batch", batches, "rows", len(batch))
			return nil
		})
	if err != nil {
		return err
	}

	app.logger.Info(ctx, "scan finished", "batches", batches, "rows", total)
	return nil
}

// cleanup deletes the clearance product on its own, wipes the rest as one
// batch, and verifies the table is empty.
func (app *App) cleanup(ctx context.Context) error {
	clearance, err := sqlrecord.SelectOne[models.Product](ctx, app.store, "sku = 'SKU-CLEARANCE'")
	if err != nil {
		return err
	}
	if clearance != nil {
		if err := sqlrecord.Delete(ctx, app.store, *clearance, "id"); err != nil {
			return err
		}
		app.logger.Info(ctx, "deleted product", "sku", clearance.SKU)
	}

	rest, err := sqlrecord.SelectAll[models.Product](ctx, app.store, "")
	if err != nil {
		return err
	}
	if err := sqlrecord.DeleteAll(ctx, app.store, rest, "id"); err != nil {
		return err
	}

	gone, err := sqlrecord.SelectOne[models.Product](ctx, app.store, "sku = 'SKU-FLAGSHIP'")
	if err != nil {
		return err
	}
	if gone != nil {
		return errors.New("cleanup left rows behind")
	}

	app.logger.Info(ctx, "cleaned up", "deleted", len(rest))
	return nil
}
