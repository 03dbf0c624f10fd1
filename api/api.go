// Package api exposes the cleaning operations over HTTP for callers that
// hold their tables as JSON rather than files.
package api

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/TFMV/scrub/logger"
	"github.com/TFMV/scrub/pkg/dedupe"
	"github.com/TFMV/scrub/pkg/keys"
	"github.com/TFMV/scrub/pkg/merge"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/TFMV/scrub/version"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// TablePayload is the JSON interchange form of a table.
type TablePayload struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ToTable converts the payload into the in-memory model.
func (p TablePayload) ToTable() (*table.Table, error) {
	t, err := table.New(p.Columns)
	if err != nil {
		return nil, err
	}
	for _, row := range p.Rows {
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromTable converts a table into its JSON interchange form.
func FromTable(t *table.Table) TablePayload {
	cols := t.Columns()
	p := TablePayload{Columns: append([]string{}, cols...), Rows: make([][]string, 0, t.NumRows())}
	for i := 0; i < t.NumRows(); i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j], _ = t.Value(i, c)
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

// MergeRequest carries a merge call over the wire.
type MergeRequest struct {
	Base                TablePayload `json:"base"`
	Secondary           TablePayload `json:"secondary"`
	BaseKeyColumn       string       `json:"base_key_column"`
	SecondaryKeyColumn  string       `json:"secondary_key_column"`
	BaseNameColumn      string       `json:"base_name_column"`
	SecondaryNameColumn string       `json:"secondary_name_column"`
	FieldsToCopy        []string     `json:"fields_to_copy"`
	Overwrite           string       `json:"overwrite"`
	Delimiter           string       `json:"delimiter"`
}

// MergeResponse returns the enriched base table and the pass stats.
type MergeResponse struct {
	Result TablePayload `json:"result"`
	Stats  merge.Stats  `json:"stats"`
}

// DuplicatesRequest carries a duplicate-detection call over the wire.
type DuplicatesRequest struct {
	Table     TablePayload `json:"table"`
	KeyColumn string       `json:"key_column"`
	Normalize bool         `json:"normalize"`
	Delimiter string       `json:"delimiter"`
}

// DuplicatesResponse returns the colliding rows.
type DuplicatesResponse struct {
	Result TablePayload `json:"result"`
	Found  int          `json:"found"`
}

// Server holds the Fiber app instance.
type Server struct {
	app *fiber.App
	log *zap.Logger
}

// NewServer initializes the Fiber app and its routes.
func NewServer() *Server {
	app := fiber.New(fiber.Config{
		IdleTimeout:  10 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{app: app, log: logger.GetLogger()}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Scrub API",
			"version": version.Version,
			"build":   version.BuildDate,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := app.Group("/api/v1")
	v1.Post("/merge", s.handleMerge)
	v1.Post("/duplicates", s.handleDuplicates)

	return s
}

func (s *Server) handleMerge(c *fiber.Ctx) error {
	var req MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	base, err := req.Base.ToTable()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	secondary, err := req.Secondary.ToTable()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	policy := merge.OverwritePolicy(req.Overwrite)
	if req.Overwrite == "" {
		policy = merge.NeverOverwrite
	}
	stats, err := merge.Merge(base, secondary, merge.Options{
		BaseKeyColumn:       req.BaseKeyColumn,
		SecondaryKeyColumn:  req.SecondaryKeyColumn,
		BaseNameColumn:      req.BaseNameColumn,
		SecondaryNameColumn: req.SecondaryNameColumn,
		FieldsToCopy:        req.FieldsToCopy,
		Policy:              policy,
		Delimiter:           req.Delimiter,
		Audit:               merge.ZapAuditor{Log: s.log},
	})
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(MergeResponse{Result: FromTable(base), Stats: stats})
}

func (s *Server) handleDuplicates(c *fiber.Ctx) error {
	var req DuplicatesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	t, err := req.Table.ToTable()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	ix, err := keys.NewIndex(t, req.KeyColumn, keys.IndexOptions{Normalize: req.Normalize, Delimiter: req.Delimiter})
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	dups, err := dedupe.Duplicates(t, ix)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(DuplicatesResponse{Result: FromTable(dups), Found: dups.NumRows()})
}

// Start runs the Fiber server and handles graceful shutdown.
func (s *Server) Start(port string) error {
	if port == "" {
		port = "3000"
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		s.log.Info("Scrub API is running", zap.String("port", port))
		if err := s.app.Listen(":" + port); err != nil {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	s.log.Info("Received shutdown signal, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	s.log.Info("Server shutdown successfully")
	return nil
}

// Shutdown stops the server immediately.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// GetApp exposes the underlying Fiber app for tests.
func (s *Server) GetApp() *fiber.App {
	return s.app
}
