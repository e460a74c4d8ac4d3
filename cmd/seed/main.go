// Command seed bulk-loads entity payloads from a JSON array file through the
// same validate-then-insert path the API uses.
//
//	seed -entity LegalDocument -file docs.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/config"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/database"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/repository"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/schema"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/service"
	"github.com/lexdesk/lexdesk/backend/go-services/pkg/logger"
)

// result summarises one seeding run.
type result struct {
	Inserted int
	Rejected int
}

// seed inserts each element of the JSON array read from r. Payloads failing
// validation are logged and counted; a store failure stops the run.
func seed(ctx context.Context, svc *service.Service, entity string, r io.Reader) (result, error) {
	var res result
	if _, ok := svc.Registry().Lookup(entity); !ok {
		return res, fmt.Errorf("%w: %s", schema.ErrUnknownEntity, entity)
	}
	var payloads []json.RawMessage
	if err := json.NewDecoder(r).Decode(&payloads); err != nil {
		return res, fmt.Errorf("read payloads: %w", err)
	}
	for i, raw := range payloads {
		id, err := svc.Create(ctx, entity, raw)
		var verr *schema.ValidationError
		switch {
		case err == nil:
			res.Inserted++
			logger.Debugf("seed: #%d inserted as %s", i, id)
		case errors.As(err, &verr), errors.Is(err, schema.ErrMalformedPayload):
			res.Rejected++
			logger.Warnf("seed: #%d rejected: %v", i, err)
		default:
			return res, fmt.Errorf("insert #%d: %w", i, err)
		}
	}
	return res, nil
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup completes before
// main exits.
func run() int {
	entity := flag.String("entity", "", "entity type to load (e.g. LegalDocument)")
	file := flag.String("file", "", "path to a JSON array of payloads")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return 1
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logger.Sync() }()

	if *entity == "" || *file == "" {
		flag.Usage()
		return 2
	}
	f, err := os.Open(*file)
	if err != nil {
		logger.Errorf("open %s: %v", *file, err)
		return 1
	}
	defer f.Close()

	ctx := context.Background()
	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	res, err := seed(ctx, service.New(schema.NewRegistry(), store), *entity, f)
	logger.Infof("seed %s: inserted=%d rejected=%d", *entity, res.Inserted, res.Rejected)
	if err != nil {
		logger.Errorf("seed failed: %v", err)
		return 1
	}
	return 0
}

// openStore mirrors the server's store selection. The returned func releases
// the connection, if any.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func()) {
	switch {
	case cfg.Database.Backend == "memory":
		return repository.NewMemoryStore(), func() {}
	case cfg.Database.URL == "":
		return repository.NewUnavailable(nil), func() {}
	}
	client, err := database.ConnectMongo(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return repository.NewUnavailable(err), func() {}
	}
	return repository.NewMongoStore(client.Database(cfg.Database.Name)), func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}
}
