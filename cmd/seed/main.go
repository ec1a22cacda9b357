// Comando seed: crea el esquema, la configuración por defecto de la tienda e importa un
// catálogo de productos (CSV o XLSX).
//
//	go run ./cmd/seed -migrate -catalog productos.csv -charset windows-1252
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/elikia-api/internal/application/catalog"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/provider"
	"github.com/jhoicas/elikia-api/pkg/config"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "archivo .csv o .xlsx con columnas name,sku,category,price,purchase_price,stock,description")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1252 o iso-8859-1")
	migrate := flag.Bool("migrate", true, "crear tablas/colecciones antes de sembrar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	prov, err := provider.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar backend")
	}
	defer func() { _ = prov.Close() }()

	if *migrate {
		if m, ok := prov.Backend.(repository.Migrator); ok {
			if err := m.Migrate(ctx); err != nil {
				log.Fatal().Err(err).Msg("migración")
			}
			log.Info().Str("backend", prov.Backend.Name()).Msg("esquema listo")
		}
	}

	created, err := catalog.EnsureStoreSettings(ctx, prov.Backend)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración inicial")
	}
	log.Info().Bool("created", created).Msg("configuración de la tienda")

	if *catalogPath == "" {
		return
	}
	res, err := readCatalog(*catalogPath, *charset)
	if err != nil {
		log.Fatal().Err(err).Str("file", *catalogPath).Msg("leer catálogo")
	}
	log.Info().Int("products", len(res.Products)).Int("skipped", res.Skipped).Msg("catálogo leído")

	var rep catalog.Report
	importAll := func(b repository.Backend) error {
		rep, err = catalog.Import(ctx, b, res.Products)
		return err
	}
	// En Supabase la importación es atómica; los demás backends insertan fila a fila.
	if prov.TxRunner != nil {
		err = prov.TxRunner.Run(ctx, importAll)
	} else {
		err = importAll(prov.Backend)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}
	log.Info().Int("inserted", rep.Inserted).Int("existing", rep.Existing).Msg("catálogo importado")
}

func readCatalog(path, charset string) (*catalog.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return catalog.ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.ReadCSV(f, charset)
}
