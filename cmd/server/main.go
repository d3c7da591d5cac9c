package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"bunnylords/internal/adapter/catalog/yamlcatalog"
	httpadapter "bunnylords/internal/adapter/http"
	metricsinmem "bunnylords/internal/adapter/metrics/inmemory"
	gormrepo "bunnylords/internal/adapter/repo/gorm"
	memrepo "bunnylords/internal/adapter/repo/memory"
	"bunnylords/internal/app/battle"
	"bunnylords/internal/app/command"
	"bunnylords/internal/app/ports"
	"bunnylords/internal/app/replay"
	"bunnylords/internal/app/session"
	"bunnylords/internal/app/status"
	"bunnylords/internal/app/tick"
	"bunnylords/internal/domain/keep"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	catalog := mustLoadCatalog()
	sessionRepo, reportRepo, eventRepo, txManager := mustBuildRepos()
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		SessionUC: session.UseCase{TxManager: txManager, SessionRepo: sessionRepo, Catalog: catalog, Now: time.Now},
		StatusUC:  status.UseCase{SessionRepo: sessionRepo, Catalog: catalog},
		TickUC: tick.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			EventRepo:   eventRepo,
			Catalog:     catalog,
			Now:         time.Now,
		},
		CommandUC: command.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			EventRepo:   eventRepo,
			Catalog:     catalog,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		BattleUC: battle.UseCase{
			TxManager:   txManager,
			SessionRepo: sessionRepo,
			ReportRepo:  reportRepo,
			EventRepo:   eventRepo,
			Catalog:     catalog,
			Metrics:     kpiRecorder,
			Now:         time.Now,
		},
		ReplayUC: replay.UseCase{ReportRepo: reportRepo, EventRepo: eventRepo},
		KPI:      kpiRecorder,
	}

	addr := strEnv("BUNNYLORDS_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("bunnylords server listening on %s", addr)
	s.Spin()
}

func mustLoadCatalog() *keep.Catalog {
	dir := strEnv("BUNNYLORDS_CATALOG_DIR", "./catalogs")
	catalog, err := yamlcatalog.New(dir).Load(context.Background())
	if err != nil {
		log.Fatalf("load catalog from %s: %v", dir, err)
	}
	return catalog
}

// mustBuildRepos wires postgres when BUNNYLORDS_DB_DSN is set and falls back
// to the in-memory store otherwise. The memory store loses everything on
// restart, which is fine for local play.
func mustBuildRepos() (ports.SessionRepository, ports.BattleReportRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("BUNNYLORDS_DB_DSN"))
	if dsn == "" {
		log.Println("BUNNYLORDS_DB_DSN not set, using in-memory store")
		store := memrepo.NewStore()
		return memrepo.NewSessionRepo(store), memrepo.NewBattleReportRepo(store), memrepo.NewEventRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrationsDir := strEnv("BUNNYLORDS_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations from %s: %v", migrationsDir, err)
	}

	return gormrepo.NewSessionRepo(db), gormrepo.NewBattleReportRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
