package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-tag-registry/internal/adapters/storage/memory"
	pg "pet-tag-registry/internal/adapters/storage/postgres"
	"pet-tag-registry/internal/domain/batches"
	"pet-tag-registry/internal/domain/billing"
	"pet-tag-registry/internal/domain/replacements"
	"pet-tag-registry/internal/domain/tags"
	"pet-tag-registry/internal/middleware"
	"pet-tag-registry/internal/platform/logger"
	"pet-tag-registry/internal/ports/auth"
	"pet-tag-registry/internal/ports/notify"

	_ "pet-tag-registry/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: headers X-Debug-*)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: sink de eventos del ciclo de vida (webhook). Nil => Nop.
	Notifier notify.Notifier

	// Opcional: logger de requests. Nil => sin request log.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Log != nil {
		r.Use(middleware.RequestLog(opts.Log))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	var (
		tagsRepo    tags.Repository
		batchesRepo batches.Repository
		replRepo    replacements.Repository
	)

	if db != nil {
		tagsRepo = pg.NewTagsRepo(db)
		batchesRepo = pg.NewBatchesRepo(db)
		replRepo = pg.NewReplacementsRepo(db)
	} else {
		tagsRepo = mem.NewTagsRepo()
		batchesRepo = mem.NewBatchesRepo()
		replRepo = mem.NewReplacementsRepo()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}

	// Services por módulo
	tagsSvc := tags.NewService(tagsRepo, notifier)
	batchesSvc := batches.NewService(batchesRepo, tagsSvc, notifier)
	replSvc := replacements.NewService(replRepo, tagsSvc, notifier)
	billingSvc := billing.NewService(tagsSvc)

	// Rutas por módulo
	tags.RegisterRoutes(r, tagsSvc)
	batches.RegisterRoutes(r, batchesSvc)
	replacements.RegisterRoutes(r, replSvc)
	billing.RegisterRoutes(r, billingSvc)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
