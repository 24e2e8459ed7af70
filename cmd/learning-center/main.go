// main is the entry point of the learning-center application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Connect the list cache (Redis, or in-process when unconfigured)
//  5. Wire the course and student services and register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, close the cache
//
// RUNNING THE SERVER:
//
//	go run ./cmd/learning-center --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/learning-center
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"
	"github.com/BehruzDev0000/learning-center/internal/cache/memory"
	"github.com/BehruzDev0000/learning-center/internal/cache/redis"
	"github.com/BehruzDev0000/learning-center/internal/config"
	"github.com/BehruzDev0000/learning-center/internal/http/handlers/course"
	"github.com/BehruzDev0000/learning-center/internal/http/handlers/student"
	"github.com/BehruzDev0000/learning-center/internal/service"
	"github.com/BehruzDev0000/learning-center/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and panics if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21).
	// Structured logging writes key=value pairs rather than plain strings,
	// making logs easy to filter/search in tools like Loki or Datadog.
	log := setupLogger(cfg.Env)

	log.Info("starting learning-center",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	// sqlite.New opens the SQLite file and creates the courses and
	// students tables. We keep the result behind the storage.Storage
	// INTERFACE — swapping to PostgreSQL later only touches this line.
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1) // non-zero exit code signals failure to the OS / CI system
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Initialise the List Cache ──────────────────────────────────────
	// One cache handle for the whole process, owned here and passed to
	// both services explicitly — no package-level global. A configured
	// address means Redis; otherwise an in-process TTL cache is enough
	// for a single node.
	var listCache cache.Cache
	if cfg.Cache.Address != "" {
		listCache, err = redis.New(context.Background(), cfg)
		if err != nil {
			log.Error("failed to connect cache",
				slog.String("address", cfg.Cache.Address),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("cache connected", slog.String("address", cfg.Cache.Address))
	} else {
		listCache = memory.New(cfg.Cache.TTL)
		log.Info("using in-process cache",
			slog.Duration("ttl", cfg.Cache.TTL))
	}

	// ── 5. Wire Services and Register HTTP Routes ─────────────────────────
	// The services are the core: integrity checks, cache-aside reads,
	// write-through invalidation. Handlers are thin adapters on top.
	//
	// Route table:
	//   POST   /api/v1/courses         → create a course
	//   GET    /api/v1/courses         → list all courses (cached)
	//   GET    /api/v1/courses/{id}    → get one course
	//   PUT    /api/v1/courses/{id}    → update a course
	//   DELETE /api/v1/courses/{id}    → delete a course (cascades)
	//   ...and the same five routes for /api/v1/students
	courseSvc := service.NewCourse(storage, listCache, log, cfg.Cache.TTL)
	studentSvc := service.NewStudent(storage, listCache, log, cfg.Cache.TTL)

	router := http.NewServeMux()

	router.HandleFunc("POST /api/v1/courses", course.New(courseSvc))
	router.HandleFunc("GET /api/v1/courses", course.GetList(courseSvc))
	router.HandleFunc("GET /api/v1/courses/{id}", course.GetByID(courseSvc))
	router.HandleFunc("PUT /api/v1/courses/{id}", course.Update(courseSvc))
	router.HandleFunc("DELETE /api/v1/courses/{id}", course.Delete(courseSvc))

	router.HandleFunc("POST /api/v1/students", student.New(studentSvc))
	router.HandleFunc("GET /api/v1/students", student.GetList(studentSvc))
	router.HandleFunc("GET /api/v1/students/{id}", student.GetByID(studentSvc))
	router.HandleFunc("PUT /api/v1/students/{id}", student.Update(studentSvc))
	router.HandleFunc("DELETE /api/v1/students/{id}", student.Delete(studentSvc))

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: router,              // every request goes through our router

		// Production hardening — set timeouts to prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 7. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever. Running it in its own goroutine
	// lets main fall through to the shutdown handling below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 8. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so we don't miss the signal if main is
	// briefly busy. os.Interrupt = Ctrl+C; SIGTERM = `kill` / container
	// orchestrators.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// context.WithTimeout gives the shutdown a 5-second deadline.
	// If in-flight requests don't finish within 5 seconds,
	// the context cancels and Shutdown returns an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The cache handle lives for the process lifetime; release it after
	// the last in-flight request is done with it.
	if err := listCache.Close(); err != nil {
		log.Error("failed to close cache",
			slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
//	JSON logs are easy to ingest by log aggregators (Loki, CloudWatch, etc.)
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
