// Package main is the entry point for the Noche en la Mansión simulation
// server. It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
	"github.com/MValdesGames/NocheEnLaMansion/internal/engine"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
	"github.com/MValdesGames/NocheEnLaMansion/internal/infra/storage"
	"github.com/MValdesGames/NocheEnLaMansion/internal/network"
	"github.com/MValdesGames/NocheEnLaMansion/internal/observability"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/config"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/metrics"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/tuning"
)

// auditPersisterAdapter writes audit records through to SQLite.
type auditPersisterAdapter struct {
	store *storage.Store
	runID func() string
	m     *metrics.Collector
}

func (a *auditPersisterAdapter) Append(rec events.Record) error {
	start := time.Now()
	err := a.store.AppendAudit(context.Background(), a.runID(), rec)
	a.m.RecordAuditWrite(time.Since(start), err)
	return err
}

// achievementSinkAdapter records finished nights.
type achievementSinkAdapter struct {
	store *storage.Store
}

func (a *achievementSinkAdapter) RecordEnding(runID string, result ending.Result, stats ending.Stats) error {
	return a.store.RecordEnding(context.Background(), runID, result, stats)
}

// hubCollab defers narration and audio to the hub, which is constructed
// after the orchestrator.
type hubCollab struct {
	hub *network.Hub
}

func (h *hubCollab) Narrate(line string) {
	if h.hub != nil {
		h.hub.Narrate(line)
	}
}

func (h *hubCollab) PlaySound(effect string) {
	if h.hub != nil {
		h.hub.PlaySound(effect)
	}
}

func (h *hubCollab) SetAmbient(loop string) {
	if h.hub != nil {
		h.hub.SetAmbient(loop)
	}
}

func main() {
	log.Println("[MANOR-SERVER] Initializing 'La Noche en la Mansión' simulation server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("loading configuration: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, err := observability.InitTracing(ctx, observability.Config{
		ServiceName:    "manor-server",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		Enabled:        cfg.TracingEnabled,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		appLogger.Error("initializing tracing: %v", err)
		os.Exit(1)
	}
	defer tracer.Shutdown(context.Background())

	appLogger.Info("opening database %s", cfg.DBPath)
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		appLogger.Error("opening storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	profile := tuning.DefaultProfile()
	if cfg.LowResource {
		profile = tuning.LowResourceProfile()
		appLogger.Info("low resource profile active")
	}

	collab := &hubCollab{}
	var sim *engine.Orchestrator

	engineCfg := engine.DefaultConfig()
	engineCfg.TimeRatio = cfg.TimeRatio
	engineCfg.Seed = cfg.Seed
	engineCfg.CommandBuffer = profile.CommandBuffer

	sim = engine.New(engineCfg, engine.Deps{
		Logger:   appLogger,
		Metrics:  metrics.Get(),
		Narrator: collab,
		Audio:    collab,
		Sink:     &achievementSinkAdapter{store: store},
		Persister: &auditPersisterAdapter{
			store: store,
			runID: func() string { return sim.RunID() },
			m:     metrics.Get(),
		},
	})

	// Resume the last unfinished night, if one was saved.
	if runID, saved, err := store.LatestSave(ctx); err != nil {
		appLogger.Error("checking for saved runs: %v", err)
	} else if saved != nil {
		state, err := engine.Deserialize(saved)
		if err != nil {
			appLogger.Warn("saved run %s unusable: %v", runID, err)
		} else if !state.Finished {
			sim.Restore(state)
			appLogger.Info("resumed saved run %s", runID)
		}
	}

	hub := network.NewHub(sim, appLogger, metrics.Get())
	collab.hub = hub
	go hub.Run(ctx)
	hub.StartSnapshotPoller(ctx)
	unsubscribe := sim.Subscribe(hub.Notify)
	defer unsubscribe()

	sim.Start(ctx)

	// Periodic save routine.
	saveRun := func() {
		state := sim.ExportState()
		data, err := engine.Serialize(state)
		if err != nil {
			appLogger.Error("serializing state: %v", err)
			return
		}
		if err := store.UpsertSave(ctx, state.RunID, data); err != nil {
			appLogger.Error("writing save: %v", err)
			return
		}
		metrics.Get().RecordSave()
	}
	go func() {
		saveTicker := time.NewTicker(time.Duration(cfg.SaveInterval) * time.Second)
		defer saveTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-saveTicker.C:
				saveRun()
			}
		}
	}()

	// API routes.
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWS(hub, w, r)
	})

	cmdTracer := tracer.GetTracer("manor-server")
	mux.HandleFunc("/api/command", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_, span := cmdTracer.Start(r.Context(), "api.command")
		defer span.End()
		var req network.PlayerCommand
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		accepted := sim.HandleCommand(req.Text)
		span.SetAttributes(
			attribute.String("command.text", req.Text),
			attribute.Bool("command.accepted", accepted),
		)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"accepted": accepted})
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sim.Snapshot())
	})

	mux.HandleFunc("/api/pause", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sim.Pause()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/api/resume", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sim.Resume()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/api/achievements", func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListAchievements(r.Context(), 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	})

	mux.HandleFunc("/api/tuning", func(w http.ResponseWriter, r *http.Request) {
		rec := tuning.Analyze(metrics.Get().Snapshot())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	})

	network.NewHistoryHandler(sim, appLogger).RegisterRoutes(mux)
	network.NewDirectorBridge(sim, hub, appLogger).RegisterRoutes(mux)

	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	server := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		appLogger.Info("HTTP API & WS server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[MANOR-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown: final save, then drain HTTP.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[MANOR-SERVER] Shutting down...")
	sim.Stop()
	saveRun()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown: %v", err)
	}
}
