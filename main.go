package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"planet-explorer/catalog"
	"planet-explorer/config"
	"planet-explorer/explorer"
	"planet-explorer/orderserver"
	"planet-explorer/planet"
	"planet-explorer/searchcache"
	"planet-explorer/searchserver"
	"planet-explorer/sessionserver"
	"planet-explorer/thumbserver"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var (
	port = flag.Int("port", 0, "Serving port (overrides PORT)")
)

func topLevelContext() context.Context {
	ctx, cancelf := context.WithCancel(context.Background())
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Warnf("Caught signal %q, shutting down.", sig)
		cancelf()
	}()
	return ctx
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	ctx := topLevelContext()

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	client := planet.New(ctx, cfg.DataURL, cfg.OrdersURL, cfg.TilesURL)

	search := searchserver.New(client, searchcache.New())
	orders := orderserver.New(client)
	thumbs := thumbserver.New(client)

	// Sessions drive the same wire endpoints an external client would.
	remote := explorer.NewRemote(fmt.Sprintf("http://127.0.0.1:%d", cfg.Port))
	sessions := sessionserver.New(cat, remote, remote)

	router := mux.NewRouter()
	router.Handle("/planet/search", search).Methods("POST")
	router.Handle("/planet/download", orders).Methods("POST")
	router.Handle("/planet/thumb/{id}.png", thumbs).Methods("GET")
	router.HandleFunc("/planet/bundles", sessions.ServeBundles).Methods("GET")
	router.HandleFunc("/planet/key", client.ServeKeySaveHandler).Methods("POST")
	router.HandleFunc("/planet/key", client.ServeKeyStatusHandler).Methods("GET")
	router.HandleFunc("/api/session", sessions.ServeCreate).Methods("POST")
	router.HandleFunc("/api/session/{id}/command", sessions.ServeCommand).Methods("POST")
	router.HandleFunc("/api/session/{id}/footprint", sessions.ServeFootprint).Methods("GET")
	router.HandleFunc("/api/catalog", sessions.ServeCatalog).Methods("GET")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.Infof("Starting on :%d", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("ListenAndServe(): %v", err)
	}
	log.Infof("Shutdown")
}
