package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"magnetar/config"
	"magnetar/handlers"
	"magnetar/services/aggregator"
	"magnetar/utils"
)

const version = "1.0.0"

func main() {
	config.Load()
	config.SetupLogging()

	client := aggregator.NewClient(config.ProviderTimeout(), config.UserAgent())
	svc := aggregator.NewService(config.Providers(), client, config.ProviderTimeout(), config.MaxResults())

	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 30*time.Second)
	aggregator.ProbeProviders(probeCtx, client, config.Providers())
	cancelProbe()

	r := utils.NewRouter()
	sh := handlers.NewStreamHandler(svc, version)
	r.HandleFunc("/manifest.json", sh.Manifest).Methods(http.MethodGet)
	r.HandleFunc("/stream/{type}/{id}", sh.Stream).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              config.ListenAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[boot] magnetar %s listening on %s (%d providers)", version, config.ListenAddr(), len(config.Providers()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[boot] server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Printf("[boot] shut down")
}
