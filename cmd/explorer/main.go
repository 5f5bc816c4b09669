package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/explorer"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("🚀 Starting HAPI Core Explorer ingestion server")

	var showHelp = flag.Bool("help", false, "Show help message")
	flag.Parse()
	if *showHelp {
		log.Println("HAPI Core Explorer ingestion server")
		log.Println("  Accepts authenticated webhook deliveries from indexers and persists them.")
		log.Println("  Environment variables: EXPLORER_LISTEN_ADDR, EXPLORER_DATABASE_URL, JWT_SECRET")
		flag.PrintDefaults()
		return
	}

	listenAddr := getEnv("EXPLORER_LISTEN_ADDR", ":8090")
	databaseURL := getEnv("EXPLORER_DATABASE_URL", "")
	jwtSecret := getEnv("JWT_SECRET", "")
	if databaseURL == "" || jwtSecret == "" {
		log.Fatal("❌ EXPLORER_DATABASE_URL and JWT_SECRET are required")
	}

	log.Println("🗄️ [Phase 1] Connecting to PostgreSQL database...")
	store, err := explorer.NewStore(databaseURL)
	if err != nil {
		log.Fatalf("❌ [Phase 1] Failed to connect to database: %v", err)
	}
	defer store.Close()
	log.Println("✅ [Phase 1] Connected to PostgreSQL database")

	handlers := explorer.NewHandlers(store, []byte(jwtSecret), nil)
	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: handlers.Mux(),
	}

	go func() {
		log.Printf("🌐 [Phase 2] Explorer ingestion listening on %s", listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ [Phase 2] HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 shutting down Explorer ingestion server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ HTTP server shutdown error: %v", err)
	}
	log.Println("✅ HAPI Core Explorer ingestion server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
