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

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/adapter"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/auth"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/evm"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/nearlike"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/solanalike"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/config"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/indexer"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("🚀 Starting HAPI Core Indexer")

	var (
		mintToken = flag.Bool("mint-token", false, "Print a bearer token for INDEXER_ID signed with JWT_SECRET, then exit")
		showHelp  = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *showHelp {
		printHelp()
		return
	}

	log.Println("🔄 [Phase 1] Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ [Phase 1] Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ [Phase 1] Invalid configuration: %v", err)
	}
	log.Printf("✅ [Phase 1] Configuration loaded for network=%s backend=%s", cfg.Network, cfg.Backend)

	indexerID, err := uuid.Parse(cfg.IndexerID)
	if err != nil {
		log.Fatalf("❌ [Phase 1] INDEXER_ID is not a valid UUID: %v", err)
	}

	if *mintToken {
		token, err := auth.Mint([]byte(cfg.JWTSecret), indexerID)
		if err != nil {
			log.Fatalf("❌ failed to mint token: %v", err)
		}
		log.Printf("bearer token: %s", token)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("🔄 [Phase 2] Dialing %s backend at %s...", cfg.Backend, cfg.RPCNodeURL)
	a, err := buildAdapter(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ [Phase 2] Failed to build chain adapter: %v", err)
	}
	log.Println("✅ [Phase 2] Chain adapter ready")

	log.Printf("🔄 [Phase 3] Opening cursor store at %s...", cfg.StateFile)
	store := indexer.NewCursorStore(cfg.StateFile)
	log.Println("✅ [Phase 3] Cursor store ready")

	log.Printf("🔄 [Phase 4] Wiring webhook client for %s...", cfg.WebhookURL)
	token, err := auth.Mint([]byte(cfg.JWTSecret), indexerID)
	if err != nil {
		log.Fatalf("❌ [Phase 4] Failed to mint bearer token: %v", err)
	}
	pusher := webhook.NewClient(cfg.WebhookURL, token)
	log.Println("✅ [Phase 4] Webhook client ready")

	network := webhook.NetworkData{Network: cfg.Network}
	machine := indexer.NewMachine(network, indexerID, a, store, pusher, cfg.WaitInterval)

	log.Println("🎉 [Phase 5] Starting indexer state machine")
	done := make(chan struct{})
	go func() {
		defer close(done)
		final := machine.Run(ctx)
		log.Printf("🛑 state machine exited in state %s", final)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("🛑 received shutdown signal, stopping indexer...")
		cancel()
	case <-done:
	}

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		log.Println("⚠️ state machine did not stop within grace period")
	}

	log.Println("✅ HAPI Core Indexer stopped")
}

func buildAdapter(ctx context.Context, cfg *config.NetworkConfig) (adapter.Adapter, error) {
	switch cfg.Backend {
	case "evm":
		client, err := evm.NewClient(ctx, &evm.Config{
			RPCURL:          cfg.RPCNodeURL,
			ContractAddress: cfg.ContractAddress,
			ChainName:       cfg.Network,
		})
		if err != nil {
			return nil, err
		}
		return &adapter.EVM{Client: client, PageSize: uint64(cfg.PageSize)}, nil

	case "solana":
		client, err := solanalike.NewClient(&solanalike.Config{
			RPCURL:    cfg.RPCNodeURL,
			ProgramID: cfg.ContractAddress,
			ChainName: cfg.Network,
		})
		if err != nil {
			return nil, err
		}
		return &adapter.SolanaLike{Client: client, PageSize: cfg.PageSize, FetchingDelay: cfg.FetchingDelay}, nil

	case "near":
		client := nearlike.NewClient(&nearlike.Config{
			RPCURL:    cfg.RPCNodeURL,
			ContractID: cfg.ContractAddress,
			ChainName: cfg.Network,
		})
		return &adapter.NearLike{Client: client, PageSize: uint64(cfg.PageSize)}, nil

	default:
		return nil, http.ErrNotSupported
	}
}

func printHelp() {
	log.Println("HAPI Core Indexer")
	log.Println("  Reads the on-chain compliance registry for one network and delivers")
	log.Println("  normalized events to the configured Explorer webhook endpoint.")
	log.Println()
	log.Println("  Environment variables: NETWORK, BACKEND, RPC_NODE_URL, CONTRACT_ADDRESS,")
	log.Println("  WEBHOOK_URL, JWT_SECRET, INDEXER_ID, STATE_FILE, WAIT_INTERVAL_MS,")
	log.Println("  FETCHING_DELAY_MS, INDEXER_PAGE_SIZE")
	log.Println()
	log.Println("  Flags:")
	flag.PrintDefaults()
}
