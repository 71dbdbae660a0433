// Package main is the ayudante CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/config"
	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/dialog"
	"github.com/acadbot/ayudante/internal/fallback"
	"github.com/acadbot/ayudante/internal/ingest"
	"github.com/acadbot/ayudante/internal/match"
	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/ranking"
	"github.com/acadbot/ayudante/internal/server"
	"github.com/acadbot/ayudante/internal/storage"
	"github.com/acadbot/ayudante/internal/watcher"
	"github.com/acadbot/ayudante/pkg/utils"
)

var version = "dev"

func main() {
	// Secrets like the fallback API key live in .env during development.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "ingest":
		runIngest()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("ayudante version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: ayudante <command> [flags]

Commands:
  server   Start the HTTP API server
  ask      Ask one question (via a running server, or directly)
  ingest   Import a regulation document into the record store
  status   Show corpus and storage status
  version  Print version
  help     Show this help

Run "ayudante <command> -h" for command flags.
`)
}

func loadConfig(flagPath string) (*config.Config, string, error) {
	path := config.Resolve(flagPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// components holds the wired service pieces shared by server and direct-mode
// commands.
type components struct {
	Storage   storage.Storage
	Holder    *corpus.Holder
	Retriever *fallback.Retriever
	Manager   *dialog.Manager
	Config    *config.Config
	Logger    *zap.Logger
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	retriever, err := fallback.NewRetriever()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create retriever: %w", err)
	}

	var responder fallback.Responder
	if cfg.Fallback.EnabledOrDefault() {
		var chat *fallback.ChatClient
		if key := cfg.Fallback.APIKey(); key != "" {
			chat = fallback.NewChatClient(cfg.Fallback.BaseURL, key, cfg.Fallback.Model)
		} else {
			logger.Warn("fallback API key not set, answering from retrieval only",
				zap.String("env", cfg.Fallback.APIKeyEnv))
		}
		responder = fallback.NewRAG(retriever, chat, logger)
	}

	holder := corpus.NewHolder(nil)
	finder := match.NewFinder(cfg.Dialog.FuzzyThreshold)
	ranker := ranking.NewRanker(&cfg.Ranking)
	manager := dialog.NewManager(holder, finder, ranker, responder, logger)

	return &components{
		Storage:   store,
		Holder:    holder,
		Retriever: retriever,
		Manager:   manager,
		Config:    cfg,
		Logger:    logger,
	}, nil
}

func (c *components) Close() {
	_ = c.Retriever.Close()
	_ = c.Storage.Close()
}

// Reload refreshes the corpus: the dataset file is the source of truth when
// it loads, and is mirrored into the record store; otherwise the store's
// records are used so a missing dataset does not empty a working corpus.
func (c *components) Reload(ctx context.Context) (int, error) {
	records, err := corpus.LoadFile(c.Config.Corpus.DatasetPath)
	if err != nil {
		c.Logger.Warn("dataset load failed, using stored records",
			zap.String("path", c.Config.Corpus.DatasetPath),
			zap.Error(err))
		records, err = c.Storage.ListRecords(ctx)
		if err != nil {
			return 0, fmt.Errorf("list stored records: %w", err)
		}
	} else {
		if err := c.Storage.ReplaceAll(ctx, records); err != nil {
			c.Logger.Warn("mirror dataset to storage failed", zap.Error(err))
		}
	}

	c.Holder.Swap(corpus.NewIndex(records))
	if err := c.Retriever.Rebuild(records); err != nil {
		return 0, fmt.Errorf("rebuild retriever: %w", err)
	}
	return len(records), nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedPath),
		zap.Bool("debug", debugMode))

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	if count, err := comps.Reload(context.Background()); err != nil {
		logger.Warn("initial corpus load failed, starting with empty corpus", zap.Error(err))
	} else {
		logger.Info("corpus loaded", zap.Int("records", count))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Corpus.WatchOrDefault() {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(cfg.Corpus.DatasetPath, func(path string) {
			count, err := comps.Reload(context.Background())
			if err != nil {
				logger.Warn("watch reload failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("corpus reloaded after dataset change",
				zap.String("path", path), zap.Int("records", count))
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Warn("Failed to start dataset watcher", zap.Error(err))
		} else {
			defer watchSvc.Stop()
		}
	}

	srv := server.NewServer(comps.Manager, comps.Holder, comps.Storage, comps.Reload, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = answer directly without a server)")
	sessionID := fs.String("session", "", "session id for follow-up questions")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: ayudante ask [flags] <pregunta>")
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: ayudante ask [flags] <pregunta>")
		os.Exit(1)
	}

	if *serverURL != "" {
		resp, session, err := askViaHTTP(*serverURL, *sessionID, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(resp)
		if *sessionID == "" && session != "" {
			fmt.Fprintf(os.Stderr, "\n(session: %s, use -session to continue the conversation)\n", session)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer comps.Close()

	ctx := context.Background()
	if _, err := comps.Reload(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load corpus: %v\n", err)
		os.Exit(1)
	}

	session := *sessionID
	if session == "" {
		session = comps.Manager.Sessions().Mint()
	}
	fmt.Println(comps.Manager.Respond(ctx, session, question))
}

func askViaHTTP(serverURL, sessionID, question string) (answer, session string, err error) {
	body, err := json.Marshal(models.AskRequest{Question: question})
	if err != nil {
		return "", "", err
	}
	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(serverURL, "/")+"/api/v1/preguntar", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var parsed models.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", err
	}
	return parsed.Answer, parsed.SessionID, nil
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	rac := fs.String("rac", "", "regulation id the document belongs to (e.g. 1 for RAC-1)")
	export := fs.Bool("export", true, "export the updated record store to the dataset file")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: ayudante ingest [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	ing := ingest.NewIngester(store, logger)
	count, err := ing.IngestFile(ctx, path, *rac)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d articles from %s\n", count, path)

	if *export {
		records, err := store.ListRecords(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list records: %v\n", err)
			os.Exit(1)
		}
		if err := corpus.SaveJSON(cfg.Corpus.DatasetPath, records); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export dataset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dataset exported to %s (%d records)\n", cfg.Corpus.DatasetPath, len(records))
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read storage directly)")
	_ = fs.Parse(os.Args[2:])

	if *serverURL != "" {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(strings.TrimRight(*serverURL, "/") + "/api/v1/status")
		if err == nil {
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)
			var pretty bytes.Buffer
			if json.Indent(&pretty, data, "", "  ") == nil {
				fmt.Println(pretty.String())
			} else {
				fmt.Println(string(data))
			}
			return
		}
		fmt.Fprintf(os.Stderr, "Server unreachable (%v), reading storage directly\n", err)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	count, err := store.CountRecords(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count records: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stored records: %d\n", count)
	if diskBytes, err := storage.DataFootprintBytes(cfg.Storage.DatabasePath, cfg.Corpus.DatasetPath); err == nil {
		fmt.Printf("Disk usage: %d bytes\n", diskBytes)
	}
}
