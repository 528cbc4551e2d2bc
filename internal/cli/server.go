package cli

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ukkpower/Netflix-Trivia/internal/app"
	"github.com/ukkpower/Netflix-Trivia/internal/config"
	"github.com/ukkpower/Netflix-Trivia/internal/infra/memory"
	"github.com/ukkpower/Netflix-Trivia/internal/infra/opentdb"
	pgbank "github.com/ukkpower/Netflix-Trivia/internal/infra/postgres"
	redisinfra "github.com/ukkpower/Netflix-Trivia/internal/infra/redis"
	transport "github.com/ukkpower/Netflix-Trivia/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Question source: external trivia API by default, self-hosted bank
	// when Postgres is configured. Either way a TTL cache sits in front.
	triviaTimeout := config.Duration(cfg.Trivia.Timeout, 10*time.Second)
	var source app.QuestionSource = opentdb.NewClient(cfg.Trivia.BaseURL, triviaTimeout)
	if pool != nil {
		source = pgbank.NewQuestionBank(pool)
	}

	cacheTTL := config.Duration(cfg.Game.QuestionCacheTTL, 10*time.Minute)
	if redisClient != nil {
		source = redisinfra.NewQuestionCache(redisClient, source, cacheTTL)
	} else {
		source = memory.NewQuestionCache(source, cacheTTL)
	}

	// Room-code sampling and answer shuffling each get their own source;
	// both guard it internally, so neither contends with the other.
	var rooms app.RoomRepository
	if redisClient != nil {
		roomTTL := config.Duration(cfg.Redis.TTL, 2*time.Hour)
		rooms = redisinfra.NewRoomStore(redisClient, roomTTL, rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		rooms = memory.NewRoomStore(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	hub := transport.NewHub()
	rounds := app.NewRoundGenerator(source, rand.New(rand.NewSource(time.Now().UnixNano())))
	service := app.NewGameService(rooms, rounds, hub)
	wsHandler := transport.NewWSHandler(service, hub, cfg.Game.QuestionsPerRound)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
