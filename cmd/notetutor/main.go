package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	chromem "github.com/philippgille/chromem-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/notetutor/notetutor/internal/llm"
	"github.com/notetutor/notetutor/internal/profile"
	"github.com/notetutor/notetutor/internal/tutor"
	"github.com/notetutor/notetutor/plugin/vectorstore"
	"github.com/notetutor/notetutor/server"
	"github.com/notetutor/notetutor/store"
	"github.com/notetutor/notetutor/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "notetutor",
	Short: "An AI tutor over your personal study notes",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of the server: "dev" or "prod"`)
	flags.String("addr", "", "binding address")
	flags.Int("port", 8230, "port of the server")
	flags.String("data", "", "data directory")
	flags.String("driver", "sqlite", `database driver: "sqlite", "mysql" or "postgres"`)
	flags.String("dsn", "", "database connection string")
	flags.String("model", "", "default chat model identifier")
	flags.String("embed-model", "", "embedding model for the note index")
	flags.Duration("model-timeout", 60*time.Second, "timeout for a single model invocation")
	flags.Int("max-history", store.DefaultMaxChatHistory, "retention limit for a topic's conversation log")

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "model", "embed-model", "model-timeout", "max-history"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("notetutor")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func run() error {
	// Pick up OPENROUTER_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	p := &profile.Profile{
		Mode:           viper.GetString("mode"),
		Addr:           viper.GetString("addr"),
		Port:           viper.GetInt("port"),
		Data:           viper.GetString("data"),
		Driver:         viper.GetString("driver"),
		DSN:            viper.GetString("dsn"),
		APIKey:         apiKey,
		APIBaseURL:     os.Getenv("NOTETUTOR_API_BASE_URL"),
		Model:          viper.GetString("model"),
		EmbedModel:     viper.GetString("embed-model"),
		MaxChatHistory: viper.GetInt("max-history"),
		ModelTimeout:   viper.GetDuration("model-timeout"),
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid profile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := db.NewDBDriver(p)
	if err != nil {
		return errors.Wrap(err, "failed to create db driver")
	}
	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		return errors.Wrap(err, "failed to migrate db")
	}

	var completer llm.Completer
	var vs *vectorstore.Store
	if p.APIKey != "" {
		chat, err := llm.NewOpenAIChat(p.APIKey, p.APIBaseURL)
		if err != nil {
			return errors.Wrap(err, "failed to create model client")
		}
		completer = chat

		embedFn := chromem.NewEmbeddingFuncOpenAICompat(p.APIBaseURL, p.APIKey, p.EmbedModel, nil)
		vs, err = vectorstore.New(p.Data, embedFn)
		if err != nil {
			slog.Warn("vector store unavailable, semantic note lookup disabled", "err", err)
			vs = nil
		}
	} else {
		slog.Warn("no API key configured, tutor endpoint disabled")
	}

	tutorService := tutor.NewService(st, completer, vs, p.ModelTimeout)
	srv := server.NewServer(p, st, tutorService, vs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
