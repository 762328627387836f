package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finwise/internal/account"
	accountStore "github.com/MrJamesThe3rd/finwise/internal/account/store"
	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/analytics"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/community"
	communityStore "github.com/MrJamesThe3rd/finwise/internal/community/store"
	"github.com/MrJamesThe3rd/finwise/internal/config"
	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/export"
	"github.com/MrJamesThe3rd/finwise/internal/friend"
	friendStore "github.com/MrJamesThe3rd/finwise/internal/friend/store"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	gameStore "github.com/MrJamesThe3rd/finwise/internal/gamification/store"
	finwiseHttp "github.com/MrJamesThe3rd/finwise/internal/http"
	accountHandler "github.com/MrJamesThe3rd/finwise/internal/http/account"
	advisorHandler "github.com/MrJamesThe3rd/finwise/internal/http/advisor"
	analyticsHandler "github.com/MrJamesThe3rd/finwise/internal/http/analytics"
	communityHandler "github.com/MrJamesThe3rd/finwise/internal/http/community"
	exportHandler "github.com/MrJamesThe3rd/finwise/internal/http/export"
	friendHandler "github.com/MrJamesThe3rd/finwise/internal/http/friend"
	matchingHandler "github.com/MrJamesThe3rd/finwise/internal/http/matching"
	newsHandler "github.com/MrJamesThe3rd/finwise/internal/http/news"
	rewardsHandler "github.com/MrJamesThe3rd/finwise/internal/http/rewards"
	splitHandler "github.com/MrJamesThe3rd/finwise/internal/http/split"
	txHandler "github.com/MrJamesThe3rd/finwise/internal/http/transaction"
	translateHandler "github.com/MrJamesThe3rd/finwise/internal/http/translate"
	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/logging"
	"github.com/MrJamesThe3rd/finwise/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finwise/internal/matching/store"
	"github.com/MrJamesThe3rd/finwise/internal/news"
	"github.com/MrJamesThe3rd/finwise/internal/split"
	splitStore "github.com/MrJamesThe3rd/finwise/internal/split/store"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finwise/internal/transaction/store"
	"github.com/MrJamesThe3rd/finwise/internal/translate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	var (
		clk    = clock.System{}
		tokens = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		policy = gamification.Policy{
			FirstNBonusThreshold: cfg.Policy.FirstNBonusThreshold,
			PenaltyEnabled:       cfg.Policy.PenaltyEnabled,
			AchievementsEnabled:  cfg.Policy.AchievementsEnabled,
		}
		accounts = accountStore.New(db)
		gemini   = advisor.NewGemini(advisor.GeminiConfig{
			BaseURL:      cfg.Gemini.BaseURL,
			APIKey:       cfg.Gemini.APIKey,
			Model:        cfg.Gemini.Model,
			KeywordModel: cfg.Gemini.KeywordModel,
			Timeout:      cfg.Gemini.Timeout,
		})
	)

	var (
		accountService     = account.NewService(accounts)
		transactionService = transaction.NewService(txStore.New(db))
		gameService        = gamification.NewService(gameStore.New(db), clk, policy)
		friendService      = friend.NewService(friendStore.New(db))
		splitService       = split.NewService(splitStore.New(db), friendService, clk)
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(matchingService, gameService)
		analyticsService   = analytics.NewService(transactionService, clk)
		advisorService     = advisor.NewService(transactionService, gemini, clk)
		communityService   = community.NewService(communityStore.New(db), gemini, accounts, clk)
		exportService      = export.NewService(transactionService, clk)
		newsClient         = news.NewClient(news.Config{
			BaseURL: cfg.News.BaseURL,
			APIKey:  cfg.News.APIKey,
			Timeout: cfg.News.Timeout,
		}, clk)
		translator = translate.New(translate.Config{
			BaseURL:         cfg.Translate.BaseURL,
			APIKey:          cfg.Translate.APIKey,
			DefaultLanguage: cfg.Translate.DefaultLanguage,
			Timeout:         cfg.Translate.Timeout,
		})
	)

	router := finwiseHttp.New(finwiseHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tokens:         tokens,
	}, finwiseHttp.Handlers{
		Accounts:     accountHandler.NewHandler(accountService, tokens),
		Transactions: txHandler.NewHandler(transactionService, gameService, importService),
		Rewards:      rewardsHandler.NewHandler(gameService),
		Friends:      friendHandler.NewHandler(friendService),
		Splits:       splitHandler.NewHandler(splitService),
		Analytics:    analyticsHandler.NewHandler(analyticsService),
		Advisor:      advisorHandler.NewHandler(advisorService),
		Community:    communityHandler.NewHandler(communityService),
		News:         newsHandler.NewHandler(newsClient),
		Translate:    translateHandler.NewHandler(translator),
		Matching:     matchingHandler.NewHandler(matchingService),
		Export:       exportHandler.NewHandler(exportService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
