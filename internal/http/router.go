package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/account"
	"github.com/MrJamesThe3rd/finwise/internal/http/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/http/analytics"
	"github.com/MrJamesThe3rd/finwise/internal/http/community"
	"github.com/MrJamesThe3rd/finwise/internal/http/export"
	"github.com/MrJamesThe3rd/finwise/internal/http/friend"
	"github.com/MrJamesThe3rd/finwise/internal/http/matching"
	"github.com/MrJamesThe3rd/finwise/internal/http/news"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/http/rewards"
	"github.com/MrJamesThe3rd/finwise/internal/http/split"
	"github.com/MrJamesThe3rd/finwise/internal/http/transaction"
	"github.com/MrJamesThe3rd/finwise/internal/http/translate"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
	Tokens         *auth.Tokens
}

type Handlers struct {
	Accounts     *account.Handler
	Transactions *transaction.Handler
	Rewards      *rewards.Handler
	Friends      *friend.Handler
	Splits       *split.Handler
	Analytics    *analytics.Handler
	Advisor      *advisor.Handler
	Community    *community.Handler
	News         *news.Handler
	Translate    *translate.Handler
	Matching     *matching.Handler
	Export       *export.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(opts.Timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Accounts.PublicRoutes(r)
		})

		r.Route("/news", h.News.Routes)
		r.Route("/translate", h.Translate.Routes)

		r.Group(func(r chi.Router) {
			r.Use(opts.Tokens.Middleware)

			h.Accounts.Routes(r)
			h.Rewards.Routes(r)

			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/friends", h.Friends.Routes)
			r.Route("/splits", h.Splits.Routes)
			r.Route("/analytics", h.Analytics.Routes)
			r.Route("/suggestions", h.Advisor.Routes)
			r.Route("/community/posts", h.Community.Routes)
			r.Route("/matching", h.Matching.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
