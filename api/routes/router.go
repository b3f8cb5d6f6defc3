package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/servicenest/checkout-engine/api/controllers"
	"github.com/servicenest/checkout-engine/api/middleware"
	checkoutsvc "github.com/servicenest/checkout-engine/internal/checkout"
	"github.com/servicenest/checkout-engine/internal/fieldstate"
	"github.com/servicenest/checkout-engine/pkg/config"
	"github.com/servicenest/checkout-engine/pkg/logger"
	"github.com/servicenest/checkout-engine/pkg/metrics"
	pkgredis "github.com/servicenest/checkout-engine/pkg/redis"
)

// Params collects what the router wires into handlers. Nil dependencies are
// skipped by readiness checks and idempotency.
type Params struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           controllers.Pinger
	Idempotency     pkgredis.IdempotencyStore
	Checkout        checkoutsvc.Service
	PaymentSessions fieldstate.Service
	CheckoutMetrics *metrics.CheckoutMetrics
	HTTPMetrics     *metrics.HTTPMetrics
	Gatherer        prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	readyDeps := map[string]controllers.Pinger{}
	if p.DB != nil {
		readyDeps["database"] = p.DB
	}
	if p.Redis != nil {
		readyDeps["redis"] = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})
	r.Handle("/metrics", metrics.Handler(p.Gatherer))

	idempotent := middleware.Idempotency(p.Idempotency, cfg.Checkout.IdempotencyTTL, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout/quote", controllers.CheckoutQuote(p.Checkout, logg))

		r.Route("/checkouts/{checkoutID}", func(r chi.Router) {
			r.Get("/snapshot", controllers.CheckoutSnapshot(p.Checkout, logg))
			r.With(idempotent).Post("/drafts", controllers.CheckoutQueueDraft(p.Checkout, logg))
			r.Put("/drafts/current", controllers.CheckoutSetCurrentDraft(p.Checkout, logg))
			r.With(idempotent).Post("/drafts/current/queue", controllers.CheckoutQueueCurrentDraft(p.Checkout, logg))
		})

		r.Route("/payment-sessions", func(r chi.Router) {
			r.Post("/", controllers.PaymentSessionCreate(p.PaymentSessions, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.PaymentSessionGet(p.PaymentSessions, logg))
				r.Delete("/", controllers.PaymentSessionDiscard(p.PaymentSessions, logg))
				r.Put("/method", controllers.PaymentSessionSwitchMethod(p.PaymentSessions, logg))
				r.Post("/fields/{field}/change", controllers.PaymentFieldChange(p.PaymentSessions, logg))
				r.Post("/fields/{field}/blur", controllers.PaymentFieldBlur(p.PaymentSessions, logg))
				r.Post("/submit", controllers.PaymentSessionSubmit(p.PaymentSessions, logg))
			})
		})

		r.Post("/payment-fields/validate", controllers.PaymentFieldValidate(p.CheckoutMetrics, logg))
		r.Get("/banks", controllers.Banks())
	})

	return r
}
