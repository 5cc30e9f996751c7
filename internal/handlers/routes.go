package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/snowpeak-resort/station-api/internal/auth"
)

type Handlers struct {
	Registration *RegistrationHandler
	Subscription *SubscriptionHandler
	Skier        *SkierHandler
	Course       *CourseHandler
	Instructor   *InstructorHandler
	Piste        *PisteHandler
	APIKey       *APIKeyHandler
}

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Ski Station API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/login", authHandler.HandleLogin)
	r.Get("/auth/callback", authHandler.HandleCallback)

	// Public reads
	huma.Get(api, "/skiers", h.Skier.HandleList)
	huma.Get(api, "/skiers/{id}", h.Skier.HandleGet)
	huma.Get(api, "/courses", h.Course.HandleList)
	huma.Get(api, "/courses/{id}", h.Course.HandleGet)
	huma.Get(api, "/instructors", h.Instructor.HandleList)
	huma.Get(api, "/instructors/{id}", h.Instructor.HandleGet)
	huma.Get(api, "/instructors/{id}/weeks", h.Registration.HandleInstructorWeeks)
	huma.Get(api, "/pistes", h.Piste.HandleList)
	huma.Get(api, "/pistes/{id}", h.Piste.HandleGet)
	huma.Get(api, "/subscriptions", h.Subscription.HandleByType)
	huma.Get(api, "/subscriptions/by-dates", h.Subscription.HandleByDateRange)
	huma.Get(api, "/subscriptions/{id}", h.Subscription.HandleGet)

	// Protected routes (staff only)
	r.Group(func(gr chi.Router) {
		gr.Use(authHandler.AuthMiddleware)

		adminConfig := config
		adminConfig.DocsPath = ""
		adminConfig.OpenAPIPath = ""
		adminConfig.SchemasPath = ""
		admin := humachi.New(gr, adminConfig)

		huma.Post(admin, "/registrations", h.Registration.HandleRegister, secured)
		huma.Post(admin, "/registrations/skier/{skierId}", h.Registration.HandleRegisterSkier, secured)
		huma.Put(admin, "/registrations/{id}/course/{courseId}", h.Registration.HandleAssignCourse, secured)

		huma.Post(admin, "/skiers", h.Skier.HandleCreate, secured)
		huma.Delete(admin, "/skiers/{id}", h.Skier.HandleDelete, secured)
		huma.Put(admin, "/skiers/{id}/piste/{pisteId}", h.Skier.HandleAssignPiste, secured)
		huma.Put(admin, "/skiers/{id}/subscription/{subscriptionId}", h.Skier.HandleAssignSubscription, secured)

		huma.Post(admin, "/courses", h.Course.HandleCreate, secured)
		huma.Put(admin, "/courses/{id}", h.Course.HandleUpdate, secured)

		huma.Post(admin, "/instructors", h.Instructor.HandleCreate, secured)

		huma.Post(admin, "/pistes", h.Piste.HandleCreate, secured)
		huma.Delete(admin, "/pistes/{id}", h.Piste.HandleDelete, secured)

		huma.Post(admin, "/subscriptions", h.Subscription.HandleCreate, secured)
		huma.Put(admin, "/subscriptions/{id}", h.Subscription.HandleUpdate, secured)
		huma.Get(admin, "/reports/revenue", h.Subscription.HandleRevenue, secured)

		huma.Post(admin, "/api-keys", h.APIKey.HandleCreate, secured)
		huma.Get(admin, "/api-keys", h.APIKey.HandleList, secured)
		huma.Delete(admin, "/api-keys/{id}", h.APIKey.HandleDelete, secured)
	})
}
