package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/tracksure/tracksure/internal/activity"
	"github.com/tracksure/tracksure/internal/assistant"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/category"
	"github.com/tracksure/tracksure/internal/dashboard"
	"github.com/tracksure/tracksure/internal/document"
	"github.com/tracksure/tracksure/internal/notification"
	"github.com/tracksure/tracksure/internal/product"
	"github.com/tracksure/tracksure/internal/qrcode"
	"github.com/tracksure/tracksure/internal/realtime"
	"github.com/tracksure/tracksure/internal/status"
	"github.com/tracksure/tracksure/internal/tenant"
	"github.com/tracksure/tracksure/internal/transport/middleware"
	"github.com/tracksure/tracksure/internal/transport/swagger"
	"github.com/tracksure/tracksure/internal/upload"
	"github.com/tracksure/tracksure/internal/user"
)

// Handlers carries every HTTP handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Tenant       *tenant.Handler
	User         *user.Handler
	Category     *category.Handler
	Status       *status.Handler
	Product      *product.Handler
	Document     *document.Handler
	QRCode       *qrcode.Handler
	Notification *notification.Handler
	Realtime     *realtime.Handler
	Dashboard    *dashboard.Handler
	Assistant    *assistant.Handler
	Upload       *upload.Handler
	Activity     *activity.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// WebSocket endpoint authenticates via ?token= inside the handler.
	router.Get("/ws", h.Realtime.Serve)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/signup", h.Auth.Signup)
			sr.Post("/login", h.Auth.Login)
		})

		// Public scan page, no session required.
		r.Get("/qrcode/scan/{tenantID}", h.QRCode.Scan)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)

			pr.Get("/auth/me", h.Auth.Me)

			pr.Route("/tenant", func(tr chi.Router) {
				tr.Get("/", h.Tenant.Get)
				tr.Put("/", h.Tenant.Update)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.User.ListUsers)
				ur.Post("/", h.User.CreateUser)
				ur.Put("/{id}", h.User.UpdateUser)
				ur.Delete("/{id}", h.User.DeleteUser)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.Get("/", h.User.ListRoles)
				rr.Post("/", h.User.CreateRole)
				rr.Put("/{id}", h.User.UpdateRole)
				rr.Delete("/{id}", h.User.DeleteRole)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.List)
				cr.Post("/", h.Category.Create)
				cr.Put("/{id}", h.Category.Update)
				cr.Delete("/{id}", h.Category.Delete)
			})

			pr.Route("/product_status", func(sr chi.Router) {
				sr.Get("/", h.Status.List)
				sr.Post("/", h.Status.Create)
				sr.Put("/{id}", h.Status.Update)
				sr.Delete("/{id}", h.Status.Delete)
			})

			pr.Route("/products", func(pdr chi.Router) {
				pdr.Get("/", h.Product.List)
				pdr.Post("/", h.Product.Create)
				pdr.Put("/bulk", h.Product.BulkUpdate)
				pdr.Get("/{id}", h.Product.Get)
				pdr.Put("/{id}", h.Product.Update)
				pdr.Delete("/{id}", h.Product.Delete)
			})

			pr.Route("/docs", func(dr chi.Router) {
				dr.Get("/folders", h.Document.ListFolders)
				dr.Post("/folders", h.Document.CreateFolder)
				dr.Put("/folders/{id}", h.Document.UpdateFolder)
				dr.Delete("/folders/{id}", h.Document.DeleteFolder)

				dr.Get("/", h.Document.ListDocuments)
				dr.Post("/", h.Document.CreateDocument)
				dr.Put("/{id}", h.Document.UpdateDocument)
				dr.Delete("/{id}", h.Document.DeleteDocument)
				dr.Post("/{id}/restore", h.Document.RestoreDocument)
			})

			pr.Route("/qrcode", func(qr chi.Router) {
				qr.Get("/", h.QRCode.List)
				qr.Post("/", h.QRCode.Create)
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.List)
				nr.Put("/read", h.Notification.UpdateRead)
			})

			pr.Get("/dashboard", h.Dashboard.Summary)
			pr.Get("/activity-logs", h.Activity.List)

			pr.Route("/trackbot/chats", func(tr chi.Router) {
				tr.Get("/", h.Assistant.ListChats)
				tr.Post("/", h.Assistant.CreateChat)
				tr.Get("/{id}/messages", h.Assistant.ListMessages)
				tr.Post("/{id}/messages", h.Assistant.SendMessage)
			})

			pr.Route("/upload", func(ur chi.Router) {
				ur.Post("/document", h.Upload.Document)
				ur.Post("/product-image", h.Upload.ProductImage)
			})
		})
	})
}
