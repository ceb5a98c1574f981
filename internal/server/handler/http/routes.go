// Package http provides HTTP routing and handlers for the inventory API.
package http

import (
	"net/http"

	"github.com/lionscars/inventory/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the inventory API.
//
// Routes:
//
//	GET    /autos                    → vehicles.List
//	POST   /autos                    → vehicles.Create
//	PUT    /autos/{id}               → vehicles.Update
//	DELETE /autos/{id}               → vehicles.Delete
//	POST   /autos/{id}/view          → vehicles.View
//	POST   /autos/{id}/interested    → vehicles.Interested
//	POST   /autos/reset-metrics      → vehicles.ResetMetrics
//	GET/POST /brands, DELETE /brands/{id}   → refs
//	GET/POST /colors, DELETE /colors/{id}   → refs
//	GET/POST /users,  DELETE /users/{id}    → refs
//	POST   /login                    → auth.Login
//	POST   /upload                   → uploads.Upload (multipart)
//	GET    /autoefec/*               → uploaded images (static)
//
// The JSON group rejects non-JSON request bodies; the upload and static
// routes sit outside it.
func NewRouter(
	vehicles *VehicleHandler,
	refs *ReferenceHandler,
	auth *AuthHandler,
	uploads *UploadHandler,
	uploadDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Group(func(r chi.Router) {
		// Only allow requests with Content-Type: application/json
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Route("/autos", func(r chi.Router) {
			r.Get("/", vehicles.List)
			r.Post("/", vehicles.Create)
			r.Post("/reset-metrics", vehicles.ResetMetrics)
			r.Put("/{id}", vehicles.Update)
			r.Delete("/{id}", vehicles.Delete)
			r.Post("/{id}/view", vehicles.View)
			r.Post("/{id}/interested", vehicles.Interested)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", refs.ListBrands)
			r.Post("/", refs.CreateBrand)
			r.Delete("/{id}", refs.DeleteBrand)
		})

		r.Route("/colors", func(r chi.Router) {
			r.Get("/", refs.ListColors)
			r.Post("/", refs.CreateColor)
			r.Delete("/{id}", refs.DeleteColor)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", refs.ListUsers)
			r.Post("/", refs.CreateUser)
			r.Delete("/{id}", refs.DeleteUser)
		})

		r.Post("/login", auth.Login)
	})

	// Image upload (multipart) and public serving of the uploaded tree.
	r.Post("/upload", uploads.Upload)
	r.Handle("/autoefec/*", http.StripPrefix("/autoefec/", http.FileServer(http.Dir(uploadDir))))

	return r
}
