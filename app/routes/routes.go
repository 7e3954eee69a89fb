package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"simpleblog/app/controllers"
	"simpleblog/app/middleware"
	"simpleblog/app/repositories"
	"simpleblog/app/services"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(store repositories.Store) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.ContentTypeJSON)

	postController := controllers.NewPostController(services.NewPostService(store))
	commentController := controllers.NewCommentController(services.NewCommentService(store))

	router.HandleFunc("/healthz", healthz).Methods("GET")

	// Posts endpoints. Registered on the root router so a method mismatch
	// reaches MethodNotAllowedHandler; subrouters report it as not found.
	router.HandleFunc("/posts", postController.Index).Methods("GET")
	router.HandleFunc("/posts", postController.Create).Methods("POST")
	router.HandleFunc("/posts/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id}", postController.Update).Methods("PUT")
	router.HandleFunc("/posts/{id}", postController.Delete).Methods("DELETE")

	// Comments endpoints, always scoped to their post
	router.HandleFunc("/posts/{post_id}/comments", commentController.Index).Methods("GET")
	router.HandleFunc("/posts/{post_id}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/posts/{post_id}/comments/{comment_id}", commentController.Show).Methods("GET")
	router.HandleFunc("/posts/{post_id}/comments/{comment_id}", commentController.Update).Methods("PUT")
	router.HandleFunc("/posts/{post_id}/comments/{comment_id}", commentController.Delete).Methods("DELETE")

	// Middleware registered with Use does not run for unmatched requests.
	router.NotFoundHandler = jsonStatus(http.StatusNotFound, "Not Found")
	router.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "Method Not Allowed")

	return router
}

// NewHandler wraps the router with the request-scoped middleware. CORS sits
// outside the router so preflight requests never need a matching route.
func NewHandler(store repositories.Store, log *slog.Logger) http.Handler {
	var h http.Handler = SetupRoutes(store)
	h = middleware.CORS(h)
	h = middleware.Recoverer(h)
	h = middleware.Logger(h)
	return middleware.RequestID(log)(h)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func jsonStatus(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"detail": message})
	})
}
