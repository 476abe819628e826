package http

import (
	"net/http"

	"eventforms/internal/delivery/http/controllers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, formController *controllers.FormController) *http.ServeMux {
	mux := http.NewServeMux()

	// List view
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/stats", eventController.GetStats)
	mux.HandleFunc("PATCH /events/{eventID}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", eventController.DeleteEvent)

	// Multi-step form sessions
	mux.HandleFunc("POST /form/sessions", formController.CreateSession)
	mux.HandleFunc("GET /form/sessions/{sessionID}", formController.GetSession)
	mux.HandleFunc("DELETE /form/sessions/{sessionID}", formController.DeleteSession)
	mux.HandleFunc("PATCH /form/sessions/{sessionID}/fields", formController.SetField)
	mux.HandleFunc("POST /form/sessions/{sessionID}/next", formController.Next)
	mux.HandleFunc("POST /form/sessions/{sessionID}/back", formController.Back)
	mux.HandleFunc("POST /form/sessions/{sessionID}/submit", formController.Submit)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
