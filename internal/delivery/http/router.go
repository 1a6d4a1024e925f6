package http

import (
	"net/http"

	"telemed-scheduling/internal/delivery/http/handler"
	"telemed-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	slotHandler        *handler.SlotHandler
	appointmentHandler *handler.AppointmentHandler
	reviewHandler      *handler.ReviewHandler
	userHandler        *handler.UserHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	reviewHandler *handler.ReviewHandler,
	userHandler *handler.UserHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		slotHandler:        slotHandler,
		appointmentHandler: appointmentHandler,
		reviewHandler:      reviewHandler,
		userHandler:        userHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Slot browsing (public)
	api.HandleFunc("/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/slots/doctor/{doctorId}", r.slotHandler.GetDoctorSlots).Methods(http.MethodGet)

	// Slot management (doctor or admin)
	slots := api.PathPrefix("/slots").Subrouter()
	slots.Use(r.authMiddleware.Authenticate)
	slots.Use(middleware.RequireAdminOrDoctor)
	slots.HandleFunc("", r.slotHandler.CreateSlot).Methods(http.MethodPost)
	slots.HandleFunc("/{id}", r.slotHandler.UpdateSlot).Methods(http.MethodPut)
	slots.HandleFunc("/{id}", r.slotHandler.DeleteSlot).Methods(http.MethodDelete)

	// Appointments (any authenticated role; usecases scope by actor)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/prescription", r.appointmentHandler.GetPrescription).Methods(http.MethodGet)

	// Booking is patient-only
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequirePatient)
	booking.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)

	// Prescriptions are written by doctors
	prescriptions := api.PathPrefix("/appointments").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.Use(middleware.RequireDoctor)
	prescriptions.HandleFunc("/{id}/prescription", r.appointmentHandler.CreatePrescription).Methods(http.MethodPost)

	// Reviews: reading is public, writing is patient-only
	api.HandleFunc("/reviews/doctor/{doctorId}", r.reviewHandler.GetDoctorReviews).Methods(http.MethodGet)
	api.HandleFunc("/reviews/{id}", r.reviewHandler.GetReview).Methods(http.MethodGet)

	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.Use(r.authMiddleware.Authenticate)
	reviews.HandleFunc("", r.reviewHandler.CreateReview).Methods(http.MethodPost)
	reviews.HandleFunc("/{id}", r.reviewHandler.UpdateReview).Methods(http.MethodPut)
	reviews.HandleFunc("/{id}", r.reviewHandler.DeleteReview).Methods(http.MethodDelete)

	// Users: doctor directory is public, the rest needs a session
	api.HandleFunc("/users/doctors", r.userHandler.GetDoctors).Methods(http.MethodGet)

	usersAdmin := api.PathPrefix("/users").Subrouter()
	usersAdmin.Use(r.authMiddleware.Authenticate)
	usersAdmin.Use(middleware.RequireAdmin)
	usersAdmin.HandleFunc("", r.userHandler.GetUsers).Methods(http.MethodGet)

	// The patient roster is for treating doctors and admins, never patients
	usersStaff := api.PathPrefix("/users").Subrouter()
	usersStaff.Use(r.authMiddleware.Authenticate)
	usersStaff.Use(middleware.RequireAdminOrDoctor)
	usersStaff.HandleFunc("/patients", r.userHandler.GetPatients).Methods(http.MethodGet)

	// Registered after the fixed /users paths so {id} cannot shadow them.
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)

	// Audit trail (admin only)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAdmin)
	audit.HandleFunc("", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
