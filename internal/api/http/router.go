package http

import (
	"fmt"
	"net/http"

	"staybook-backend/internal/config"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/security"
	"staybook-backend/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Services bundles the engine operations exposed over REST.
type Services struct {
	Auth         service.AuthService
	Users        service.UserService
	Properties   service.PropertyService
	Bookings     service.BookingService
	Availability service.AvailabilityService
	Supervision  service.SupervisionService
	Verification service.VerificationService
}

// Handler serves the REST API.
type Handler struct {
	svc            Services
	maxUploadBytes int64
}

// NewHandler serves svc. Document uploads larger than maxUploadBytes are
// refused while the request body is read.
func NewHandler(svc Services, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// NewRouter wires every route, the auth middleware and the outer CORS, access
// log and panic recovery layers.
func NewRouter(svc Services, tokenManager security.TokenManager, allowedOrigins []string, maxUploadBytes int64) http.Handler {
	h := NewHandler(svc, maxUploadBytes)
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	auth := &authenticator{tokenManager: tokenManager, roles: svc.Users}
	router.Use(auth.middleware)
	h.Routes(router)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))

	return recovery(requestID(accessLog(cors(router))))
}

// Routes attaches every named route to router. Route names key the
// security levels in config.EndpointSecurityConfig.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet).Name(config.RouteHealth)

	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost).Name(config.RouteRegister)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name(config.RouteLogin)

	r.HandleFunc("/users/me", h.GetMe).Methods(http.MethodGet).Name(config.RouteGetMe)
	r.HandleFunc("/users/me", h.UpdateMe).Methods(http.MethodPatch).Name(config.RouteUpdateMe)
	r.HandleFunc("/admin/users/{id:[0-9]+}/roles/{role}", h.SetRole).Methods(http.MethodPatch).Name(config.RouteSetRole)

	r.HandleFunc("/properties", h.CreateProperty).Methods(http.MethodPost).Name(config.RouteCreateProperty)
	r.HandleFunc("/properties", h.ListProperties).Methods(http.MethodGet).Name(config.RouteListProperties)
	r.HandleFunc("/properties/mine", h.ListMyProperties).Methods(http.MethodGet).Name(config.RouteListMyProperties)
	r.HandleFunc("/properties/{id:[0-9]+}", h.GetProperty).Methods(http.MethodGet).Name(config.RouteGetProperty)
	r.HandleFunc("/properties/{id:[0-9]+}", h.UpdateProperty).Methods(http.MethodPatch).Name(config.RouteUpdateProperty)
	r.HandleFunc("/properties/{id:[0-9]+}", h.DeleteProperty).Methods(http.MethodDelete).Name(config.RouteDeleteProperty)

	r.HandleFunc("/properties/{id:[0-9]+}/availability", h.GetAvailability).Methods(http.MethodGet).Name(config.RouteGetAvailability)
	r.HandleFunc("/properties/{id:[0-9]+}/availability/overrides", h.ListOverrides).Methods(http.MethodGet).Name(config.RouteListOverrides)
	r.HandleFunc("/properties/{id:[0-9]+}/availability/bulk", h.BulkSetOverrides).Methods(http.MethodPost).Name(config.RouteBulkSetOverrides)
	r.HandleFunc("/properties/{id:[0-9]+}/availability/bulk", h.BulkClearOverrides).Methods(http.MethodDelete).Name(config.RouteBulkClearOverrides)

	r.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost).Name(config.RouteCreateBooking)
	r.HandleFunc("/bookings", h.ListMyBookings).Methods(http.MethodGet).Name(config.RouteListMyBookings)
	r.HandleFunc("/bookings/received", h.ListReceivedBookings).Methods(http.MethodGet).Name(config.RouteListReceived)
	r.HandleFunc("/bookings/all", h.ListAllBookings).Methods(http.MethodGet).Name(config.RouteListAllBookings)
	r.HandleFunc("/bookings/{id:[0-9]+}", h.GetBooking).Methods(http.MethodGet).Name(config.RouteGetBooking)
	r.HandleFunc("/bookings/{id:[0-9]+}", h.ModifyBooking).Methods(http.MethodPatch).Name(config.RouteModifyBooking)
	r.HandleFunc("/bookings/{id:[0-9]+}/status", h.ChangeBookingStatus).Methods(http.MethodPatch).Name(config.RouteChangeBookingStatus)
	r.HandleFunc("/bookings/{id:[0-9]+}", h.CancelBooking).Methods(http.MethodDelete).Name(config.RouteCancelBooking)

	r.HandleFunc("/supervisions", h.AssignSupervisor).Methods(http.MethodPost).Name(config.RouteAssignSupervisor)
	r.HandleFunc("/supervisions", h.ListSupervisions).Methods(http.MethodGet).Name(config.RouteListSupervisions)
	r.HandleFunc("/supervisions/{id:[0-9]+}", h.RevokeSupervisor).Methods(http.MethodDelete).Name(config.RouteRevokeSupervisor)

	r.HandleFunc("/kyc/submit", h.SubmitVerification).Methods(http.MethodPost).Name(config.RouteSubmitVerification)
	r.HandleFunc("/kyc/mine", h.MyVerification).Methods(http.MethodGet).Name(config.RouteMyVerification)
	r.HandleFunc("/kyc/pending", h.PendingVerifications).Methods(http.MethodGet).Name(config.RoutePendingVerifications)
	r.HandleFunc("/kyc/documents", h.UploadDocument).Methods(http.MethodPost).Name(config.RouteUploadDocument)
	r.HandleFunc("/kyc/documents/{key:.+}", h.DownloadDocument).Methods(http.MethodGet).Name(config.RouteDownloadDocument)
	r.HandleFunc("/kyc/{id:[0-9]+}", h.GetVerification).Methods(http.MethodGet).Name(config.RouteGetVerification)
	r.HandleFunc("/kyc/{id:[0-9]+}/approve", h.ApproveVerification).Methods(http.MethodPatch).Name(config.RouteApproveVerification)
	r.HandleFunc("/kyc/{id:[0-9]+}/reject", h.RejectVerification).Methods(http.MethodPatch).Name(config.RouteRejectVerification)
	r.HandleFunc("/kyc/{id:[0-9]+}", h.WithdrawVerification).Methods(http.MethodDelete).Name(config.RouteWithdrawVerification)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("Recovered from panic", "detail", fmt.Sprint(v...))
}
