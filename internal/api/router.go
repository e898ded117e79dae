package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_booking"
	checkBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/check_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_booking"
	deleteUserHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/delete_user"
	getBlockHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_block"
	getBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_booking"
	getCourtsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_courts"
	getDayScheduleHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_day_schedule"
	getMeHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_me"
	getUserBookingsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_user_bookings"
	listUsersHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/login"
	moveBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/move_booking"
	registerHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/register"
	updateBookingHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_booking"
	updateUserRoleHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_user_role"
	updateUserStatusHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_user_status"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingsService "github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	usersService "github.com/m04kA/SMC-CourtBookingService/internal/service/users"
	cancelBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
	checkBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/check_booking"
	createBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	getBlockUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_block"
	getDayScheduleUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_day_schedule"
	moveBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/move_booking"
	updateBookingUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

// Dependencies сервисы и use cases, из которых собираются handlers
type Dependencies struct {
	Users    *usersService.Service
	Bookings *bookingsService.Service
	Courts   *domain.Courts

	CheckBooking   *checkBookingUC.UseCase
	CreateBooking  *createBookingUC.UseCase
	UpdateBooking  *updateBookingUC.UseCase
	CancelBooking  *cancelBookingUC.UseCase
	MoveBooking    *moveBookingUC.UseCase
	GetDaySchedule *getDayScheduleUC.UseCase
	GetBlock       *getBlockUC.UseCase

	// Metrics nil, если метрики выключены
	Metrics     *metrics.Metrics
	MetricsPath string

	Logger *logger.Logger
}

// NewRouter настраивает маршруты API
func NewRouter(d Dependencies) *mux.Router {
	log := d.Logger

	r := mux.NewRouter()

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", registerHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/courts", getCourtsHandler.NewHandler(d.Courts).Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен подтверждённого пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(d.Users, log))

	protected.HandleFunc("/auth/me", getMeHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodGet)

	// --- Расписание ---
	protected.HandleFunc("/schedule", getDayScheduleHandler.NewHandler(d.GetDaySchedule, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/courts/{courtId}/blocks", getBlockHandler.NewHandler(d.GetBlock, log).Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// check регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/check", checkBookingHandler.NewHandler(d.CheckBooking, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", createBookingHandler.NewHandler(d.CreateBooking, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBookingHandler.NewHandler(d.Bookings, log).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBookingHandler.NewHandler(d.UpdateBooking, log).Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", cancelBookingHandler.NewHandler(d.CancelBooking, log).Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/move", moveBookingHandler.NewHandler(d.MoveBooking, log).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/bookings", getUserBookingsHandler.NewHandler(d.Bookings, log).Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("/users").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("", listUsersHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodGet)
	admin.HandleFunc("/{userId}/status", updateUserStatusHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/{userId}/role", updateUserRoleHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/{userId}", deleteUserHandler.NewHandler(d.Users, log).Handle).Methods(http.MethodDelete)

	return r
}
