package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/handler"
	customMiddleware "github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/middleware"
)

// RouterConfig содержит конфигурацию для роутера
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	PlaceHandler       *handler.PlaceHandler
	TeamHandler        *handler.TeamHandler
	TeamMemberHandler  *handler.TeamMemberHandler
	BookingHandler     *handler.BookingHandler
	ParticipantHandler *handler.ParticipantHandler
	RequestHandler     *handler.RequestHandler
	WSHandler          *handler.WSHandler
	HealthHandler      *handler.HealthHandler
	TokenParser        customMiddleware.TokenParser
}

// NewRouter создает и настраивает роутер
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	auth := customMiddleware.Auth(cfg.TokenParser)

	// Health check
	r.Get("/health", cfg.HealthHandler.Check)

	// Websocket-подписки
	r.Get("/ws/bookings/{placeId}/{date}", cfg.WSHandler.SubscribeBookings)
	r.Get("/ws/notifications/{userId}", cfg.WSHandler.SubscribeNotifications)

	r.Route("/api", func(r chi.Router) {
		// Аутентификация
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Пользователи
		r.Route("/users", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", cfg.UserHandler.Filter)
			r.Post("/check-password", cfg.UserHandler.CheckPassword)
			r.Get("/{id}", cfg.UserHandler.GetByID)
			r.Patch("/{id}", cfg.UserHandler.Update)
			r.Delete("/{id}", cfg.UserHandler.Delete)
		})

		// Площадки
		r.Route("/places", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", cfg.PlaceHandler.Create)
			r.Get("/", cfg.PlaceHandler.Filter)
			r.Get("/{id}", cfg.PlaceHandler.GetByID)
			r.Patch("/{id}", cfg.PlaceHandler.Update)
			r.Delete("/{id}", cfg.PlaceHandler.Delete)
		})

		// Команды
		r.Route("/teams", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", cfg.TeamHandler.Create)
			r.Get("/", cfg.TeamHandler.Filter)
			r.Get("/my", cfg.TeamHandler.GetMy)
			r.Get("/others", cfg.TeamHandler.GetOthers)
			r.Get("/{id}", cfg.TeamHandler.GetByID)
			r.Patch("/{id}", cfg.TeamHandler.Update)
			r.Delete("/{id}", cfg.TeamHandler.Delete)
		})

		// Участники команд; respond-mail доступен по ссылке из письма без токена
		r.Route("/team-members", func(r chi.Router) {
			r.Get("/respond-mail/{id}", cfg.TeamMemberHandler.RespondToInvitationByMail)
			r.Get("/join-request/respond-mail/{id}/{organizerId}", cfg.TeamMemberHandler.RespondToJoinRequestByMail)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/invite/{teamId}", cfg.TeamMemberHandler.Invite)
				r.Post("/join-request/{teamId}", cfg.TeamMemberHandler.RequestToJoin)
				r.Get("/respond/{id}", cfg.TeamMemberHandler.RespondToInvitation)
				r.Get("/join-request/respond/{id}/{organizerId}", cfg.TeamMemberHandler.RespondToJoinRequest)
				r.Get("/join-requests/{teamId}", cfg.TeamMemberHandler.GetPendingByTeam)
				r.Get("/team/{teamId}", cfg.TeamMemberHandler.GetByTeam)
				r.Get("/user/{userId}", cfg.TeamMemberHandler.GetByUser)
				r.Get("/is-organizer/{teamId}", cfg.TeamMemberHandler.IsOrganizer)
				r.Get("/{id}", cfg.TeamMemberHandler.GetByID)
				r.Delete("/{id}", cfg.TeamMemberHandler.Delete)
			})
		})

		// Брони
		r.Route("/booking-matches", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", cfg.BookingHandler.Create)
			r.Patch("/confirm/{id}", cfg.BookingHandler.Confirm)
			r.Patch("/cancel/{id}", cfg.BookingHandler.Cancel)
			r.Get("/all", cfg.BookingHandler.GetAll)
			r.Get("/my/organizer", cfg.BookingHandler.GetMyOrganized)
			r.Get("/details/{id}", cfg.BookingHandler.GetDetail)
			r.Get("/user/{userId}", cfg.BookingHandler.GetByUser)
			r.Get("/team/{teamId}", cfg.BookingHandler.GetByTeam)
			r.Get("/place/{placeId}", cfg.BookingHandler.GetByPlace)
			r.Get("/{id}", cfg.BookingHandler.GetByID)
		})

		// Участники матчей; respond-mail доступен по ссылке из письма без токена
		r.Route("/match-participants", func(r chi.Router) {
			r.Get("/respond-mail/{id}", cfg.ParticipantHandler.RespondByMail)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/invite/{matchId}", cfg.ParticipantHandler.Invite)
				r.Post("/join-as-organizer/{matchId}", cfg.ParticipantHandler.JoinAsOrganizer)
				r.Get("/respond/{id}", cfg.ParticipantHandler.Respond)
				r.Get("/match/{matchId}", cfg.ParticipantHandler.GetByMatch)
				r.Get("/user/matches", cfg.ParticipantHandler.GetUserMatches)
				r.Get("/user/matches/details", cfg.ParticipantHandler.GetUserMatchesDetails)
			})
		})

		// Запросы
		r.Route("/requests", func(r chi.Router) {
			r.Use(auth)
			r.Get("/received", cfg.RequestHandler.GetReceived)
			r.Get("/sent", cfg.RequestHandler.GetSent)
		})
	})

	return r
}
