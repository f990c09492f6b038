package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"sportteammanager/internal/delivery/http/controllers"
	"sportteammanager/internal/delivery/http/middleware"
	"sportteammanager/internal/domain"
	"sportteammanager/internal/metrics"
)

// NewRouter initializes the HTTP router with all application routes.
// The guest link endpoints and auth endpoints are public; everything else
// requires a Bearer token.
func NewRouter(
	authController *controllers.AuthController,
	teamController *controllers.TeamController,
	eventController *controllers.EventController,
	invitationController *controllers.InvitationController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
	m *metrics.Metrics,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /users/me", auth(authController.GetMe))

	// Teams
	mux.HandleFunc("POST /teams", auth(teamController.CreateTeam))
	mux.HandleFunc("GET /teams/{teamID}", auth(teamController.GetTeam))
	mux.HandleFunc("PATCH /teams/{teamID}", auth(teamController.UpdateTeam))
	mux.HandleFunc("DELETE /teams/{teamID}", auth(teamController.DeleteTeam))
	mux.HandleFunc("PUT /teams/{teamID}/owner", auth(teamController.ChangeOwner))
	mux.HandleFunc("POST /teams/{teamID}/subgroups", auth(teamController.CreateSubgroup))
	mux.HandleFunc("PATCH /teams/{teamID}/subgroups/{name}", auth(teamController.RenameSubgroup))
	mux.HandleFunc("DELETE /teams/{teamID}/subgroups/{name}", auth(teamController.DeleteSubgroup))
	mux.HandleFunc("POST /teams/{teamID}/members", auth(teamController.AddMember))
	mux.HandleFunc("DELETE /teams/{teamID}/members/{email}", auth(teamController.RemoveMember))
	mux.HandleFunc("POST /teams/{teamID}/subgroups/{name}/members", auth(teamController.AddMemberToSubgroup))
	mux.HandleFunc("DELETE /teams/{teamID}/subgroups/{name}/members/{email}", auth(teamController.RemoveMemberFromSubgroup))

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(eventController.CancelEvent))
	mux.HandleFunc("POST /events/{eventID}/messages", auth(eventController.PostMessage))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(invitationController.Invite))
	mux.HandleFunc("POST /events/{eventID}/invitations/batch", auth(invitationController.InviteBatch))
	mux.HandleFunc("PATCH /events/{eventID}/invitations", auth(invitationController.ChangeStatus))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(invitationController.ListByStatus))
	mux.HandleFunc("DELETE /events/{eventID}/invitations/{email}", auth(invitationController.Withdraw))
	mux.HandleFunc("POST /events/{eventID}/guests", auth(invitationController.CreateGuest))

	// Guest links (public, anonymous)
	mux.HandleFunc("GET /guest/{token}", invitationController.ResolveGuestLink)
	mux.HandleFunc("POST /guest/{token}/status", invitationController.ChangeGuestStatus)

	// Operational endpoints
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
