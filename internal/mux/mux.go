package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"weizen-server/internal/config"
	"weizen-server/internal/email"
	"weizen-server/internal/jwt"
	"weizen-server/pkg/account"
	"weizen-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxRoomKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version        string
	recaptcha      recaptcha
	email          *email.Client
	emailTemplates *email.Template
	pitBoss        *room.PitBoss

	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	pitBoss := room.NewPitBoss()
	pitBoss.StartShift()

	this := &Mux{
		Router:            gmux.NewRouter(),
		version:           version,
		pitBoss:           pitBoss,
		playerCreateDelay: time.Second * time.Duration(config.Instance().PlayerCreateDelay),
		recaptcha:         newRecaptcha(),
		email:             newEmailClient(),
	}

	if this.email != nil {
		templates, err := email.NewTemplate(config.Instance().Email.TemplatesPath)
		if err != nil {
			logrus.WithError(err).Fatal("could not load email templates")
		}

		this.emailTemplates = templates
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
		r.Methods(http.MethodGet).Path("/player/auth/{jwt:.*}").Handler(this.getPlayerAuthJWT())
		r.Methods(http.MethodPost).Path("/player/reset-password").Handler(this.postPlayerResetPasswordRequest())
		r.Methods(http.MethodGet).Path("/player/reset-password/{token}").Handler(this.getPlayerResetPasswordToken())
		r.Methods(http.MethodPost).Path("/player/reset-password/{token}").Handler(this.postPlayerResetPasswordToken())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}").Handler(this.postPlayerID())
		r.Methods(http.MethodGet).Path("/player/history").Handler(this.getPlayerHistory())

		r.Methods(http.MethodGet).Path("/room").Handler(this.getRoom())
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
		r.Methods(http.MethodPost).Path("/room/code/{code}/seat").Handler(this.postRoomCodeSeat())

		rr := r.PathPrefix("/room/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		rr.Use(this.roomMiddleware)

		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomUUID())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomUUIDWS())
		rr.Methods(http.MethodPost).Path("/seat").Handler(this.postRoomUUIDSeat())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
		r.Methods(http.MethodPost).Path("/admin/player/{id:[0-9]+}").Handler(this.postAdminPlayerID())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := account.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("Weizen-UserID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*account.Player)
		if !player.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func newEmailClient() *email.Client {
	cfg := config.Instance().Email
	if cfg.Disable || cfg.Host == "" {
		return nil
	}

	client, err := email.NewClient(cfg.From, cfg.Sender, cfg.Username, cfg.Password, cfg.Host)
	if err != nil {
		logrus.WithError(err).Fatal("could not create email client")
	}

	return client
}
