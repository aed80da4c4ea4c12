package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/dkeye/patchbay/internal/adapters/rtc"
	"github.com/dkeye/patchbay/internal/adapters/signal"
	"github.com/dkeye/patchbay/internal/app/orch"
	"github.com/dkeye/patchbay/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	sessionName   = "PatchbaySessions"
	observerKey   = "observer"
	roleObserver  = "observer"
	observerParam = "token"
)

// observerAuth decides whether a request carries the observer capability:
// an open server, a session granted earlier, or the token itself.
type observerAuth struct {
	token string
}

func (a observerAuth) tokenOK(candidate string) bool {
	if a.token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.token)) == 1
}

func (a observerAuth) allowed(c *gin.Context) bool {
	if a.token == "" {
		return true
	}
	if granted, _ := sessions.Default(c).Get(observerKey).(bool); granted {
		return true
	}
	if t := c.Query(observerParam); t != "" {
		return a.tokenOK(t)
	}
	return false
}

// RequireObserver aborts with 401 unless the request is allowed to observe.
func (a observerAuth) RequireObserver() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.allowed(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "observer capability required"})
			return
		}
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) (*gin.Engine, error) {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	iceServers, err := rtc.ParseICEServers(cfg.ICEServers, cfg.TURNUsername, cfg.TURNCredential)
	if err != nil {
		return nil, err
	}
	iceServers = rtc.WebRTCConfig(iceServers).ICEServers

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	auth := observerAuth{token: cfg.ObserverToken}
	ctrl := signal.NewSignalWSController(o, cfg)

	r.GET("/healthz", func(c *gin.Context) {
		clients, routes := o.Counts()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "clients": clients, "routes": routes})
	})

	api := r.Group("/api")

	api.GET("/ice", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})

	api.POST("/observer/session", func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		_ = c.ShouldBindJSON(&req)
		if !auth.tokenOK(req.Token) {
			log.Warn().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("observer session refused")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}
		sess := sessions.Default(c)
		sess.Set(observerKey, true)
		if err := sess.Save(); err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("session save")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"observer": true})
	})

	api.DELETE("/observer/session", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Delete(observerKey)
		_ = sess.Save()
		c.Status(http.StatusNoContent)
	})

	api.GET("/topology", auth.RequireObserver(), func(c *gin.Context) {
		c.JSON(http.StatusOK, o.Snapshot())
	})

	api.GET("/ws/signal", func(c *gin.Context) {
		privileged := c.Query("role") == roleObserver
		if privileged && !auth.allowed(c) {
			log.Warn().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("observer upgrade refused")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "observer capability required"})
			return
		}
		ctrl.HandleSignal(ctx, c, privileged)
	})

	log.Info().Str("module", "adapters.http").Int("ice_servers", len(iceServers)).Bool("observer_open", cfg.ObserverToken == "").Msg("router setup")
	return r, nil
}
