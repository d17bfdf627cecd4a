package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"tripleboardpoker-server/internal/config"
	"tripleboardpoker-server/internal/jwt"
	"tripleboardpoker-server/internal/mux"
	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
	"tripleboardpoker-server/pkg/table"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	store := table.NewStore()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, store, tableOptions()))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// tableOptions builds the default table options from the configuration.
// Unset values keep the game defaults.
func tableOptions() tripleboard.Options {
	opts := tripleboard.DefaultOptions()
	cfg := config.Instance().Table

	if cfg.SmallBlind > 0 {
		opts.SmallBlind = cfg.SmallBlind
	}
	if cfg.BigBlind > 0 {
		opts.BigBlind = cfg.BigBlind
	}
	if cfg.BetMin > 0 {
		opts.BetMin = cfg.BetMin
	}
	if cfg.BetMax > 0 {
		opts.BetMax = cfg.BetMax
	}
	if cfg.BuyInMin > 0 {
		opts.BuyInMin = cfg.BuyInMin
	}
	if cfg.BuyInMax > 0 {
		opts.BuyInMax = cfg.BuyInMax
	}
	if cfg.ActionTimeSeconds > 0 {
		opts.ActionTime = time.Second * time.Duration(cfg.ActionTimeSeconds)
	}
	if cfg.ArrangeTimeSeconds > 0 {
		opts.ArrangeTime = time.Second * time.Duration(cfg.ArrangeTimeSeconds)
	}

	return opts
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
