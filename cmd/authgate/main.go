// Command authgate runs the token lifecycle service: register, login,
// refresh, and logout over HTTP, backed by Redis for revocation and SQLite
// for accounts.
//
// Configuration comes from the environment (prefix AUTHGATE_):
//
//	AUTHGATE_ACCESS_SECRET   access-domain signing secret (required)
//	AUTHGATE_REFRESH_SECRET  refresh-domain signing secret (required)
//	AUTHGATE_REDIS_ADDR      revocation cache endpoint (default localhost:6379)
//	AUTHGATE_DB_PATH         SQLite database path (default authgate.db)
//	AUTHGATE_LISTEN_ADDR     HTTP listen address (default :8080)
//	AUTHGATE_ENV             "production" enables secure cookies and JSON logs
//	AUTHGATE_SMTP_ADDR       SMTP endpoint for login alerts (optional)
//	AUTHGATE_SMTP_FROM       sender address for login alerts
//	AUTHGATE_SMTP_USER       SMTP auth username (optional)
//	AUTHGATE_SMTP_PASS       SMTP auth password (optional)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	authgate "github.com/tokenforge/authgate"
	"github.com/tokenforge/authgate/internal/httpapi"
	"github.com/tokenforge/authgate/internal/userstore"
	"github.com/tokenforge/authgate/notify"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("authgate")
	v.AutomaticEnv()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("db_path", "authgate.db")
	v.SetDefault("env", "development")

	production := v.GetString("env") == "production"

	var logger *zap.Logger
	var err error
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	accessSecret := v.GetString("access_secret")
	refreshSecret := v.GetString("refresh_secret")
	if accessSecret == "" || refreshSecret == "" {
		logger.Fatal("AUTHGATE_ACCESS_SECRET and AUTHGATE_REFRESH_SECRET must be set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: v.GetString("redis_addr")})
	defer func() { _ = rdb.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		logger.Fatal("redis unreachable", zap.Error(err))
	}
	cancel()
	logger.Info("redis connected", zap.String("addr", v.GetString("redis_addr")))

	users, err := userstore.Open(v.GetString("db_path"))
	if err != nil {
		logger.Fatal("open user store", zap.Error(err))
	}
	defer func() { _ = users.Close() }()

	cfg := authgate.DefaultConfig()
	cfg.JWT.AccessSecret = []byte(accessSecret)
	cfg.JWT.RefreshSecret = []byte(refreshSecret)
	cfg.JWT.Issuer = "authgate"

	var notifier authgate.Notifier
	if smtpAddr := v.GetString("smtp_addr"); smtpAddr != "" {
		notifier, err = notify.NewSMTP(notify.SMTPConfig{
			Addr:     smtpAddr,
			From:     v.GetString("smtp_from"),
			Username: v.GetString("smtp_user"),
			Password: v.GetString("smtp_pass"),
		})
		if err != nil {
			logger.Fatal("smtp notifier", zap.Error(err))
		}
	} else {
		notifier = notify.NewLog(logger)
	}

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(users).
		WithNotifier(notifier).
		WithAuditSink(authgate.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		logger.Fatal("engine build", zap.Error(err))
	}
	defer engine.Close()

	limiter := authgate.NewLoginLimiter(rdb, cfg.RateLimit)
	api := httpapi.NewServer(engine, limiter, logger, httpapi.Config{
		SecureCookies: production,
	})

	httpServer := &http.Server{
		Addr:              v.GetString("listen_addr"),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
