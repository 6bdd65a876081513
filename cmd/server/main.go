package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgresRepo "github.com/vidora/vidora/internal/adapters/db/postgres"
	redisRepo "github.com/vidora/vidora/internal/adapters/db/redis"
	s3media "github.com/vidora/vidora/internal/adapters/media/s3"
	httpapi "github.com/vidora/vidora/internal/adapters/transport/http"
	"github.com/vidora/vidora/internal/auth/hash"
	"github.com/vidora/vidora/internal/auth/jwt"
	authservice "github.com/vidora/vidora/internal/auth/service"
	"github.com/vidora/vidora/internal/config"
	lg "github.com/vidora/vidora/internal/log"
	"github.com/vidora/vidora/internal/migrate"
	videoservice "github.com/vidora/vidora/internal/video/service"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		if utf8.RuneCountInString(pwd) < 8 {
			return false
		}
		var hasUpper, hasDigit bool
		for _, r := range pwd {
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
		return hasUpper && hasDigit
	})
	return validate
}

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	media, err := s3media.New(context.Background(), cfg)
	if err != nil {
		zapLog.Fatal("init media storage", zap.Error(err))
	}

	tokenUtil, err := jwt.NewTokenUtil(cfg)
	if err != nil {
		zapLog.Fatal("init token util", zap.Error(err))
	}

	validate := newValidator()
	hasher := hash.New(cfg.PasswordPepper)
	userRepo := postgresRepo.NewUserRepo(db)
	videoRepo := postgresRepo.NewVideoRepo(db)
	profileCache := redisRepo.NewProfileCache(redisCli, cfg.ChannelCacheTTL)

	authSvc := authservice.New(userRepo, tokenUtil, hasher, profileCache, cfg, validate)
	videoSvc := videoservice.New(videoRepo, userRepo, validate)

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewHandler(authSvc, videoSvc, media, cfg, zapLog)
	router := httpapi.NewRouter(handler)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		var serveErr error
		if cfg.HTTPSCertFile != "" && cfg.HTTPSKeyFile != "" {
			serveErr = srv.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			return serveErr
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			zapLog.Info("shutdown signal received")
		case <-ctx.Done():
		}

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(ctxShutdown)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
