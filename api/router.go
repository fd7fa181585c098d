// Package api contains all endpoints available
package api

import (
	"context"
	"fmt"
	"io"
	"time"

	"storeit/storage-api/aws"
	"storeit/storage-api/db"
	"storeit/storage-api/pkg/middleware"
	"storeit/storage-api/service"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// ObjectStore is the slice of the storage client the handlers need.
// Tests swap in a fake.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, string, error)
	Delete(ctx context.Context, key string) error
}

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Store  ObjectStore
	Mail   service.Mailer
	Cache  *responseCache
}

func NewRouter() (*API, error) {
	a := &API{
		Mail:  service.SMTPMailer{},
		Cache: newResponseCache(time.Minute),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	a.Store = s3

	a.registerRoutes()

	return a, nil
}

func (a *API) registerRoutes() {
	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	session := middleware.NewSessionMiddleware(a.DB)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/sign-up	-> Creates a profile (once per email) and mails an OTP
		auth.POST("/sign-up", a.AuthSignUp)

		// POST /api/auth/sign-in	-> Mails an OTP to an existing profile
		auth.POST("/sign-in", a.AuthSignIn)

		// POST /api/auth/verify	-> Trades a correct OTP for a session cookie
		auth.POST("/verify", a.AuthVerify)

		// POST /api/auth/sign-out	-> Drops the session and clears the cookie
		auth.POST("/sign-out", session, a.AuthSignOut)
	}

	users := main.Group("/users", session)
	{
		// GET /api/users/me		-> Returns the current user's profile
		users.GET("/me", a.UserMe)
	}

	files := main.Group("/files")
	{
		// GET /api/files		-> Lists files by category/search/sort
		files.GET("", session, a.Cache.cacheFor(30), a.FileList)

		// POST /api/files		-> Uploads a new file
		files.POST("", session, middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)

		// PATCH /api/files/:id/rename	-> Renames a file
		files.PATCH("/:id/rename", session, a.FileRename)

		// PATCH /api/files/:id/share	-> Replaces a file's shared-user list
		files.PATCH("/:id/share", session, a.FileShare)

		// DELETE /api/files/:id	-> Deletes a file and its stored object
		files.DELETE("/:id", session, a.FileDelete)
	}

	// GET /api/usage			-> Per-category storage usage against the quota
	main.GET("/usage", session, a.Cache.cacheFor(30), a.Usage)

	storage := router.Group("/storage/buckets/:bucketID/files/:fileID")
	{
		// GET .../view			-> Streams a stored object inline
		storage.GET("/view", a.FileServe)

		// GET .../download		-> Same object with attachment disposition
		storage.GET("/download", a.FileServe)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	var level zapcore.Level
	if err := level.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, _ := cfg.Build()

	if file := viper.GetString("app.log_file"); file != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   file,
				MaxSize:    50, // MiB
				MaxBackups: 5,
				MaxAge:     28,
			}),
			cfg.Level,
		)

		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	zap.ReplaceGlobals(log)
}
