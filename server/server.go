package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MetOptix/config/db"
	"MetOptix/config/redis"

	"github.com/gin-gonic/gin"
)

type Options struct {
	WebServerPort   string
	GinMode         string
	LogWriter       io.Writer
	ShutdownTimeout time.Duration

	MongoEnabled        bool
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	CacheEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MigrationEnabled bool
	MigrationHandler func()

	JobsEnabled bool
	JobsHandler func()

	WebServerPreHandler func(r *gin.Engine)
}

func GetDefaultOptions() Options {
	return Options{
		WebServerPort:       "8080",
		GinMode:             gin.ReleaseMode,
		LogWriter:           os.Stdout,
		ShutdownTimeout:     10 * time.Second,
		MongoConnectTimeout: 10 * time.Second,
	}
}

// Start runs the server until SIGINT or SIGTERM and exits the process on a startup failure.
func Start(opts Options) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, opts); err != nil {
		log.Fatal("Server stopped with error: ", err)
	}
	log.Println("Server stopped")
}

/*
* Connect mongo when enabled, a failure here aborts startup
* Connect redis when enabled, a failure here only disables the cache
* Run migrations, build the engine, start the jobs
* Serve until ctx is done, then drain in-flight requests
 */
func Run(ctx context.Context, opts Options) error {
	if opts.MongoEnabled {
		if _, err := db.Connect(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoConnectTimeout); err != nil {
			log.Println("Error connecting to MongoDB:", err)
			return err
		}
		defer db.Disconnect(context.Background())
	}

	if opts.CacheEnabled {
		if err := redis.Init(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB); err != nil {
			log.Println("Redis unavailable, continuing without cache:", err)
		} else {
			defer redis.Close()
		}
	}

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		opts.MigrationHandler()
	}

	r := NewEngine(opts)

	if opts.JobsEnabled && opts.JobsHandler != nil {
		opts.JobsHandler()
	}

	srv := &http.Server{
		Addr:              ":" + opts.WebServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Println("Server listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

// NewEngine builds the gin engine with request logging and panic recovery, then hands it to the pre-handler.
func NewEngine(opts Options) *gin.Engine {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	w := opts.LogWriter
	if w == nil {
		w = os.Stdout
	}
	r := gin.New()
	r.Use(gin.LoggerWithWriter(w), gin.Recovery())
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(r)
	}
	return r
}
