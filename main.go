package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"MetOptix/config/db"
	"MetOptix/config/env"
	"MetOptix/config/logger"
	"MetOptix/config/redis"
	"MetOptix/jobs"
	"MetOptix/migrations"
	"MetOptix/routes"
	"MetOptix/server"
	"MetOptix/services"
	"MetOptix/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	startServer = server.Start
	isTest      = false
)

type application struct {
	visits *services.VisitService
	auth   *services.AuthService
}

func main() {
	run()
}

func run() {
	settings, err := env.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	writer := logger.Setup(settings.LogFile, settings.LogMaxSizeMB)

	defaultopts := server.GetDefaultOptions()

	// built after the server has connected mongo and redis
	app := sync.OnceValue(func() *application {
		return newApplication(settings)
	})

	options := server.Options{
		WebServerPort:   settings.Port,
		GinMode:         settings.GinMode,
		LogWriter:       writer,
		ShutdownTimeout: defaultopts.ShutdownTimeout,

		MongoEnabled:        settings.StoreBackend == env.StoreMongo,
		MongoURI:            settings.MongoURI,
		MongoDatabase:       settings.MongoDatabase,
		MongoConnectTimeout: settings.MongoConnectTimeout,

		CacheEnabled:  settings.RedisEnabled,
		RedisAddr:     settings.RedisAddr,
		RedisPassword: settings.RedisPassword,
		RedisDB:       settings.RedisDB,

		MigrationEnabled: settings.MigrationsEnabled && settings.StoreBackend == env.StoreMongo,
		MigrationHandler: func() {
			if isTest {
				return
			}
			coll := db.OpenCollections(settings.VisitCollection)
			if err := migrations.Run(context.Background(), coll); err != nil {
				log.Println("Migrations incomplete, continuing:", err)
			}
		},

		JobsEnabled: settings.JobsEnabled && !isTest,
		JobsHandler: func() {
			if isTest {
				return
			}
			if _, err := jobs.StartDailyScheduler(settings.FollowUpSchedule, app().visits); err != nil {
				log.Println("Follow-up scheduler not started:", err)
			}
		},

		WebServerPreHandler: func(r *gin.Engine) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     settings.CORSOrigins,
				AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				AllowCredentials: !allowsAnyOrigin(settings.CORSOrigins),
			}))
			a := app()
			routes.Routes(r, routes.Dependencies{
				Visits:    a.visits,
				Auth:      a.auth,
				JWTSecret: []byte(settings.JWTSecret),
			})
		},
	}
	startServer(options)
}

func newApplication(settings env.Settings) *application {
	credentials, err := services.NewStaticCredentials(settings.AdminUsername, settings.AdminPassword, settings.AdminPasswordHash)
	if err == nil {
		credentials, err = credentials.WithRole(settings.AdminRole)
	}
	if err != nil {
		log.Fatal("Invalid admin credentials: ", err)
	}
	return &application{
		visits: services.NewVisitService(buildStore(settings)),
		auth:   services.NewAuthService(credentials, []byte(settings.JWTSecret), settings.SessionTTL),
	}
}

/*
* memory backend for local runs and tests, mongo otherwise
* wrap with the redis read-through cache when redis is connected
 */
func buildStore(settings env.Settings) store.VisitStore {
	var visits store.VisitStore
	if settings.StoreBackend == env.StoreMemory {
		log.Println("Using in-memory visit store")
		visits = store.NewMemoryVisitStore()
	} else {
		visits = store.NewMongoVisitStore(db.OpenCollections(settings.VisitCollection))
	}
	if redis.Enabled() {
		visits = store.NewCachedVisitStore(visits, store.RedisCache{}, settings.CacheTTL)
	}
	return visits
}

// cors rejects credentials combined with a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
