package routes

import (
	"net/http"

	"MetOptix/config/authorization"
	"MetOptix/controllers"
	"MetOptix/services"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Visits    *services.VisitService
	Auth      *services.AuthService
	JWTSecret []byte
}

func Routes(r *gin.Engine, deps Dependencies) {

	//public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	controllers.Login(r, deps.Auth)

	//private routes
	private := r.Group("/", authorization.JWTAuth(deps.JWTSecret))
	controllers.Session(private, deps.Auth)
	controllers.Patient(private, deps.Visits)
	controllers.Visit(private, deps.Visits)
}
