package controllers

import (
	"net/http"

	"MetOptix/config/authorization"
	"MetOptix/models"
	"MetOptix/services"
	"MetOptix/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func Login(router gin.IRouter, auth *services.AuthService) {
	ctrl := &AuthController{auth: auth}
	router.POST("/login", ctrl.Login)
}

func Session(router gin.IRouter, auth *services.AuthService) {
	ctrl := &AuthController{auth: auth}
	router.POST("/logout", ctrl.Logout)
	router.GET("/me", ctrl.Me)
}

func (a *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	resp, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(resp))
}

func (a *AuthController) Logout(c *gin.Context) {
	if err := a.auth.Logout(c.Request.Context(), authorization.SessionFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Logged out"))
}

func (a *AuthController) Me(c *gin.Context) {
	session := authorization.SessionFrom(c)
	if !session.Authenticated() {
		fail(c, services.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(session))
}
