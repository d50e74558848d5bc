package controllers

import (
	"errors"
	"io"
	"net/http"

	"MetOptix/config/authorization"
	"MetOptix/models"
	"MetOptix/role"
	"MetOptix/services"
	"MetOptix/util"

	"github.com/gin-gonic/gin"
)

type PatientController struct {
	visits *services.VisitService
}

func Patient(router gin.IRouter, visits *services.VisitService) {
	ctrl := &PatientController{visits: visits}
	patient := router.Group("/patients")
	{
		patient.GET("/search", authorization.Authorize(role.ResourcePatient, role.ActionView), ctrl.Search)
		patient.GET("/latest", authorization.Authorize(role.ResourcePatient, role.ActionView), ctrl.Latest)
		patient.POST("/register", authorization.Authorize(role.ResourcePatient, role.ActionCreate), ctrl.Register)
		patient.GET("/:patientId/visits", authorization.Authorize(role.ResourceVisit, role.ActionView), ctrl.History)
		patient.POST("/:patientId/visits", authorization.Authorize(role.ResourceVisit, role.ActionCreate), ctrl.UpdateVisit)
		patient.GET("/:patientId/summary", authorization.Authorize(role.ResourcePatient, role.ActionView), ctrl.Summary)
	}
}

func (p *PatientController) Search(c *gin.Context) {
	result, err := p.visits.Search(c.Request.Context(), authorization.SessionFrom(c), c.Query("name"), c.Query("mobile"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(result))
}

func (p *PatientController) Latest(c *gin.Context) {
	list, err := p.visits.LatestVisits(c.Request.Context(), authorization.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(list))
}

func (p *PatientController) Register(c *gin.Context) {
	var req models.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	visit, err := p.visits.RegisterPatient(c.Request.Context(), authorization.SessionFrom(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(visit))
}

func (p *PatientController) UpdateVisit(c *gin.Context) {
	var req models.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, util.FailedResponse(err))
		return
	}
	visit, err := p.visits.UpdateVisit(c.Request.Context(), authorization.SessionFrom(c), c.Param("patientId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(visit))
}

func (p *PatientController) History(c *gin.Context) {
	list, err := p.visits.VisitHistory(c.Request.Context(), authorization.SessionFrom(c), c.Param("patientId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(list))
}

func (p *PatientController) Summary(c *gin.Context) {
	text, latest, err := p.visits.Summary(c.Request.Context(), authorization.SessionFrom(c), c.Param("patientId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{
		"summary": text,
		"visit":   latest,
	}))
}
