package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"MetOptix/config/authorization"
	"MetOptix/role"
	"MetOptix/services"
	"MetOptix/util"

	"github.com/gin-gonic/gin"
)

type VisitController struct {
	visits *services.VisitService
}

func Visit(router gin.IRouter, visits *services.VisitService) {
	ctrl := &VisitController{visits: visits}
	visit := router.Group("/visits")
	{
		visit.GET("/fetchAll", authorization.Authorize(role.ResourceVisit, role.ActionView), ctrl.FetchAll)
		visit.GET("/followUps", authorization.Authorize(role.ResourceVisit, role.ActionView), ctrl.FollowUps)
		visit.DELETE("/delete", authorization.Authorize(role.ResourceVisit, role.ActionDelete), ctrl.Delete)
		visit.DELETE("/delete/:patientId/:visitId", authorization.Authorize(role.ResourceVisit, role.ActionDelete), ctrl.DeleteByID)
	}
}

func (v *VisitController) FetchAll(c *gin.Context) {
	list, err := v.visits.ListAll(c.Request.Context(), authorization.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(list))
}

func (v *VisitController) FollowUps(c *gin.Context) {
	day := time.Now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, util.FailedResponse(err))
			return
		}
		day = parsed
	}
	list, err := v.visits.FollowUps(c.Request.Context(), authorization.SessionFrom(c), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(list))
}

/*
* patientId and visitDate come from the query string
* visitDate must be RFC3339, as returned by the visit listings
 */
func (v *VisitController) Delete(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("visitDate"))
	var visitDate time.Time
	if raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, util.FailedResponse(errors.New(util.INVALID_VISIT_DATE)))
			return
		}
		visitDate = parsed
	}
	result, err := v.visits.DeleteVisit(c.Request.Context(), authorization.SessionFrom(c), c.Query("patientId"), visitDate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(result))
}

func (v *VisitController) DeleteByID(c *gin.Context) {
	result, err := v.visits.DeleteVisitByID(c.Request.Context(), authorization.SessionFrom(c), c.Param("patientId"), c.Param("visitId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(result))
}
