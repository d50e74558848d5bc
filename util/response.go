package util

import (
	coreutil "github.com/KanapuramVaishnavi/Core/util"
	"github.com/gin-gonic/gin"
)

// SuccessResponse uses the shared {status, data} envelope for any payload, structs included.
func SuccessResponse(data interface{}) gin.H {
	return gin.H{
		"data":   data,
		"status": coreutil.STATUS_SUCCESS,
	}
}

func FailedResponse(err error) gin.H {
	if err == nil {
		return gin.H{"status": coreutil.STATUS_FAILED}
	}
	return coreutil.FailedResponse(err)
}
