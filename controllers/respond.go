package controllers

import (
	"errors"
	"net/http"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/resp"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/storage"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/services"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"github.com/gin-gonic/gin"
)

// respondErr maps a service error onto the response envelope.
func respondErr(c *gin.Context, err error) {
	respondErrCreds(c, err, http.StatusBadRequest)
}

// respondErrCreds is respondErr with the status used for bad credentials chosen by the caller.
func respondErrCreds(c *gin.Context, err error, credStatus int) {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		status = credStatus
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		_ = c.Error(err)
		resp.ServerError(c, err)
		return
	}
	resp.Fail(c, status, err.Error())
}

// paramID reads a numeric path parameter and answers 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParamUint(c, name)
	if !ok {
		resp.BadRequest(c, "invalid "+name)
	}
	return id, ok
}

// selfParam reads an account id from the path and requires it to be the caller.
func selfParam(c *gin.Context, name string) (uint, bool) {
	id, ok := paramID(c, name)
	if !ok {
		return 0, false
	}
	if id != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return 0, false
	}
	return id, true
}

// uploadImage stores the multipart image in field. It returns "" when the
// field is absent and not required.
func uploadImage(c *gin.Context, up storage.Uploader, field, folder string, required bool) (string, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if required {
			resp.BadRequest(c, field+" is required")
			return "", false
		}
		return "", true
	}
	if err := storage.CheckImage(fh); err != nil {
		resp.BadRequest(c, err.Error())
		return "", false
	}
	url, err := up.Upload(c.Request.Context(), fh, folder)
	if err != nil {
		_ = c.Error(err)
		resp.ServerError(c, err)
		return "", false
	}
	return url, true
}
