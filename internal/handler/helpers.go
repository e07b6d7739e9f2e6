package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Geraghw1/defaero-deal-tracker/internal/apierror"
	"github.com/Geraghw1/defaero-deal-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return true
}

// idParam parses the numeric path id; writes a 400 and returns false when
// it is not an integer.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return 0, false
	}
	return id, true
}

// respondError maps the service error taxonomy onto HTTP outcomes:
// validation → 400 with the explanation, unresolvable identity → 404,
// anything else → 500 with a generic message plus diagnostic detail.
func respondError(c *gin.Context, err error, generic string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, apierror.New(ve.Msg))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.WithDetail(generic, err.Error()))
	}
}
