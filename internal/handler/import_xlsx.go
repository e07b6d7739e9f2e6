package handler

import (
	"io"
	"net/http"

	"github.com/Geraghw1/defaero-deal-tracker/internal/apierror"
	"github.com/Geraghw1/defaero-deal-tracker/internal/importer"
	"github.com/Geraghw1/defaero-deal-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct{ importer *importer.Importer }

func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: im}
}

// ImportXLSX ingests an uploaded workbook. Skipped rows surface only as the
// difference between rows_read and imported.
func (h *ImportHandler) ImportXLSX(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(`Upload a .xlsx file as "file"`))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Import failed")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, err, "Import failed")
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.importer.Import(c.Request.Context(), data, claims.Username)
	if err != nil {
		respondError(c, err, "Import failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
