package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Geraghw1/defaero-deal-tracker/internal/apierror"
	"github.com/Geraghw1/defaero-deal-tracker/internal/middleware"
	"github.com/Geraghw1/defaero-deal-tracker/internal/model"
	"github.com/Geraghw1/defaero-deal-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentsHandler struct {
	svc      service.DocumentService
	maxBytes int64
}

func NewDocumentsHandler(svc service.DocumentService, maxUploadMB int64) *DocumentsHandler {
	return &DocumentsHandler{svc: svc, maxBytes: maxUploadMB << 20}
}

func (h *DocumentsHandler) ListByOpportunity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	docs, err := h.svc.ListByOpportunity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch documents")
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

func (h *DocumentsHandler) Upload(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(`Upload a document as "file"`))
		return
	}
	if fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, apierror.New("File too large"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Document upload failed")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, err, "Document upload failed")
		return
	}

	claims := middleware.GetClaims(c)
	doc, err := h.svc.Attach(c.Request.Context(), id, model.Document{
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		UploadedBy:   claims.Username,
		Data:         data,
	})
	if err != nil {
		respondError(c, err, "Document upload failed")
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentsHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.svc.Download(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to download document")
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(doc.OriginalName)))
	c.Data(http.StatusOK, doc.MimeType, doc.Data)
}

func (h *DocumentsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
