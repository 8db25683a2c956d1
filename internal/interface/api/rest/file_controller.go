package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/application/services"
	"fileshare-api/internal/infrastructure/jwt"
	"fileshare-api/internal/infrastructure/objectstore"
	dto "fileshare-api/internal/interface/api/rest/dto/file"
	"fileshare-api/internal/interface/api/rest/middleware"
	"fileshare-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)
	r.GET(RouteFiles, authed, fc.GetFilesHandler)
	r.POST(RouteFiles, authed, fc.UploadFileHandler)
	r.DELETE(RouteFile, authed, fc.DeleteFileHandler)
	r.GET(RouteFileDownload, authed, fc.DownloadFileHandler)

	return fc
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	files, err := fc.fileService.FindFilesByOwner(c.Request.Context(), ident.ID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindFilesByOwner() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Data: dto.ToResponseFileRecords(files),
	})
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > objectstore.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	fr, err := fc.fileService.UploadFile(c.Request.Context(), ident, fh, nil)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to upload a file"},
		)
		fc.logger.Error("UploadFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToResponseFileRecord(*fr))
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	err := fc.fileService.DeleteFile(c.Request.Context(), fileID, ident)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		// Metadata may already be gone while the blob reclaim failed; the
		// failure is reported, not retried.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete a file"})
		fc.logger.Error("DeleteFile() error", zap.Error(err))
	}
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	url, err := fc.fileService.DownloadURL(c.Request.Context(), fileID, ident)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, url)
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve download url"})
		fc.logger.Error("DownloadURL() error", zap.Error(err))
	}
}
