package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/application/services"
	"fileshare-api/internal/infrastructure/jwt"
	dto "fileshare-api/internal/interface/api/rest/dto/share"
	"fileshare-api/internal/interface/api/rest/middleware"
	"fileshare-api/internal/interface/api/rest/validator"
)

type ShareController struct {
	shareService ports.ShareService
	logger       *zap.Logger
}

func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		logger:       logger,
	}

	authed := middleware.AuthMiddleware(jwtService)
	r.POST(RouteFileShares, authed, sc.ShareFileHandler)
	r.GET(RouteSharesReceived, authed, sc.GetReceivedSharesHandler)
	r.GET(RouteSharesSent, authed, sc.GetSentSharesHandler)

	return sc
}

func (sc *ShareController) ShareFileHandler(c *gin.Context) {
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

	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	sg, err := sc.shareService.ShareFile(c.Request.Context(), fileID, ident, req.RecipientEmail)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, dto.ToResponseShareGrant(*sg))
	case errors.Is(err, services.ErrInvalidRecipient), errors.Is(err, services.ErrSelfShare):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyShared):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share a file"})
		sc.logger.Error("ShareFile() error", zap.Error(err))
	}
}

func (sc *ShareController) GetReceivedSharesHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	shares, err := sc.shareService.FindSharesByRecipient(c.Request.Context(), ident.Email)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get shares"},
		)
		sc.logger.Error("FindSharesByRecipient() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Data: dto.ToResponseShareGrants(shares),
	})
}

func (sc *ShareController) GetSentSharesHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	shares, err := sc.shareService.FindSharesByOwner(c.Request.Context(), ident.Email)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get shares"},
		)
		sc.logger.Error("FindSharesByOwner() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Data: dto.ToResponseShareGrants(shares),
	})
}
