package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/infrastructure/jwt"
	fileDTO "fileshare-api/internal/interface/api/rest/dto/file"
	shareDTO "fileshare-api/internal/interface/api/rest/dto/share"
	"fileshare-api/internal/interface/api/rest/middleware"
)

const writeWait = 10 * time.Second

// LiveController streams live result sets over websocket: each message is
// the full current view, re-sent whenever the underlying feed reports a
// change. A feed error is delivered as a closing error frame; resubscribing
// is the client's decision.
type LiveController struct {
	syncService ports.Sync
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

func NewLiveController(
	r *gin.Engine,
	syncService ports.Sync,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *LiveController {
	lc := &LiveController{
		syncService: syncService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	authed := middleware.AuthMiddleware(jwtService)
	r.GET(RouteFilesLive, authed, lc.FilesLiveHandler)
	r.GET(RouteSharesLive, authed, lc.SharesLiveHandler)

	return lc
}

func (lc *LiveController) FilesLiveHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	conn, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		lc.logger.Error("websocket upgrade error", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	feed, err := lc.syncService.WatchMyFiles(ctx, ident.ID)
	if err != nil {
		lc.closeWithError(conn, err)
		cancel()
		return
	}

	go lc.drainReads(conn, cancel)

	defer cancel()
	defer conn.Close()
	for snap := range feed {
		if snap.Err != nil {
			lc.closeWithError(conn, snap.Err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err = conn.WriteJSON(fileDTO.ResponseData{
			Data: fileDTO.ToResponseFileRecords(snap.Files),
		}); err != nil {
			return
		}
	}
}

func (lc *LiveController) SharesLiveHandler(c *gin.Context) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
		return
	}

	conn, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		lc.logger.Error("websocket upgrade error", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	feed, err := lc.syncService.WatchMyShares(ctx, ident.Email)
	if err != nil {
		lc.closeWithError(conn, err)
		cancel()
		return
	}

	go lc.drainReads(conn, cancel)

	defer cancel()
	defer conn.Close()
	for snap := range feed {
		if snap.Err != nil {
			lc.closeWithError(conn, snap.Err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err = conn.WriteJSON(shareDTO.ResponseData{
			Data: shareDTO.ToResponseShareGrants(snap.Grants),
		}); err != nil {
			return
		}
	}
}

// drainReads keeps the read side serviced so client close frames are seen;
// any read error means the client is gone and the feed must be torn down.
func (lc *LiveController) drainReads(conn *websocket.Conn, cancel func()) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (lc *LiveController) closeWithError(conn *websocket.Conn, err error) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()),
		time.Now().Add(writeWait),
	)
	conn.Close()
}
