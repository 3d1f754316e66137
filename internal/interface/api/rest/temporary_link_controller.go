package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/infrastructure/jwt"
	imageDTO "image-hosting-api/internal/interface/api/rest/dto/image"
	"image-hosting-api/internal/interface/api/rest/middleware"
	"image-hosting-api/internal/interface/api/rest/validator"
)

type TemporaryLinkController struct {
	linkService ports.TemporaryLinkService
	logger      *zap.Logger
}

func NewTemporaryLinkController(
	r *gin.Engine,
	linkService ports.TemporaryLinkService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *TemporaryLinkController {
	tc := &TemporaryLinkController{
		linkService: linkService,
		logger:      logger,
	}

	r.GET(RouteTemporaryLink, middleware.AuthMiddleware(jwtService), tc.IssueTemporaryLinkHandler)

	return tc
}

func (tc *TemporaryLinkController) IssueTemporaryLinkHandler(c *gin.Context) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	ttl, err := validator.ParseTTL(c.Query(QueryExpirationTime))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fileID, err := validator.ParseID(c.Param("file_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a positive integer"},
		)
		return
	}

	link, err := tc.linkService.IssueTemporaryLink(c.Request.Context(), callerID, c.Param("file_kind"), fileID, ttl)
	if err != nil {
		respondError(c, tc.logger, "IssueTemporaryLink", err)
		return
	}

	c.JSON(http.StatusOK, imageDTO.ToResponseTemporaryLink(*link))
}
