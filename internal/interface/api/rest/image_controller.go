package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/ports"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/infrastructure/jwt"
	imageDTO "image-hosting-api/internal/interface/api/rest/dto/image"
	"image-hosting-api/internal/interface/api/rest/middleware"
	"image-hosting-api/internal/interface/api/rest/validator"
)

// multipartOverhead leaves room for part headers and the name field on top
// of the largest accepted file.
const multipartOverhead = 64 << 10

type ImageController struct {
	imageService   ports.ImageService
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewImageController(
	r *gin.Engine,
	imageService ports.ImageService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUploadBytes int64,
) *ImageController {
	ic := &ImageController{
		imageService:   imageService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	authorized := r.Group("", middleware.AuthMiddleware(jwtService))
	authorized.GET(RouteImages, ic.GetImagesHandler)
	authorized.POST(RouteImages, ic.CreateImageHandler)
	authorized.GET(RouteImage, ic.GetImageHandler)
	authorized.DELETE(RouteImage, ic.DeleteImageHandler)

	return ic
}

func (ic *ImageController) GetImagesHandler(c *gin.Context) {
	id, ok := callerOrAbort(c)
	if !ok {
		return
	}

	views, err := ic.imageService.ListImages(c.Request.Context(), id)
	if err != nil {
		respondError(c, ic.logger, "ListImages", err)
		return
	}

	c.JSON(http.StatusOK, imageDTO.ResponseData{
		Data: imageDTO.ToResponseImages(views),
	})
}

func (ic *ImageController) CreateImageHandler(c *gin.Context) {
	id, ok := callerOrAbort(c)
	if !ok {
		return
	}

	limit := ic.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile(FormFieldImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	if fh.Size > ic.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	payload, errs := validator.ValidateImageUpload(fh, ic.maxUploadBytes)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid image",
			"details": errs,
		})
		return
	}

	view, err := ic.imageService.CreateImage(c.Request.Context(), id, ports.NewImage{
		DisplayName: c.PostForm(FormFieldName),
		Payload:     payload,
	})
	if err != nil {
		respondError(c, ic.logger, "CreateImage", err)
		return
	}

	c.JSON(http.StatusCreated, imageDTO.ToResponseImage(*view))
}

func (ic *ImageController) GetImageHandler(c *gin.Context) {
	callerID, imageID, ok := ic.parseImageRequest(c)
	if !ok {
		return
	}

	view, err := ic.imageService.GetImage(c.Request.Context(), callerID, imageID)
	if err != nil {
		respondError(c, ic.logger, "GetImage", err)
		return
	}

	c.JSON(http.StatusOK, imageDTO.ToResponseImage(*view))
}

func (ic *ImageController) DeleteImageHandler(c *gin.Context) {
	callerID, imageID, ok := ic.parseImageRequest(c)
	if !ok {
		return
	}

	if err := ic.imageService.DeleteImage(c.Request.Context(), callerID, imageID); err != nil {
		respondError(c, ic.logger, "DeleteImage", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (ic *ImageController) parseImageRequest(c *gin.Context) (uuid.UUID, domainImage.ID, bool) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return uuid.Nil, 0, false
	}

	id, err := validator.ParseID(c.Param("image_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "image_id must be a positive integer"},
		)
		return uuid.Nil, 0, false
	}

	return callerID, domainImage.ID(id), true
}
