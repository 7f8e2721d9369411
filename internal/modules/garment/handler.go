package garment

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"wearhouse/internal/pkg/response"
)

// ImageStore persists uploaded garment images and returns their public paths.
type ImageStore interface {
	SaveImages(files []*multipart.FileHeader) ([]string, error)
}

// Handler manages all HTTP interactions for the garment catalog.
type Handler struct {
	service       *Service
	images        ImageStore
	publicBaseURL string
}

func NewHandler(service *Service, images ImageStore, publicBaseURL string) *Handler {
	return &Handler{
		service:       service,
		images:        images,
		publicBaseURL: publicBaseURL,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	garments := v1.Group("/garments")
	{
		garments.GET("", h.GetAll)
		garments.GET("/search", h.Search)
		garments.GET("/:id", h.GetByID)
		garments.GET("/:id/qr", h.ShareQR)
	}
}

// RegisterProtectedRoutes expects the group to already enforce auth plus the
// admin/moderator role gate.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	garments := protected.Group("/garments")
	{
		garments.POST("", h.Create)
		garments.PATCH("/:id", h.Update)
		garments.DELETE("/:id", h.Delete)
		garments.POST("/:id/images", h.UploadImages)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateGarmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.BadRequest("invalid request body"))
		return
	}
	response.JSON(c, h.service.AddGarment(c.Request.Context(), req))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateGarmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.BadRequest("invalid request body"))
		return
	}
	response.JSON(c, h.service.UpdateGarment(c.Request.Context(), c.Param("id"), req))
}

func (h *Handler) Delete(c *gin.Context) {
	response.JSON(c, h.service.DeleteGarment(c.Request.Context(), c.Param("id")))
}

func (h *Handler) GetByID(c *gin.Context) {
	response.JSON(c, h.service.GetGarmentByID(c.Request.Context(), c.Param("id")))
}

func (h *Handler) GetAll(c *gin.Context) {
	page, limit := paginationParams(c)
	response.JSON(c, h.service.GetAllGarments(c.Request.Context(), page, limit))
}

func (h *Handler) Search(c *gin.Context) {
	page, limit := paginationParams(c)
	response.JSON(c, h.service.SearchGarmentsByName(c.Request.Context(), c.Query("name"), page, limit))
}

// UploadImages stores multipart image files on disk and appends their public
// paths to the garment.
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.JSON(c, response.BadRequest("invalid multipart form"))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.JSON(c, response.BadRequest("no images provided"))
		return
	}

	paths, err := h.images.SaveImages(files)
	if err != nil {
		response.JSON(c, response.BadRequest(err.Error()))
		return
	}

	response.JSON(c, h.service.AppendImages(c.Request.Context(), c.Param("id"), paths))
}

// ShareQR renders a PNG QR code pointing at the garment's public URL.
func (h *Handler) ShareQR(c *gin.Context) {
	id := c.Param("id")
	res := h.service.GetGarmentByID(c.Request.Context(), id)
	if !res.Success {
		response.JSON(c, res)
		return
	}

	shareURL := fmt.Sprintf("%s/api/v1/garments/%s", h.publicBaseURL, id)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		response.JSON(c, response.InternalError("failed to render QR code"))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// paginationParams defaults to page=1 limit=10; non-numeric values fall
// through as zero so the service rejects them.
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil {
		page = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		limit = 0
	}
	return page, limit
}
