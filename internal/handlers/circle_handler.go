package handlers

import (
	"net/http"

	"empylo_backend/internal/config"
	"empylo_backend/internal/models"
	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"
	"empylo_backend/internal/spreadsheet"
	"empylo_backend/internal/storage"
	"empylo_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CircleHandler struct {
	*BaseHandler
	cfg           *config.Config
	circleService services.CircleService
	storage       storage.Storage
}

func NewCircleHandler(base *BaseHandler, cfg *config.Config, circleService services.CircleService, store storage.Storage) *CircleHandler {
	return &CircleHandler{
		BaseHandler:   base,
		cfg:           cfg,
		circleService: circleService,
		storage:       store,
	}
}

// RegisterRoutes registers the authenticated circle surface. The
// share-link join route is public and registered separately.
func (h *CircleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	circles := rg.Group("/circles")
	{
		circles.POST("/create-circle", h.CreateCircle)
		circles.GET("/get-all-circles", h.GetAllCircles)
		circles.GET("/get-user-circles", h.GetUserCircles)
		circles.GET("/get-owned-circles", h.GetOwnedCircles)
		circles.GET("/:id", h.GetCircle)
		circles.GET("/:id/members", h.GetCircleMembers)
		circles.PATCH("/:id", h.UpdateCircle)
		circles.DELETE("/:id", h.DeleteCircle)
		circles.PATCH("/:id/activate", h.ActivateCircle)
		circles.PATCH("/:id/deactivate", h.DeactivateCircle)

		circles.POST("/add-member-to-circle", h.AddMember)
		circles.DELETE("/:id/members/:userId", h.RemoveMember)

		circles.POST("/:id/upload-file-to-add-users", h.ImportStrict)
		circles.POST("/:id/upload-file-to-add-users-error-on-missing", h.ImportErrorOnMissing)
		circles.POST("/:id/upload-file-to-add-users-auto-provision", h.ImportAutoProvision)
		circles.GET("/download-sample-file", h.DownloadSampleFile)
	}
}

// RegisterPublicRoutes registers the unauthenticated share-link join.
func (h *CircleHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/circles/join-circle-with-sharelink/:shareLink", h.JoinByShareLink)
}

func (h *CircleHandler) CreateCircle(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCircleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	img, err := saveImage(c, h.storage, h.cfg, "circleImg", "circles")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	circle, err := h.circleService.CreateCircle(db, userID, &req, img.URLPtr())
	if err != nil {
		img.Discard(c)
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Circle created successfully", circle)
}

func (h *CircleHandler) GetAllCircles(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	circles, err := h.circleService.GetAllCircles(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circles fetched successfully", circles)
}

func (h *CircleHandler) GetUserCircles(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	circles, err := h.circleService.GetUserCircles(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circles fetched successfully", circles)
}

func (h *CircleHandler) GetOwnedCircles(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	circles, err := h.circleService.GetOwnedCircles(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circles fetched successfully", circles)
}

func (h *CircleHandler) GetCircle(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	circle, err := h.circleService.GetCircle(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circle fetched successfully", circle)
}

func (h *CircleHandler) GetCircleMembers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	members, err := h.circleService.GetCircleMembers(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circle members fetched successfully", members)
}

func (h *CircleHandler) UpdateCircle(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateCircleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	img, err := saveImage(c, h.storage, h.cfg, "circleImg", "circles")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	circle, err := h.circleService.UpdateCircle(db, id, &req, img.URLPtr())
	if err != nil {
		img.Discard(c)
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circle updated successfully", circle)
}

func (h *CircleHandler) DeleteCircle(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.circleService.DeleteCircle(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Circle deleted successfully", nil)
}

func (h *CircleHandler) ActivateCircle(c *gin.Context) {
	h.setStatus(c, models.CircleStatusActive, "Circle activated successfully")
}

func (h *CircleHandler) DeactivateCircle(c *gin.Context) {
	h.setStatus(c, models.CircleStatusInactive, "Circle deactivated successfully")
}

func (h *CircleHandler) setStatus(c *gin.Context, status models.CircleStatus, message string) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.circleService.SetCircleStatus(db, id, status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, message, nil)
}

func (h *CircleHandler) AddMember(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.AddCircleMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	member, err := h.circleService.AddMember(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Member added successfully", member)
}

func (h *CircleHandler) RemoveMember(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	circleID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	userID, err := ParseParamID(c, "userId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.circleService.RemoveMember(db, circleID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Member removed successfully", nil)
}

func (h *CircleHandler) JoinByShareLink(c *gin.Context) {
	shareLink := c.Param("shareLink")
	userEmail := c.Query("userEmail")
	if userEmail == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required query parameter: userEmail"))
		return
	}

	db := h.GetDB(c)

	// The stored link is the full URL; the route carries the suffix.
	fullLink := h.cfg.App.BaseShareURL + "/circle/" + shareLink

	result, err := h.circleService.JoinByShareLink(db, fullLink, userEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Joined circle successfully", result)
}

func (h *CircleHandler) ImportStrict(c *gin.Context) {
	h.importRoster(c, dto.ImportStrict)
}

func (h *CircleHandler) ImportErrorOnMissing(c *gin.Context) {
	h.importRoster(c, dto.ImportErrorOnMissing)
}

func (h *CircleHandler) ImportAutoProvision(c *gin.Context) {
	h.importRoster(c, dto.ImportAutoProvision)
}

func (h *CircleHandler) importRoster(c *gin.Context, policy dto.ImportPolicy) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	circleID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required file part: file"))
		return
	}
	if !spreadsheet.IsSupported(fileHeader.Filename) {
		apperrors.HandleError(c, apperrors.ErrUnsupportedSpreadsheet)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	db := h.GetDB(c)

	result, err := h.circleService.BatchImport(db, circleID, file, fileHeader.Filename, policy)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Members imported successfully", result)
}

func (h *CircleHandler) DownloadSampleFile(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	data, err := h.circleService.SampleTemplate()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sample.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
