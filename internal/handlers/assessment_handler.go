package handlers

import (
	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	*BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(base *BaseHandler, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       base,
		assessmentService: assessmentService,
	}
}

func (h *AssessmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assessments := rg.Group("/assessments")
	{
		assessments.POST("/create-assessment", h.CreateAssessment)
		assessments.GET("/get-all-assessments", h.ListAssessments)
		assessments.GET("/filter", h.FilterAssessments)
		assessments.GET("/:id", h.GetAssessment)
		assessments.PATCH("/:id", h.UpdateAssessment)
		assessments.DELETE("/:id", h.DeleteAssessment)

		assessments.POST("/save-answer", h.SaveAnswer)
		assessments.GET("/:id/answers", h.AnswersForAssessment)
		assessments.GET("/answers/me", h.MyAnswers)
		assessments.GET("/answers", h.AllAnswers)
	}
}

func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateAssessmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	assessment, err := h.assessmentService.CreateAssessment(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Assessment created successfully", assessment)
}

func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	assessments, err := h.assessmentService.ListAssessments(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Assessments fetched successfully", assessments)
}

// FilterAssessments narrows by type plus an optional date or week
// number query parameter.
func (h *AssessmentHandler) FilterAssessments(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var filter dto.AssessmentFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	db := h.GetDB(c)

	assessments, err := h.assessmentService.FilterAssessments(db, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Assessments fetched successfully", assessments)
}

func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	assessment, err := h.assessmentService.GetAssessment(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Assessment fetched successfully", assessment)
}

func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateAssessmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	assessment, err := h.assessmentService.UpdateAssessment(db, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Assessment updated successfully", assessment)
}

func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	if err := h.assessmentService.DeleteAssessment(db, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Assessment deleted successfully", nil)
}

func (h *AssessmentHandler) SaveAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveAnswerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	answer, err := h.assessmentService.SaveAnswer(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Answer saved successfully", answer)
}

func (h *AssessmentHandler) AnswersForAssessment(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	answers, err := h.assessmentService.AnswersForAssessment(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Answers fetched successfully", answers)
}

// MyAnswers lists the caller's answers, optionally filtered by type
// plus a date or week window.
func (h *AssessmentHandler) MyAnswers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	var filter *dto.AssessmentFilter
	if c.Query("assessmentType") != "" {
		var f dto.AssessmentFilter
		if !h.BindAndValidate_Query(c, &f) {
			return
		}
		filter = &f
	}

	answers, err := h.assessmentService.AnswersForUser(db, userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Answers fetched successfully", answers)
}

func (h *AssessmentHandler) AllAnswers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	answers, err := h.assessmentService.AllAnswers(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Answers fetched successfully", answers)
}
