package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"text-assistant/dto"
	"text-assistant/models"
	"text-assistant/services"
	"text-assistant/validate"
)

// ModifyTextHandler godoc
// @Summary      Modify text using AI
// @Description  Process a text modification with the given operation
// @Tags         text
// @Accept       json
// @Param        request  body  dto.ModificationRequest  true  "Modification request"
// @Produce      json
// @Success      200  {object}  dto.ModificationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /text/modify [post]
func ModifyTextHandler(svc *services.TextService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ModificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest,
				"INVALID_JSON", "Request body is not valid JSON", "validation_error", false, nil)
			return
		}

		// Reject before any AI spend: the pipeline is never invoked on
		// an invalid request.
		if violations := validate.ValidateModification(req); len(violations) > 0 {
			writeValidationError(c, violations)
			return
		}

		resp, perr := svc.Process(c.Request.Context(), req)
		if perr != nil {
			writeProcessingError(c, perr)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HistoryHandler godoc
// @Summary      Get user modification history
// @Description  Paginated modification history for a user, most recent first
// @Tags         text
// @Param        user_id    path   string  true   "User identifier"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        page_size  query  int     false  "Page size (<=100)"
// @Param        operation  query  string  false  "Filter by operation"
// @Produce      json
// @Success      200  {object}  dto.HistoryResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /text/history/{user_id} [get]
func HistoryHandler(svc *services.TextService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		var violations []string
		if ok, msg := validate.ValidateUserID(userID); !ok {
			violations = append(violations, msg)
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
		violations = append(violations, validate.ValidatePagination(page, pageSize)...)

		opFilter, ok, msg := validate.ValidateOperationFilter(c.Query("operation"))
		if !ok {
			violations = append(violations, msg)
		}

		if len(violations) > 0 {
			writeValidationError(c, violations)
			return
		}

		resp, err := svc.History(c.Request.Context(), userID, page, pageSize, opFilter)
		if err != nil {
			writeDatabaseError(c)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// AnalyzeTextHandler godoc
// @Summary      Analyze text
// @Description  Structured analysis of the text; degrades to local counting when the model is unavailable
// @Tags         text
// @Accept       json
// @Param        request  body  dto.AnalysisRequest  true  "Analysis request"
// @Produce      json
// @Success      200  {object}  aiclient.AnalysisResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /text/analyze [post]
func AnalyzeTextHandler(svc *services.TextService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest,
				"INVALID_JSON", "Request body is not valid JSON", "validation_error", false, nil)
			return
		}

		if violations := validate.ValidateAnalysis(req.Text, req.UserID); len(violations) > 0 {
			writeValidationError(c, violations)
			return
		}

		result, perr := svc.Analyze(c.Request.Context(), req.Text, req.UserID)
		if perr != nil {
			writeProcessingError(c, perr)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// StatisticsHandler godoc
// @Summary      Get user statistics
// @Description  Aggregate statistics over a user's modification history
// @Tags         text
// @Param        user_id  path  string  true  "User identifier"
// @Produce      json
// @Success      200  {object}  dto.UserStatsResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /text/statistics/{user_id} [get]
func StatisticsHandler(svc *services.TextService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if ok, msg := validate.ValidateUserID(userID); !ok {
			writeValidationError(c, []string{msg})
			return
		}

		resp, err := svc.UserStats(c.Request.Context(), userID)
		if err != nil {
			writeDatabaseError(c)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// OperationsHandler godoc
// @Summary      List supported operations
// @Tags         text
// @Produce      json
// @Success      200  {object}  dto.OperationsResponse
// @Router       /text/operations [get]
func OperationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ops := make([]dto.OperationInfo, 0, len(models.AllOperations()))
		for _, op := range models.AllOperations() {
			ops = append(ops, dto.OperationInfo{
				Name:        op.String(),
				Description: op.Description(),
			})
		}
		c.JSON(http.StatusOK, dto.OperationsResponse{Operations: ops})
	}
}
