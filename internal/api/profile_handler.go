package api

import (
	"net/http"

	"TalentMatch/internal/config"
	"TalentMatch/internal/narrator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler 岗位画像生成接口（外部协作方：OpenRouter）
type ProfileHandler struct {
	narratorService *narrator.Service
	logger          *logrus.Logger
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(cfg *config.Config, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		narratorService: narrator.NewService(&cfg.Narrator, logger),
		logger:          logger,
	}
}

type jobProfileRequest struct {
	RoleName    string `json:"role_name"`
	JobLevel    string `json:"job_level"`
	RolePurpose string `json:"role_purpose"`
}

// GenerateJobProfile 生成岗位画像文本。
// 重试与模型切换在 narrator 内部完成，这里拿到的错误已是终态
// POST /api/job-profile
func (h *ProfileHandler) GenerateJobProfile(c *gin.Context) {
	var req jobProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RoleName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role_name 不能为空"})
		return
	}

	text, err := h.narratorService.GenerateJobProfile(c.Request.Context(), req.RoleName, req.JobLevel, req.RolePurpose)
	if err != nil {
		h.logger.WithError(err).Error("GenerateJobProfile failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": text})
}
