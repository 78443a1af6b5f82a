package api

import (
	"net/http"
	"strconv"

	"TalentMatch/internal/repository"
	"TalentMatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TalentHandler 四条聚合读路径接口（给前端仪表盘用）。
// 所有接口都接受可选的 job_vacancy_id 查询参数，缺省时取最近创建的基准；
// 解析不到scope返回空表而非错误
type TalentHandler struct {
	talentService *service.TalentService
	logger        *logrus.Logger
}

// NewTalentHandler 创建 TalentHandler
func NewTalentHandler(db *gorm.DB, logger *logrus.Logger) *TalentHandler {
	benchmarkRepo := repository.NewBenchmarkRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	scope := service.NewScopeResolver(benchmarkRepo)
	svc := service.NewTalentService(scoreRepo, scope, logger)
	return &TalentHandler{
		talentService: svc,
		logger:        logger,
	}
}

// Leaderboard 候选人排行榜
// GET /api/talents/leaderboard?limit=200&job_vacancy_id=
func (h *TalentHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	jid := c.Query("job_vacancy_id")

	result, err := h.talentService.Leaderboard(c.Request.Context(), jid, limit)
	if err != nil {
		h.logger.WithError(err).Error("Leaderboard failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CandidateTGV 候选人变量组汇总（解释“为什么是这个排名”）
// GET /api/talents/:employee_id/tgv?job_vacancy_id=
func (h *TalentHandler) CandidateTGV(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id 必须为整数"})
		return
	}
	jid := c.Query("job_vacancy_id")

	result, err := h.talentService.CandidateTGV(c.Request.Context(), jid, employeeID)
	if err != nil {
		h.logger.WithError(err).Error("CandidateTGV failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CandidateTV 候选人变量明细（gap阈值过滤由展示层自行处理，这里返回完整行）
// GET /api/talents/:employee_id/tv?tgv_name=Competency&job_vacancy_id=
func (h *TalentHandler) CandidateTV(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id 必须为整数"})
		return
	}
	tgvName := c.Query("tgv_name")
	if tgvName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tgv_name 不能为空"})
		return
	}
	jid := c.Query("job_vacancy_id")

	result, err := h.talentService.CandidateTV(c.Request.Context(), jid, employeeID, tgvName)
	if err != nil {
		h.logger.WithError(err).Error("CandidateTV failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Distribution 总匹配率分布（每候选人一行，join扇出已去重）
// GET /api/insights/distribution?job_vacancy_id=
func (h *TalentHandler) Distribution(c *gin.Context) {
	jid := c.Query("job_vacancy_id")

	result, err := h.talentService.Distribution(c.Request.Context(), jid)
	if err != nil {
		h.logger.WithError(err).Error("Distribution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Fairness 按职级/学历/专业分组的公平性概览
// GET /api/insights/fairness?job_vacancy_id=
func (h *TalentHandler) Fairness(c *gin.Context) {
	jid := c.Query("job_vacancy_id")

	result, err := h.talentService.Fairness(c.Request.Context(), jid)
	if err != nil {
		h.logger.WithError(err).Error("Fairness failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
