package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"TalentMatch/internal/config"
	"TalentMatch/internal/model"
	"TalentMatch/internal/repository"
	"TalentMatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BenchmarkHandler 岗位基准配置接口（注册表写路径）
type BenchmarkHandler struct {
	benchmarkService *service.BenchmarkService
	logger           *logrus.Logger
}

// NewBenchmarkHandler 创建 BenchmarkHandler
func NewBenchmarkHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *BenchmarkHandler {
	repo := repository.NewBenchmarkRepository(db)
	svc := service.NewBenchmarkService(repo, cfg.Benchmark, logger)
	return &BenchmarkHandler{
		benchmarkService: svc,
		logger:           logger,
	}
}

type createBenchmarkRequest struct {
	RoleName    string          `json:"role_name"`
	JobLevel    string          `json:"job_level"`
	RolePurpose string          `json:"role_purpose"`
	TalentIDs   string          `json:"talent_ids"` // 逗号/换行分隔的基准员工ID文本
	Weights     json.RawMessage `json:"weights"`    // 可选，缺省用配置默认权重
}

// CreateBenchmark 创建基准配置（追加写，相同入参也会生成新ID）
// POST /api/benchmarks
func (h *BenchmarkHandler) CreateBenchmark(c *gin.Context) {
	var req createBenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jid, err := h.benchmarkService.Create(c.Request.Context(), service.CreateBenchmarkInput{
		RoleName:     req.RoleName,
		JobLevel:     req.JobLevel,
		RolePurpose:  req.RolePurpose,
		RawTalentIDs: req.TalentIDs,
		Weights:      req.Weights,
	})
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		h.logger.WithError(err).Error("CreateBenchmark failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_vacancy_id": jid})
}

// GetBenchmark 按ID查询基准配置
// GET /api/benchmarks/:job_vacancy_id
func (h *BenchmarkHandler) GetBenchmark(c *gin.Context) {
	jid := c.Param("job_vacancy_id")
	benchmark, err := h.benchmarkService.Get(c.Request.Context(), jid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "benchmark not found"})
			return
		}
		h.logger.WithError(err).Error("GetBenchmark failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, benchmark)
}
