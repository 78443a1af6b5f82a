package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"TalentMatch/internal/config"
	"TalentMatch/internal/model"
	"TalentMatch/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ParseIDs 解析自由文本形式的基准员工ID列表：逗号/换行分隔，逐个去除首尾空白，
// 仅接受纯数字token（带符号、小数点或任何非数字字符的token静默丢弃，不报错）。
// 空输入或无有效token返回空切片，是否视作校验失败由调用方决定。
// 对已经干净的逗号分隔数字串幂等
func ParseIDs(raw string) []int64 {
	if raw == "" {
		return []int64{}
	}
	ids := []int64{}
	for _, part := range strings.Split(strings.ReplaceAll(raw, "\n", ","), ",") {
		token := strings.TrimSpace(part)
		if token == "" || !isDigits(token) {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CreateBenchmarkInput 创建基准配置的入参
type CreateBenchmarkInput struct {
	RoleName     string          // 岗位名称，必填
	JobLevel     string          // 岗位级别，缺省取配置默认值
	RolePurpose  string          // 岗位目标描述
	RawTalentIDs string          // 基准员工ID原始文本（逗号/换行分隔）
	Weights      json.RawMessage // TGV权重JSON，缺省取配置默认值；本层只存储不解释
}

// BenchmarkService 岗位基准配置服务（注册表写路径）
type BenchmarkService struct {
	benchmarkRepo repository.BenchmarkRepository
	defaults      config.BenchmarkConfig
	logger        *logrus.Logger
}

// NewBenchmarkService 创建 BenchmarkService
func NewBenchmarkService(benchmarkRepo repository.BenchmarkRepository, defaults config.BenchmarkConfig, logger *logrus.Logger) *BenchmarkService {
	return &BenchmarkService{
		benchmarkRepo: benchmarkRepo,
		defaults:      defaults,
		logger:        logger,
	}
}

// Create 校验入参并追加一条基准配置，返回新生成的 job_vacancy_id。
// 校验失败在任何写入发起之前返回 ValidationError；写入失败返回 StorageError
// （单语句提交，不存在半提交状态）。相同入参重复创建会得到不同的ID（追加语义，不去重）
func (s *BenchmarkService) Create(ctx context.Context, input CreateBenchmarkInput) (string, error) {
	if strings.TrimSpace(input.RoleName) == "" {
		return "", &model.ValidationError{Field: "role_name", Reason: "岗位名称不能为空"}
	}
	ids := ParseIDs(input.RawTalentIDs)
	if len(ids) == 0 {
		return "", &model.ValidationError{Field: "selected_talent_ids", Reason: "至少需要一个有效的基准员工ID"}
	}

	jobLevel := input.JobLevel
	if jobLevel == "" {
		jobLevel = s.defaults.DefaultJobLevel
	}
	weights := input.Weights
	if len(weights) == 0 {
		weights = json.RawMessage(s.defaults.DefaultWeights)
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return "", &model.ValidationError{Field: "selected_talent_ids", Reason: err.Error()}
	}

	benchmark := &model.TalentBenchmark{
		JobVacancyID:      uuid.NewString(),
		RoleName:          input.RoleName,
		JobLevel:          jobLevel,
		RolePurpose:       input.RolePurpose,
		SelectedTalentIDs: datatypes.JSON(idsJSON),
		WeightsConfig:     datatypes.JSON(weights),
	}
	if err := s.benchmarkRepo.Insert(ctx, benchmark); err != nil {
		return "", &model.StorageError{Op: "insert_benchmark", Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"job_vacancy_id": benchmark.JobVacancyID,
		"role_name":      benchmark.RoleName,
		"talent_count":   len(ids),
	}).Info("基准配置已保存")
	return benchmark.JobVacancyID, nil
}

// Get 按ID查询基准配置（展示层回显用）
func (s *BenchmarkService) Get(ctx context.Context, jobVacancyID string) (*model.TalentBenchmark, error) {
	return s.benchmarkRepo.GetByID(ctx, jobVacancyID)
}
