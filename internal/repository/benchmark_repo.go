package repository

import (
	"context"

	"TalentMatch/internal/model"

	"gorm.io/gorm"
)

// BenchmarkRepository 岗位基准配置仓储接口（追加写语义）
type BenchmarkRepository interface {
	// Insert 追加一条基准配置（单语句事务：要么全部提交要么完全不存在）
	Insert(ctx context.Context, benchmark *model.TalentBenchmark) error
	// LatestVacancyID 返回最近创建的基准ID；注册表为空时返回 gorm.ErrRecordNotFound
	LatestVacancyID(ctx context.Context) (string, error)
	// GetByID 按ID查询基准配置
	GetByID(ctx context.Context, jobVacancyID string) (*model.TalentBenchmark, error)
}

type benchmarkRepository struct {
	db *gorm.DB
}

// NewBenchmarkRepository 创建 BenchmarkRepository 实例
func NewBenchmarkRepository(db *gorm.DB) BenchmarkRepository {
	return &benchmarkRepository{db: db}
}

// Insert 追加新基准配置。永不原地更新：同名 role_name 也各自成行，
// 保证每次评分运行都能绑定到一份不可变的参数快照
func (r *benchmarkRepository) Insert(ctx context.Context, benchmark *model.TalentBenchmark) error {
	return r.db.WithContext(ctx).Create(benchmark).Error
}

// LatestVacancyID 最近创建的基准。created_at 精度不足时可能撞车，
// 追加 job_vacancy_id 降序作为固定决胜排序，保证解析结果确定
func (r *benchmarkRepository) LatestVacancyID(ctx context.Context) (string, error) {
	var b model.TalentBenchmark
	if err := r.db.WithContext(ctx).
		Select("job_vacancy_id").
		Order("created_at DESC, job_vacancy_id DESC").
		Take(&b).Error; err != nil {
		return "", err
	}
	return b.JobVacancyID, nil
}

// GetByID 按ID查询基准配置
func (r *benchmarkRepository) GetByID(ctx context.Context, jobVacancyID string) (*model.TalentBenchmark, error) {
	var b model.TalentBenchmark
	if err := r.db.WithContext(ctx).
		Where("job_vacancy_id = ?", jobVacancyID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
