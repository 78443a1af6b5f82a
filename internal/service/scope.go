package service

import (
	"context"
	"errors"

	"TalentMatch/internal/model"
	"TalentMatch/internal/repository"

	"gorm.io/gorm"
)

// ScopeResolver 解析当前生效的基准scope。
// 显式传入的 job_vacancy_id 原样采用（不做存在性检查：不存在的ID在下游自然得到空结果，
// 这正是期望的“无数据”行为而非错误）；未传入时取注册表中最近创建的基准。
// 四条读路径每次调用都必须重新解析，不允许跨调用缓存——两次查询之间的注册表写入
// 应当立即影响下一次查询看到的scope
type ScopeResolver struct {
	benchmarkRepo repository.BenchmarkRepository
}

// NewScopeResolver 创建 ScopeResolver
func NewScopeResolver(benchmarkRepo repository.BenchmarkRepository) *ScopeResolver {
	return &ScopeResolver{benchmarkRepo: benchmarkRepo}
}

// Resolve 解析scope。返回值：(job_vacancy_id, 是否有scope, 错误)。
// 注册表为空不是错误：返回 ("", false, nil)，下游所有聚合返回空表
func (s *ScopeResolver) Resolve(ctx context.Context, explicitID string) (string, bool, error) {
	if explicitID != "" {
		return explicitID, true, nil
	}
	id, err := s.benchmarkRepo.LatestVacancyID(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, &model.DataSourceError{Op: "resolve_scope", Err: err}
	}
	return id, true, nil
}
