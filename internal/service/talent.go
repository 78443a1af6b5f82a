package service

import (
	"context"

	"TalentMatch/internal/model"
	"TalentMatch/internal/repository"

	"github.com/sirupsen/logrus"
)

// LeaderboardResult 排行榜返回（附带本次实际生效的scope）
type LeaderboardResult struct {
	JobVacancyID string                      `json:"job_vacancy_id"`
	Items        []repository.LeaderboardRow `json:"items"`
}

// TGVResult 候选人变量组汇总返回
type TGVResult struct {
	JobVacancyID string              `json:"job_vacancy_id"`
	EmployeeID   int64               `json:"employee_id"`
	Items        []repository.TGVRow `json:"items"`
}

// TVResult 候选人变量明细返回
type TVResult struct {
	JobVacancyID string             `json:"job_vacancy_id"`
	EmployeeID   int64              `json:"employee_id"`
	TGVName      string             `json:"tgv_name"`
	Items        []repository.TVRow `json:"items"`
}

// DistributionResult 总匹配率分布返回（每候选人一行）
type DistributionResult struct {
	JobVacancyID string                       `json:"job_vacancy_id"`
	Items        []repository.DistributionRow `json:"items"`
}

// FairnessResult 公平性概览返回
type FairnessResult struct {
	JobVacancyID string                   `json:"job_vacancy_id"`
	Items        []repository.FairnessRow `json:"items"`
}

// TalentService 四条聚合读路径。每个方法独立解析一次scope（绝不缓存），
// 解析不到scope时返回空表而非报错；存储读取失败透传 DataSourceError，不做兜底
type TalentService struct {
	scoreRepo repository.ScoreRepository
	scope     *ScopeResolver
	logger    *logrus.Logger
}

// NewTalentService 创建 TalentService
func NewTalentService(scoreRepo repository.ScoreRepository, scope *ScopeResolver, logger *logrus.Logger) *TalentService {
	return &TalentService{
		scoreRepo: scoreRepo,
		scope:     scope,
		logger:    logger,
	}
}

// Leaderboard 候选人排行榜：final_match_rate 降序，行数不超过 limit
func (s *TalentService) Leaderboard(ctx context.Context, explicitID string, limit int) (*LeaderboardResult, error) {
	jid, ok, err := s.scope.Resolve(ctx, explicitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &LeaderboardResult{Items: []repository.LeaderboardRow{}}, nil
	}
	rows, err := s.scoreRepo.Leaderboard(ctx, jid, limit)
	if err != nil {
		return nil, &model.DataSourceError{Op: "leaderboard", Err: err}
	}
	return &LeaderboardResult{JobVacancyID: jid, Items: rows}, nil
}

// CandidateTGV 候选人变量组汇总。空结果表示候选人不在当前scope中，
// 与“有事实行但得分为零”严格区分
func (s *TalentService) CandidateTGV(ctx context.Context, explicitID string, employeeID int64) (*TGVResult, error) {
	jid, ok, err := s.scope.Resolve(ctx, explicitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &TGVResult{EmployeeID: employeeID, Items: []repository.TGVRow{}}, nil
	}
	rows, err := s.scoreRepo.CandidateTGV(ctx, jid, employeeID)
	if err != nil {
		return nil, &model.DataSourceError{Op: "candidate_tgv", Err: err}
	}
	return &TGVResult{JobVacancyID: jid, EmployeeID: employeeID, Items: rows}, nil
}

// CandidateTV 候选人变量明细（透传，NULL保持NULL，不补零）
func (s *TalentService) CandidateTV(ctx context.Context, explicitID string, employeeID int64, tgvName string) (*TVResult, error) {
	jid, ok, err := s.scope.Resolve(ctx, explicitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &TVResult{EmployeeID: employeeID, TGVName: tgvName, Items: []repository.TVRow{}}, nil
	}
	rows, err := s.scoreRepo.CandidateTV(ctx, jid, employeeID, tgvName)
	if err != nil {
		return nil, &model.DataSourceError{Op: "candidate_tv", Err: err}
	}
	return &TVResult{JobVacancyID: jid, EmployeeID: employeeID, TGVName: tgvName, Items: rows}, nil
}

// Distribution 总匹配率分布：每个有事实行的候选人恰好一行
func (s *TalentService) Distribution(ctx context.Context, explicitID string) (*DistributionResult, error) {
	jid, ok, err := s.scope.Resolve(ctx, explicitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &DistributionResult{Items: []repository.DistributionRow{}}, nil
	}
	rows, err := s.scoreRepo.Distribution(ctx, jid)
	if err != nil {
		return nil, &model.DataSourceError{Op: "distribution", Err: err}
	}
	return &DistributionResult{JobVacancyID: jid, Items: rows}, nil
}

// Fairness 按（职级、学历、专业）分组的公平性概览
func (s *TalentService) Fairness(ctx context.Context, explicitID string) (*FairnessResult, error) {
	jid, ok, err := s.scope.Resolve(ctx, explicitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &FairnessResult{Items: []repository.FairnessRow{}}, nil
	}
	rows, err := s.scoreRepo.Fairness(ctx, jid)
	if err != nil {
		return nil, &model.DataSourceError{Op: "fairness", Err: err}
	}
	return &FairnessResult{JobVacancyID: jid, Items: rows}, nil
}
