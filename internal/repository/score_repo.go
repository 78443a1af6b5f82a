package repository

import (
	"context"

	"gorm.io/gorm"
)

// LeaderboardRow 排行榜单行：每个候选人一行，固定四个TGV透视列
// 某个TGV对该候选人缺失时对应列为NULL，本层不补零
type LeaderboardRow struct {
	EmployeeID      int64    `gorm:"column:employee_id" json:"employee_id"`
	Fullname        string   `gorm:"column:fullname" json:"fullname"`
	Directorate     string   `gorm:"column:directorate" json:"directorate"`
	Role            string   `gorm:"column:role" json:"role"`
	Grade           string   `gorm:"column:grade" json:"grade"`
	FinalMatchRate  float64  `gorm:"column:final_match_rate" json:"final_match_rate"`
	TGVCompetency   *float64 `gorm:"column:tgv_competency" json:"tgv_competency"`
	TGVPsychometric *float64 `gorm:"column:tgv_psychometric" json:"tgv_psychometric"`
	TGVStrengths    *float64 `gorm:"column:tgv_strengths" json:"tgv_strengths"`
	TGVContext      *float64 `gorm:"column:tgv_context" json:"tgv_context"`
}

// TGVRow 候选人单个变量组的汇总行（组内变量匹配率取均值）
type TGVRow struct {
	EmployeeID   int64    `gorm:"column:employee_id" json:"employee_id"`
	Directorate  string   `gorm:"column:directorate" json:"directorate"`
	Role         string   `gorm:"column:role" json:"role"`
	Grade        string   `gorm:"column:grade" json:"grade"`
	TGVName      string   `gorm:"column:tgv_name" json:"tgv_name"`
	TGVMatchRate *float64 `gorm:"column:tgv_match_rate" json:"tgv_match_rate"`
}

// TVRow 候选人单个变量的明细行（透传，不做归约）
// 上游事实缺失时各分值为NULL，表示“无可比基准”，与0.0严格区分
type TVRow struct {
	TVName        string   `gorm:"column:tv_name" json:"tv_name"`
	BaselineScore *float64 `gorm:"column:baseline_score" json:"baseline_score"`
	UserScore     *float64 `gorm:"column:user_score" json:"user_score"`
	TVMatchRate   *float64 `gorm:"column:tv_match_rate" json:"tv_match_rate"`
}

// DistributionRow 总匹配率分布行：每个候选人恰好一行
type DistributionRow struct {
	EmployeeID     int64   `gorm:"column:employee_id" json:"employee_id"`
	FinalMatchRate float64 `gorm:"column:final_match_rate" json:"final_match_rate"`
}

// FairnessRow 按（职级、学历、专业）分组的公平性概览行
type FairnessRow struct {
	Grade         string  `gorm:"column:grade" json:"grade"`
	Education     string  `gorm:"column:education" json:"education"`
	Major         string  `gorm:"column:major" json:"major"`
	AvgMatchRate  float64 `gorm:"column:avg_match_rate" json:"avg_match_rate"`
	EmployeeCount int64   `gorm:"column:employee_count" json:"employee_count"`
}

// ScoreRepository 评分事实表聚合查询接口。所有查询都以显式 job_vacancy_id 过滤，
// scope 解析由 service 层在每次调用前独立完成
type ScoreRepository interface {
	Leaderboard(ctx context.Context, jobVacancyID string, limit int) ([]LeaderboardRow, error)
	CandidateTGV(ctx context.Context, jobVacancyID string, employeeID int64) ([]TGVRow, error)
	CandidateTV(ctx context.Context, jobVacancyID string, employeeID int64, tgvName string) ([]TVRow, error)
	Distribution(ctx context.Context, jobVacancyID string) ([]DistributionRow, error)
	Fairness(ctx context.Context, jobVacancyID string) ([]FairnessRow, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository 创建 ScoreRepository 实例
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

// Leaderboard 候选人排行榜：按 final_match_rate 降序，limit 截断。
// final_match_rate 用 max 提取（同一候选人所有行取值相同，join扇出下禁止求和），
// 四个TGV列用条件聚合透视
func (r *scoreRepository) Leaderboard(ctx context.Context, jobVacancyID string, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 200
	}
	rows := []LeaderboardRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.employee_id, e.fullname, a.directorate, a.role, a.grade,
		       MAX(a.final_match_rate) AS final_match_rate,
		       MAX(CASE WHEN a.tgv_name = 'Competency'   THEN a.tgv_match_rate END) AS tgv_competency,
		       MAX(CASE WHEN a.tgv_name = 'Psychometric' THEN a.tgv_match_rate END) AS tgv_psychometric,
		       MAX(CASE WHEN a.tgv_name = 'Strengths'    THEN a.tgv_match_rate END) AS tgv_strengths,
		       MAX(CASE WHEN a.tgv_name = 'Context'      THEN a.tgv_match_rate END) AS tgv_context
		FROM ai_success_scores a
		JOIN employees_org e ON e.employee_id = a.employee_id
		WHERE a.job_vacancy_id = ?
		GROUP BY a.employee_id, e.fullname, a.directorate, a.role, a.grade
		ORDER BY final_match_rate DESC
		LIMIT ?`, jobVacancyID, limit).Scan(&rows).Error
	return rows, err
}

// CandidateTGV 候选人变量组汇总：组内 tv_match_rate 取均值，按 tgv_name 升序。
// 该候选人在 scope 内无任何事实行时返回空结果（“不在当前scope中”）
func (r *scoreRepository) CandidateTGV(ctx context.Context, jobVacancyID string, employeeID int64) ([]TGVRow, error) {
	rows := []TGVRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.employee_id, a.directorate, a.role, a.grade, a.tgv_name,
		       AVG(a.tv_match_rate) AS tgv_match_rate
		FROM ai_success_scores a
		WHERE a.job_vacancy_id = ? AND a.employee_id = ?
		GROUP BY a.employee_id, a.directorate, a.role, a.grade, a.tgv_name
		ORDER BY a.tgv_name`, jobVacancyID, employeeID).Scan(&rows).Error
	return rows, err
}

// CandidateTV 候选人变量明细：不做归约逐行透传，按 tv_name 升序。
// gap 阈值过滤属于展示层职责，这里始终返回完整行
func (r *scoreRepository) CandidateTV(ctx context.Context, jobVacancyID string, employeeID int64, tgvName string) ([]TVRow, error) {
	rows := []TVRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.tv_name, a.baseline_score, a.user_score, a.tv_match_rate
		FROM ai_success_scores a
		WHERE a.job_vacancy_id = ? AND a.employee_id = ? AND a.tgv_name = ?
		ORDER BY a.tv_name`, jobVacancyID, employeeID, tgvName).Scan(&rows).Error
	return rows, err
}

// Distribution 总匹配率分布：按候选人去重（max归约），行数等于 scope 内
// 有事实行的候选人数，绝不因变量级扇出膨胀
func (r *scoreRepository) Distribution(ctx context.Context, jobVacancyID string) ([]DistributionRow, error) {
	rows := []DistributionRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.employee_id, MAX(a.final_match_rate) AS final_match_rate
		FROM ai_success_scores a
		WHERE a.job_vacancy_id = ?
		GROUP BY a.employee_id
		ORDER BY a.employee_id`, jobVacancyID).Scan(&rows).Error
	return rows, err
}

// Fairness 公平性概览：先按候选人去重再对 final_match_rate 取均值，
// 避免变量多的候选人在组均值里权重偏大；附带组内人数
func (r *scoreRepository) Fairness(ctx context.Context, jobVacancyID string) ([]FairnessRow, error) {
	rows := []FairnessRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.grade, e.education, e.major,
		       AVG(d.final_match_rate) AS avg_match_rate,
		       COUNT(*) AS employee_count
		FROM (
		    SELECT a.employee_id, a.grade, MAX(a.final_match_rate) AS final_match_rate
		    FROM ai_success_scores a
		    WHERE a.job_vacancy_id = ?
		    GROUP BY a.employee_id, a.grade
		) d
		JOIN employees_org e ON e.employee_id = d.employee_id
		GROUP BY d.grade, e.education, e.major
		ORDER BY d.grade, e.education, e.major`, jobVacancyID).Scan(&rows).Error
	return rows, err
}
