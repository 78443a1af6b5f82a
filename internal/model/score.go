package model

// SuccessScore 变量级匹配得分事实表（由上游评分任务整表重建，本服务只读）
// 粒度：(job_vacancy_id, employee_id, tgv_name, tv_name) 一行
// final_match_rate 对固定 (job_vacancy_id, employee_id) 在所有行上取值相同，
// 聚合时必须用 max/distinct 这类可交换归约提取，禁止求和（join扇出会放大）
type SuccessScore struct {
	ID             uint64   `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	JobVacancyID   string   `gorm:"column:job_vacancy_id;type:varchar(64);index;not null;comment:关联岗位基准ID"`
	EmployeeID     int64    `gorm:"column:employee_id;type:bigint;index;not null;comment:员工ID"`
	Directorate    string   `gorm:"column:directorate;type:varchar(128);comment:事业部（冗余展示字段）"`
	Role           string   `gorm:"column:role;type:varchar(128);comment:现任岗位（冗余展示字段）"`
	Grade          string   `gorm:"column:grade;type:varchar(32);comment:职级（冗余展示字段）"`
	TGVName        string   `gorm:"column:tgv_name;type:varchar(64);not null;comment:变量组名称"`
	TVName         string   `gorm:"column:tv_name;type:varchar(128);not null;comment:变量名称"`
	BaselineScore  *float64 `gorm:"column:baseline_score;type:numeric(10,6);comment:基准分（可能缺失）"`
	UserScore      *float64 `gorm:"column:user_score;type:numeric(10,6);comment:候选人分（可能缺失）"`
	TVMatchRate    *float64 `gorm:"column:tv_match_rate;type:numeric(10,6);comment:变量匹配率 0..1"`
	TGVMatchRate   *float64 `gorm:"column:tgv_match_rate;type:numeric(10,6);comment:变量组匹配率 0..1（可由tv推导）"`
	FinalMatchRate float64  `gorm:"column:final_match_rate;type:numeric(10,6);not null;comment:候选人总匹配率 0..1"`
}

func (SuccessScore) TableName() string { return "ai_success_scores" }

// EmployeeOrg 员工组织信息（只读，按 employee_id 与事实表 1:1 关联做展示富化）
type EmployeeOrg struct {
	EmployeeID int64  `gorm:"column:employee_id;type:bigint;primaryKey;comment:员工ID"`
	Fullname   string `gorm:"column:fullname;type:varchar(128);not null;comment:姓名"`
	Education  string `gorm:"column:education;type:varchar(64);comment:学历"`
	Major      string `gorm:"column:major;type:varchar(128);comment:专业"`
}

func (EmployeeOrg) TableName() string { return "employees_org" }
