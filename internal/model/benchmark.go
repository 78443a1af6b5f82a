package model

import (
	"time"

	"gorm.io/datatypes"
)

// TalentBenchmark 岗位基准配置表（追加写：每次保存都生成新记录，历史配置永不原地修改）
// job_vacancy_id 即业务上的基准/岗位唯一标识（UUID字符串）
type TalentBenchmark struct {
	JobVacancyID      string         `gorm:"column:job_vacancy_id;type:varchar(64);primaryKey;comment:岗位基准唯一ID"`
	RoleName          string         `gorm:"column:role_name;type:varchar(128);not null;comment:岗位名称"`
	JobLevel          string         `gorm:"column:job_level;type:varchar(64);comment:岗位级别"`
	RolePurpose       string         `gorm:"column:role_purpose;type:text;comment:岗位目标描述"`
	SelectedTalentIDs datatypes.JSON `gorm:"column:selected_talent_ids;not null;comment:基准员工ID列表"`
	WeightsConfig     datatypes.JSON `gorm:"column:weights_config;not null;comment:TGV权重配置（仅存储，不参与本层计算）"`
	CreatedAt         time.Time      `gorm:"column:created_at;type:timestamp;index;comment:创建时间"`
}

func (TalentBenchmark) TableName() string { return "talent_benchmarks" }
