package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"TalentMatch/internal/config"
	"TalentMatch/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubBenchmarkRepo 内存桩：记录插入的行，可脚本化最新ID查询
type stubBenchmarkRepo struct {
	inserted    []*model.TalentBenchmark
	insertErr   error
	latestID    string
	latestErr   error
	latestCalls int
}

func (s *stubBenchmarkRepo) Insert(_ context.Context, b *model.TalentBenchmark) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, b)
	return nil
}

func (s *stubBenchmarkRepo) LatestVacancyID(_ context.Context) (string, error) {
	s.latestCalls++
	if s.latestErr != nil {
		return "", s.latestErr
	}
	return s.latestID, nil
}

func (s *stubBenchmarkRepo) GetByID(_ context.Context, id string) (*model.TalentBenchmark, error) {
	for _, b := range s.inserted {
		if b.JobVacancyID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testDefaults() config.BenchmarkConfig {
	return config.BenchmarkConfig{
		DefaultJobLevel: "Middle",
		DefaultWeights:  `{"tgv":{"Competency":0.5,"Psychometric":0.15,"Strengths":0.25,"Context":0.1}}`,
	}
}

func TestParseIDs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int64
	}{
		{"空输入", "", []int64{}},
		{"干净的逗号分隔", "1, 2,3", []int64{1, 2, 3}},
		{"混入非法token静默丢弃", "a,2,-3,4.5", []int64{2}},
		{"换行与逗号混用", "100\n101, 102", []int64{100, 101, 102}},
		{"全部非法", "abc,-1,2.5, ", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseIDs(tc.raw))
		})
	}
}

func TestParseIDsIdempotent(t *testing.T) {
	// 对已经干净的数字串再解析一遍结果不变
	first := ParseIDs("100,101,102")
	second := ParseIDs("100,101,102")
	require.Equal(t, first, second)
	require.Equal(t, []int64{100, 101, 102}, first)
}

func TestCreateBenchmarkValidation(t *testing.T) {
	repo := &stubBenchmarkRepo{}
	svc := NewBenchmarkService(repo, testDefaults(), quietLogger())
	ctx := context.Background()

	var validationErr *model.ValidationError

	_, err := svc.Create(ctx, CreateBenchmarkInput{RoleName: "", RawTalentIDs: "100"})
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "role_name", validationErr.Field)

	_, err = svc.Create(ctx, CreateBenchmarkInput{RoleName: "Data Analyst", RawTalentIDs: "a,b"})
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "selected_talent_ids", validationErr.Field)

	// 校验失败时不发起任何写入
	require.Empty(t, repo.inserted)
}

func TestCreateBenchmarkAppendSemantics(t *testing.T) {
	repo := &stubBenchmarkRepo{}
	svc := NewBenchmarkService(repo, testDefaults(), quietLogger())
	ctx := context.Background()

	input := CreateBenchmarkInput{
		RoleName:     "Data Analyst",
		RolePurpose:  "Drive insight generation",
		RawTalentIDs: "100,101",
		Weights:      json.RawMessage(`{"tgv":{"Competency":0.5,"Psychometric":0.15,"Strengths":0.25,"Context":0.1}}`),
	}

	// 完全相同的入参创建两次：各自成行且ID互不相同（追加语义，不去重）
	first, err := svc.Create(ctx, input)
	require.NoError(t, err)
	second, err := svc.Create(ctx, input)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Len(t, repo.inserted, 2)

	// 权重与ID列表原样落库
	require.JSONEq(t, string(input.Weights), string(repo.inserted[0].WeightsConfig))
	require.JSONEq(t, `[100,101]`, string(repo.inserted[0].SelectedTalentIDs))
}

func TestCreateBenchmarkDefaults(t *testing.T) {
	repo := &stubBenchmarkRepo{}
	svc := NewBenchmarkService(repo, testDefaults(), quietLogger())

	_, err := svc.Create(context.Background(), CreateBenchmarkInput{
		RoleName:     "Data Analyst",
		RawTalentIDs: "100",
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, "Middle", repo.inserted[0].JobLevel)
	require.JSONEq(t, testDefaults().DefaultWeights, string(repo.inserted[0].WeightsConfig))
}

func TestCreateBenchmarkStorageError(t *testing.T) {
	repo := &stubBenchmarkRepo{insertErr: gorm.ErrInvalidDB}
	svc := NewBenchmarkService(repo, testDefaults(), quietLogger())

	_, err := svc.Create(context.Background(), CreateBenchmarkInput{
		RoleName:     "Data Analyst",
		RawTalentIDs: "100",
	})
	var storageErr *model.StorageError
	require.ErrorAs(t, err, &storageErr)
}
