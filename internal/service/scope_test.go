package service

import (
	"context"
	"errors"
	"testing"

	"TalentMatch/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResolveExplicitScopeIsIdentity(t *testing.T) {
	repo := &stubBenchmarkRepo{latestID: "jid-latest"}
	resolver := NewScopeResolver(repo)

	// 显式ID原样返回，不查注册表也不做存在性检查
	id, ok, err := resolver.Resolve(context.Background(), "jid-explicit")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "jid-explicit", id)
	require.Zero(t, repo.latestCalls)
}

func TestResolveFallsBackToLatest(t *testing.T) {
	repo := &stubBenchmarkRepo{latestID: "jid-latest"}
	resolver := NewScopeResolver(repo)

	id, ok, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "jid-latest", id)
	require.Equal(t, 1, repo.latestCalls)
}

func TestResolveEmptyRegistryYieldsNoScope(t *testing.T) {
	repo := &stubBenchmarkRepo{latestErr: gorm.ErrRecordNotFound}
	resolver := NewScopeResolver(repo)

	// 注册表为空不是错误：返回无scope，下游聚合返回空表
	id, ok, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, id)
}

func TestResolvePropagatesDataSourceError(t *testing.T) {
	repo := &stubBenchmarkRepo{latestErr: errors.New("connection refused")}
	resolver := NewScopeResolver(repo)

	_, _, err := resolver.Resolve(context.Background(), "")
	var dsErr *model.DataSourceError
	require.ErrorAs(t, err, &dsErr)
}
