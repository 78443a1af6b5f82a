package model

import "fmt"

// ValidationError 调用方入参错误：校验失败即返回，不发起任何存储写入
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数校验失败 %s: %s", e.Field, e.Reason)
}

// StorageError 基准写入失败：整条插入要么全部提交要么完全不存在，调用方按失败处理
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储写入失败 %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DataSourceError 聚合读取失败：直接透传给调用方，不做缓存兜底
// 注意：scope 解析不到基准不是错误，所有读路径对无 scope 返回空表
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("数据源查询失败 %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
