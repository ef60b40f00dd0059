package models

import "github.com/gosimple/slug"

// DeriveSlug 根据来源字段推导 slug。
// 仅当来源非空且（当前 slug 为空或与推导结果不同）时重新生成；
// 不做唯一性重试，重名冲突在持久化时以唯一键错误暴露。
func DeriveSlug(current, source string) string {
	if source == "" {
		return current
	}
	derived := slug.Make(source)
	if current == "" || current != derived {
		return derived
	}
	return current
}
