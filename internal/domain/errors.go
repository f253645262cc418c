package domain

import "errors"

// 领域错误：repo 返回哨兵错误，HTTP 边界统一映射状态码
var (
	ErrNotFound        = errors.New("not found")         // 资源不存在，或对调用者不可见
	ErrForbidden       = errors.New("forbidden")         // 资源可见但无权操作
	ErrConflict        = errors.New("conflict")          // 业务规则冲突（如删除非空文件夹）
	ErrUnauthenticated = errors.New("unauthenticated")   // 凭证缺失/无效/过期
	ErrEmailTaken      = errors.New("email already registered")
)
