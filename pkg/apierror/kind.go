package apierror

import "net/http"

// Kind 错误分类
type Kind int

const (
	// KindUnknown 未分类的错误，按服务端错误处理
	KindUnknown Kind = iota
	// KindNotFound 资源不存在
	KindNotFound
	// KindConflict 名称冲突
	KindConflict
	// KindInUse 资源正在使用，未强制时不能删除
	KindInUse
	// KindKeyNotFound 要删除的 key 不存在
	KindKeyNotFound
	// KindInvalidInput 请求参数不合法
	KindInvalidInput
	// KindOperationFailed 服务端执行失败
	KindOperationFailed
)

var kindNames = map[Kind]string{
	KindUnknown:         "Unknown",
	KindNotFound:        "NotFound",
	KindConflict:        "Conflict",
	KindInUse:           "InUse",
	KindKeyNotFound:     "KeyNotFound",
	KindInvalidInput:    "InvalidInput",
	KindOperationFailed: "OperationFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// HTTPStatus 返回分类对应的 HTTP 状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInUse, KindKeyNotFound, KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
