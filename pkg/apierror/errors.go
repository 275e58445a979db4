package apierror

// QoS 规格相关的预定义错误
// 使用 WrapError 携带具体的消息和原始错误
var (
	// ErrQoSSpecsNotFound QoS 规格不存在
	ErrQoSSpecsNotFound = NewKindError(KindNotFound, "QoSSpecsNotFound", "QoS specs could not be found.")

	// ErrQoSSpecsExists 同名 QoS 规格已存在
	ErrQoSSpecsExists = NewKindError(KindConflict, "QoSSpecsExists", "QoS specs already exists.")

	// ErrQoSSpecsInUse QoS 规格仍与卷类型关联
	ErrQoSSpecsInUse = NewKindError(KindInUse, "QoSSpecsInUse", "QoS specs is still in use.")

	// ErrQoSSpecsKeyNotFound QoS 规格中没有指定的 key
	ErrQoSSpecsKeyNotFound = NewKindError(KindKeyNotFound, "QoSSpecsKeyNotFound", "QoS specs key could not be found.")

	// ErrInvalidQoSSpecs QoS 规格参数不合法
	ErrInvalidQoSSpecs = NewKindError(KindInvalidInput, "InvalidQoSSpecs", "Invalid QoS specs.")

	// ErrQoSSpecsCreateFailed 创建 QoS 规格失败
	ErrQoSSpecsCreateFailed = NewKindError(KindOperationFailed, "QoSSpecsCreateFailed", "Failed to create QoS specs.")

	// ErrQoSSpecsUpdateFailed 更新 QoS 规格失败
	ErrQoSSpecsUpdateFailed = NewKindError(KindOperationFailed, "QoSSpecsUpdateFailed", "Failed to update QoS specs.")

	// ErrQoSSpecsDeleteFailed 删除 QoS 规格失败
	ErrQoSSpecsDeleteFailed = NewKindError(KindOperationFailed, "QoSSpecsDeleteFailed", "Failed to delete QoS specs.")

	// ErrQoSSpecsAssociateFailed 关联卷类型失败
	ErrQoSSpecsAssociateFailed = NewKindError(KindOperationFailed, "QoSSpecsAssociateFailed", "Failed to associate QoS specs with volume type.")

	// ErrQoSSpecsDisassociateFailed 解除卷类型关联失败
	ErrQoSSpecsDisassociateFailed = NewKindError(KindOperationFailed, "QoSSpecsDisassociateFailed", "Failed to disassociate QoS specs from volume type.")

	// ErrVolumeTypeNotFound 卷类型不存在
	ErrVolumeTypeNotFound = NewKindError(KindNotFound, "VolumeTypeNotFound", "Volume type could not be found.")

	// ErrVolumeTypeExists 同名卷类型已存在
	ErrVolumeTypeExists = NewKindError(KindConflict, "VolumeTypeExists", "Volume type already exists.")

	// ErrInvalidVolumeType 卷类型状态不允许该操作
	ErrInvalidVolumeType = NewKindError(KindInvalidInput, "InvalidVolumeType", "Invalid volume type.")

	// ErrInvalidInput 请求参数不合法
	ErrInvalidInput = NewKindError(KindInvalidInput, "InvalidInput", "Invalid input received.")

	// ErrMarkerNotFound 分页 marker 不存在
	ErrMarkerNotFound = NewKindError(KindNotFound, "MarkerNotFound", "Marker could not be found.")
)

// 服务端通用错误
var (
	// ErrInternalError 发生了内部错误
	ErrInternalError = NewKindError(KindUnknown, "InternalError", "An internal error has occurred.")

	// ErrServiceUnavailable 由于服务器临时故障，请求失败
	ErrServiceUnavailable = NewErrorWithStatus("ServiceUnavailable", "The request has failed due to a temporary failure of the server.", 503)
)
