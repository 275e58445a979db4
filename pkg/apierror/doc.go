// Package apierror 提供统一的错误类型，用于所有服务的错误处理
//
// 错误响应格式支持 XML 和 JSON 两种格式：
//
//	XML 格式：
//	<Response>
//	    <Errors>
//	        <Error>
//	            <Code>QoSSpecsNotFound</Code>
//	            <Message>QoS specs qos-1 could not be found.</Message>
//	        </Error>
//	    </Errors>
//	    <RequestID>ea966190-f9aa-478e-9ede-example</RequestID>
//	</Response>
//
//	JSON 格式：
//	{
//	    "errors": [
//	        {
//	            "code": "QoSSpecsNotFound",
//	            "message": "QoS specs qos-1 could not be found."
//	        }
//	    ],
//	    "requestID": "ea966190-f9aa-478e-9ede-example"
//	}
//
// 每个错误都带有一个 Kind 分类，HTTP 状态码只由分类决定：
//
//   - KindNotFound: 404
//   - KindConflict: 409
//   - KindInUse, KindKeyNotFound, KindInvalidInput: 400
//   - KindOperationFailed, KindUnknown: 500
//
// 使用示例：
//
//	// 包装预定义的错误
//	err := apierror.WrapError(apierror.ErrQoSSpecsNotFound, "QoS specs qos-1 could not be found.", nil)
//
//	// 获取分类和状态码
//	apierror.KindOf(err)   // KindNotFound
//	apierror.StatusOf(err) // 404
package apierror
