// Package ginx 提供 gin 框架的 handler 适配器，支持自动参数绑定和响应处理
//
// 支持 JSON 和 XML 格式：
//   - 默认使用 JSON 格式
//   - 如果请求的 Content-Type 包含 "application/xml" 或 "text/xml"，则使用 XML 解析请求
//   - 如果使用 XML 解析请求，或 Accept 包含 XML，响应也会使用 XML 格式
//   - 错误响应也会根据请求格式自动选择 JSON 或 XML
//
// 支持的 handler 函数签名：
//
//	// Adapt5: 有参数，有返回值，有 error
//	func(c *gin.Context, args *Args) (resp, error)
//
//	// Adapt3: 无参数，有返回值，有 error
//	func(c *gin.Context) (resp, error)
//
//	// Adapt2: 无参数，只有返回值
//	func(c *gin.Context) resp
//
// 返回 *StatusResponse 可以指定状态码，例如 ginx.Accepted() 返回 202。
// 返回的 error 链中有 *apierror.Error 时使用它的 HTTPStatus。
//
// 中间件：
//
//	router.Use(ginx.RequestID(), ginx.Logger(logger))
package ginx
