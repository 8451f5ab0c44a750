package http

import "github.com/gin-gonic/gin"

// Registrar 由业务模块实现，挂载自己的 HTTP 路由。
type Registrar interface {
	HttpRegister(r gin.IRouter)
}
