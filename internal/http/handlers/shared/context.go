package shared

import (
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "上下文参数无效", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "上下文参数无效", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "上下文参数类型错误", nil)
		return 0, false
	}
}

// GetActor 从上下文还原当前操作者；鉴权中间件负责写入 user_id 与 role。
func GetActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := GetContextUint(c, "user_id")
	if !ok {
		return service.Actor{}, false
	}
	role := ""
	if value, exists := c.Get("role"); exists {
		if r, ok := value.(string); ok {
			role = r
		}
	}
	if role == "" {
		RespondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: role}, true
}
