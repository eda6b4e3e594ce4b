package portal

import "github.com/creatorlink/internal/provider"

// Handler 门户接口处理器入口
// 说明：该处理器用于品牌方与达人侧 API。
type Handler struct {
	*provider.Container
}

// New 创建门户处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
