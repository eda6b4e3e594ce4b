package service

import "github.com/creatorlink/internal/constants"

// Actor 当前操作者（由鉴权中间件解析，服务层只依赖 ID 与角色）
type Actor struct {
	UserID uint
	Role   string
}

// IsAdmin 是否为平台管理员
func (a Actor) IsAdmin() bool {
	return a.UserID != 0 && a.Role == constants.RoleAdmin
}

// IsBrand 是否为品牌方
func (a Actor) IsBrand() bool {
	return a.UserID != 0 && a.Role == constants.RoleBrand
}

// IsInfluencer 是否为达人
func (a Actor) IsInfluencer() bool {
	return a.UserID != 0 && a.Role == constants.RoleInfluencer
}
