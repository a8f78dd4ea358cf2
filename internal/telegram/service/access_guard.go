package service

// AdminGuard 单一管理员访问控制
type AdminGuard struct {
	adminID int64
}

// NewAccessGuard 创建访问控制实例
func NewAccessGuard(adminID int64) *AdminGuard {
	return &AdminGuard{adminID: adminID}
}

// Authorize 仅当 userID 与配置的管理员 ID 相等时返回 true
func (g *AdminGuard) Authorize(userID int64) bool {
	return userID == g.adminID
}

// AdminID 返回授权操作员 ID
func (g *AdminGuard) AdminID() int64 {
	return g.adminID
}
