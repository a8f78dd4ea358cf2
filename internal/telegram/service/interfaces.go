package service

// AccessGuard 访问控制接口
// 无副作用，拒绝后的回复由调用方负责
type AccessGuard interface {
	// Authorize 判断用户是否为授权操作员
	Authorize(userID int64) bool

	// AdminID 返回授权操作员 ID
	AdminID() int64
}
