package core

// Role 呼叫端身份，由 Auth middleware 從 JWT 解出
type Role string

const (
	RoleAdmin    Role = "admin"    // 管理員：全部資源
	RoleEmployee Role = "employee" // 配送員：僅自己的配額 / 配送 / 指派
)

var validRoles = []Role{RoleAdmin, RoleEmployee}

func IsValidRole(role string) bool {
	for _, v := range validRoles {
		if Role(role) == v {
			return true
		}
	}
	return false
}
