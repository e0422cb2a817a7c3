package model

// UserRole 由签发令牌的账号服务写入 JWT，本服务只做校验
type UserRole string

const (
	Athlete UserRole = "athlete"
	Coach   UserRole = "coach"
	Parent  UserRole = "parent"
	Admin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case Athlete, Coach, Parent, Admin:
		return true
	}
	return false
}
