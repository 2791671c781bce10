package consts

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
