package constants

// Role values as stored on users and inside session claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

var (
	AllRoles = []string{RoleAdmin, RoleUser, RoleGuest}

	// NonGuestRoles may write attendance without a guest-link capability check.
	NonGuestRoles = []string{RoleAdmin, RoleUser}

	AdminOnly = []string{RoleAdmin}
)

const (
	ErrAdminOnly    = "管理者のみ操作できます。"
	ErrLoginNeeded  = "ログインしてください。"
	ErrGuestNoWrite = "このゲストURLでは出面の編集ができません。"
)
