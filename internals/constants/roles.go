package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role error messages (Thai, sent to the client as-is)
const (
	ErrOnlyAdminsCanAccess = "เฉพาะผู้ดูแลระบบเท่านั้นที่สามารถใช้งาน%sได้"
	ErrLoginRequired       = "กรุณาเข้าสู่ระบบก่อนใช้งาน"
	ErrSessionInvalid      = "เซสชันไม่ถูกต้องหรือหมดอายุ กรุณาเข้าสู่ระบบใหม่"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles  = []string{RoleUser, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
