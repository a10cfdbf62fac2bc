package constants

// Donation status
const (
	DonationPending  = "pending"
	DonationApproved = "approved"
	DonationRejected = "rejected"
)

// Publication consent
const (
	ConsentFull      = "full"
	ConsentNameOnly  = "name_only"
	ConsentAnonymous = "anonymous"
)

// Expense type
const (
	ExpenseIncome  = "income"
	ExpenseOutcome = "outcome"
)

// Blog post status
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
	BlogArchived  = "archived"
)

const AnonymousDonorLabel = "ผู้ไม่ประสงค์ออกนาม"

// Common messages
const (
	MsgInvalidBody   = "ข้อมูลที่ส่งมาไม่ถูกต้อง"
	MsgInvalidID     = "รหัสอ้างอิงไม่ถูกต้อง"
	MsgInternalError = "เกิดข้อผิดพลาดภายในระบบ กรุณาลองใหม่อีกครั้ง"
	MsgNotFound      = "ไม่พบข้อมูลที่ต้องการ"

	MsgStorageUnavailable = "ระบบอัปโหลดไฟล์ยังไม่พร้อมใช้งาน"
)
