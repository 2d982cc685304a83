package domain

import "time"

// UserType 用户类型
const (
	UserTypePatient  = "patient"
	UserTypeAdvocate = "advocate"
)

// UserProfile users 表的资料行（与 auth 用户同 id）
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	UserType    string    `json:"user_type"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdvocateProfile advocates 表的扩展资料（user_type = advocate 时创建）
type AdvocateProfile struct {
	UserID               string   `json:"user_id"`
	Credentials          string   `json:"credentials"`
	YearsOfExperience    int      `json:"years_of_experience"`
	Specializations      []string `json:"specializations"`
	SuccessRate          float64  `json:"success_rate"`
	TotalSavingsAchieved float64  `json:"total_savings_achieved"`
	ActiveCasesCount     int      `json:"active_cases_count"`
}
