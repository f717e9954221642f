package model

import "time"

// UserProfile 登入/註冊回應帶回的輕量使用者資訊
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthSession 持久化的session紀錄 單一key儲存
// token為不透明bearer憑證 僅原樣附帶於請求header
type AuthSession struct {
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
	SavedAt time.Time   `json:"saved_at"`
}

// AuthResult 登入/註冊/密碼流程的結果
// 失敗時Message帶後端回傳的原始訊息或本地錯誤描述
type AuthResult struct {
	Success bool
	Message string
}
