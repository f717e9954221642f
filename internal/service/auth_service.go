package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/api"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/storage"
	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
)

type IAuthService interface {
	// Login 帳密登入
	// 成功時寫入session(記憶體與持久儲存) 任何失敗都不改動既有session狀態
	//
	// 參數:
	//   - email: 使用者email
	//   - password: 密碼明文 僅傳給後端 不落地
	//
	// 返回值:
	//   - model.AuthResult: 失敗時Message帶後端回傳的原始訊息
	Login(ctx context.Context, email, password string) model.AuthResult
	// Register 註冊 成功時同Login寫入session 並以輸入的name建立profile
	Register(ctx context.Context, name, email, password string) model.AuthResult
	// AdminLogin 管理者登入 與Login相同契約 走獨立endpoint
	AdminLogin(ctx context.Context, email, password string) model.AuthResult
	// Logout 清除持久憑證並重設記憶體狀態 同步執行 不會失敗
	// 儲存層清除失敗只記log 記憶體狀態仍然重設
	Logout(ctx context.Context)
	// RestoreOnStartup 啟動時還原session
	// 先樂觀標記為已登入 再以goroutine向後端驗證token
	// 驗證失敗(後端明確拒絕)時清回未登入 傳輸層失敗時保留樂觀狀態
	// UI可能短暫顯示為已登入 這是沿用的UX取捨
	RestoreOnStartup(ctx context.Context)
	// WaitVerified 等待RestoreOnStartup的背景驗證完成 供測試與嚴格呼叫端使用
	WaitVerified()
	// ForgotPassword 發送OTP 單次請求 不改動本地狀態
	ForgotPassword(ctx context.Context, email string) model.AuthResult
	// VerifyOTP 驗證OTP 單次請求 不改動本地狀態
	VerifyOTP(ctx context.Context, email, otp string) model.AuthResult
	// ResetPassword 重設密碼 單次請求 不改動本地狀態
	ResetPassword(ctx context.Context, email, otp, newPassword string) model.AuthResult
	IsAuthenticated() bool
	// Token 當前bearer憑證 未登入時為空字串
	Token() string
	// Session 當前session副本 未登入時為nil
	Session() *model.AuthSession
}

// AuthService session holder
// 持久化只用單一key 單一canonical紀錄
type AuthService struct {
	authAPI api.IAuthAPI
	store   storage.SessionStore
	logger  *zerolog.Logger

	mu              sync.RWMutex
	session         *model.AuthSession
	isAuthenticated bool
	verified        chan struct{}
}

func NewAuthService(authAPI api.IAuthAPI, store storage.SessionStore, logger *zerolog.Logger) IAuthService {
	if reflect.ValueOf(authAPI).IsNil() {
		panic("auth service initialization failed: authAPI cannot be nil")
	}
	if reflect.ValueOf(store).IsNil() {
		panic("auth service initialization failed: store cannot be nil")
	}
	if logger == nil {
		temp := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &temp
	}

	closed := make(chan struct{})
	close(closed)

	return &AuthService{
		authAPI:  authAPI,
		store:    store,
		logger:   logger,
		verified: closed,
	}
}

func (a *AuthService) Login(ctx context.Context, email, password string) model.AuthResult {
	loginRes, err := a.authAPI.Login(ctx, email, password)
	if err != nil {
		return failureResult(err)
	}

	a.storeSession(ctx, loginRes.Token, loginRes.User)
	return model.AuthResult{Success: true, Message: "Login successful"}
}

func (a *AuthService) Register(ctx context.Context, name, email, password string) model.AuthResult {
	loginRes, err := a.authAPI.Register(ctx, name, email, password)
	if err != nil {
		return failureResult(err)
	}

	//註冊回應的user可能不帶name 以輸入值為準
	profile := loginRes.User
	if profile.Name == "" {
		profile.Name = name
	}
	if profile.Email == "" {
		profile.Email = email
	}

	a.storeSession(ctx, loginRes.Token, profile)
	return model.AuthResult{Success: true, Message: "Registration successful"}
}

func (a *AuthService) AdminLogin(ctx context.Context, email, password string) model.AuthResult {
	loginRes, err := a.authAPI.AdminLogin(ctx, email, password)
	if err != nil {
		return failureResult(err)
	}

	a.storeSession(ctx, loginRes.Token, loginRes.User)
	return model.AuthResult{Success: true, Message: "Login successful"}
}

func (a *AuthService) Logout(ctx context.Context) {
	a.mu.Lock()
	a.session = nil
	a.isAuthenticated = false
	a.mu.Unlock()

	if err := a.store.Delete(ctx, constants.SessionStorageKey); err != nil {
		a.logger.Error().Str("error", err.Error()).Msg("clear persisted session failed")
	}
}

func (a *AuthService) RestoreOnStartup(ctx context.Context) {
	raw, err := a.store.Get(ctx, constants.SessionStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			a.logger.Error().Str("error", err.Error()).Msg("read persisted session failed")
		}
		return
	}

	var session model.AuthSession
	if err := json.Unmarshal(raw, &session); err != nil || session.Token == "" {
		//壞掉的紀錄直接清掉 當作未登入
		a.store.Delete(ctx, constants.SessionStorageKey)
		return
	}

	//樂觀還原 驗證完成前視為已登入
	verified := make(chan struct{})
	a.mu.Lock()
	a.session = &session
	a.isAuthenticated = true
	a.verified = verified
	a.mu.Unlock()

	go func() {
		defer close(verified)

		err := a.authAPI.VerifyToken(context.Background(), session.Token)
		if err == nil {
			return
		}

		//傳輸層失敗時不清session 使用者可能只是暫時離線
		var anaErr *er.AnaError
		if errors.As(err, &anaErr) && anaErr.Code == er.InternalErrorCode {
			a.logger.Warn().Str("error", err.Error()).Msg("token verification skipped: backend unreachable")
			return
		}

		a.logger.Info().Msg("persisted token rejected, clearing session")
		a.Logout(context.Background())
	}()
}

func (a *AuthService) WaitVerified() {
	a.mu.RLock()
	verified := a.verified
	a.mu.RUnlock()
	<-verified
}

func (a *AuthService) ForgotPassword(ctx context.Context, email string) model.AuthResult {
	msg, err := a.authAPI.ForgotPassword(ctx, email)
	if err != nil {
		return failureResult(err)
	}
	return model.AuthResult{Success: true, Message: msg}
}

func (a *AuthService) VerifyOTP(ctx context.Context, email, otp string) model.AuthResult {
	msg, err := a.authAPI.VerifyOTP(ctx, email, otp)
	if err != nil {
		return failureResult(err)
	}
	return model.AuthResult{Success: true, Message: msg}
}

func (a *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) model.AuthResult {
	msg, err := a.authAPI.ResetPassword(ctx, email, otp, newPassword)
	if err != nil {
		return failureResult(err)
	}
	return model.AuthResult{Success: true, Message: msg}
}

func (a *AuthService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isAuthenticated
}

func (a *AuthService) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}

func (a *AuthService) Session() *model.AuthSession {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return nil
	}
	session := *a.session
	return &session
}

// storeSession 更新記憶體狀態並持久化
// 持久化失敗只記log 這次登入在程序存活期間仍有效
func (a *AuthService) storeSession(ctx context.Context, token string, user model.UserProfile) {
	session := model.AuthSession{
		Token:   token,
		User:    user,
		SavedAt: time.Now().UTC(),
	}

	a.mu.Lock()
	a.session = &session
	a.isAuthenticated = true
	a.mu.Unlock()

	raw, err := json.Marshal(session)
	if err != nil {
		a.logger.Error().Str("error", err.Error()).Msg("encode session failed")
		return
	}
	if err := a.store.Set(ctx, constants.SessionStorageKey, raw); err != nil {
		a.logger.Error().Str("error", err.Error()).Msg("persist session failed")
	}
}

// failureResult 將錯誤轉為失敗結果
// 帶碼錯誤只取外部訊息 後端回報的內容原樣呈現 不帶錯誤碼前綴
func failureResult(err error) model.AuthResult {
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) && anaErr.ExternalMsg != "" {
		return model.AuthResult{Success: false, Message: anaErr.ExternalMsg}
	}
	return model.AuthResult{Success: false, Message: err.Error()}
}
