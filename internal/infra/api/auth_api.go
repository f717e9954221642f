package api

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
)

// IAuthAPI 使用者認證相關endpoint
// 每個方法對應一次請求 token發行與驗證皆在後端 這裡視token為不透明字串
type IAuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
	VerifyToken(ctx context.Context, token string) error
}

// LoginResult 登入/註冊成功時的回傳
type LoginResult struct {
	Token   string
	User    model.UserProfile
	Message string
}

type loginResponse struct {
	envelope
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type messageResponse struct {
	envelope
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   resp.Token,
		User:    resp.User.toProfile(),
		Message: resp.Message,
	}, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   resp.Token,
		User:    resp.User.toProfile(),
		Message: resp.Message,
	}, nil
}

// AdminLogin 管理者登入 走獨立endpoint 回應格式與一般登入相同
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/admin", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   resp.Token,
		User:    resp.User.toProfile(),
		Message: resp.Message,
	}, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/forgot-password", "", map[string]string{
		"email": email,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/verify-otp", "", map[string]string{
		"email": email,
		"otp":   otp,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/user/reset-password", "", map[string]string{
		"email":    email,
		"otp":      otp,
		"password": newPassword,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyToken 驗證持久化的token是否仍有效 用於啟動時的session還原
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodGet, "/api/user/verify-token", token, nil, &resp)
}
