package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/api"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/storage"
	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// stubAuthAPI 可設定回應的假後端
type stubAuthAPI struct {
	loginResult    *api.LoginResult
	loginErr       error
	verifyTokenErr error
	message        string
	messageErr     error
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthAPI) Register(ctx context.Context, name, email, password string) (*api.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthAPI) AdminLogin(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthAPI) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.message, s.messageErr
}

func (s *stubAuthAPI) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return s.message, s.messageErr
}

func (s *stubAuthAPI) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	return s.message, s.messageErr
}

func (s *stubAuthAPI) VerifyToken(ctx context.Context, token string) error {
	return s.verifyTokenErr
}

type AuthServiceTestSuite struct {
	suite.Suite
	stub  *stubAuthAPI
	store storage.SessionStore
	auth  IAuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.stub = &stubAuthAPI{}
	s.store = storage.NewFileStore(filepath.Join(s.T().TempDir(), "session.json"))
	s.auth = NewAuthService(s.stub, s.store, nil)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLoginSuccessStoresSession() {
	s.stub.loginResult = &api.LoginResult{
		Token: "token-abc",
		User:  model.UserProfile{ID: "u1", Name: "Royce", Email: "royce@example.com"},
	}

	res := s.auth.Login(context.Background(), "royce@example.com", "secret")
	require.True(s.T(), res.Success)
	require.True(s.T(), s.auth.IsAuthenticated())
	require.Equal(s.T(), "token-abc", s.auth.Token())

	//持久化應為單一canonical紀錄
	raw, err := s.store.Get(context.Background(), constants.SessionStorageKey)
	require.NoError(s.T(), err)

	var session model.AuthSession
	require.NoError(s.T(), json.Unmarshal(raw, &session))
	require.Equal(s.T(), "token-abc", session.Token)
	require.Equal(s.T(), "Royce", session.User.Name)
	require.False(s.T(), session.SavedAt.IsZero())
}

func (s *AuthServiceTestSuite) TestLoginFailureLeavesStateUntouched() {
	s.stub.loginErr = er.New(er.UnauthenticatedCode, "Invalid password")

	res := s.auth.Login(context.Background(), "royce@example.com", "wrong")
	require.False(s.T(), res.Success)
	require.Equal(s.T(), "Invalid password", res.Message, "後端訊息應原樣呈現 不帶錯誤碼前綴")
	require.False(s.T(), s.auth.IsAuthenticated())
	require.Empty(s.T(), s.auth.Token())

	_, err := s.store.Get(context.Background(), constants.SessionStorageKey)
	require.ErrorIs(s.T(), err, storage.ErrKeyNotFound, "失敗的登入不應寫入持久層")
}

func (s *AuthServiceTestSuite) TestRegisterFillsProfileFromInput() {
	s.stub.loginResult = &api.LoginResult{
		Token: "token-new",
		User:  model.UserProfile{ID: "u2"},
	}

	res := s.auth.Register(context.Background(), "New User", "new@example.com", "secret")
	require.True(s.T(), res.Success)

	session := s.auth.Session()
	require.NotNil(s.T(), session)
	require.Equal(s.T(), "New User", session.User.Name, "後端未帶name時以輸入值補上")
	require.Equal(s.T(), "new@example.com", session.User.Email)
}

func (s *AuthServiceTestSuite) TestLogoutClearsEverything() {
	s.stub.loginResult = &api.LoginResult{Token: "token-abc"}
	s.auth.Login(context.Background(), "a@b.c", "secret")

	s.auth.Logout(context.Background())
	require.False(s.T(), s.auth.IsAuthenticated())
	require.Nil(s.T(), s.auth.Session())

	_, err := s.store.Get(context.Background(), constants.SessionStorageKey)
	require.ErrorIs(s.T(), err, storage.ErrKeyNotFound)
}

func (s *AuthServiceTestSuite) TestRestoreOnStartupVerifiedOK() {
	s.persistSession("token-old")

	s.auth.RestoreOnStartup(context.Background())
	require.True(s.T(), s.auth.IsAuthenticated(), "還原後立即視為已登入")

	s.auth.WaitVerified()
	require.True(s.T(), s.auth.IsAuthenticated())
	require.Equal(s.T(), "token-old", s.auth.Token())
}

func (s *AuthServiceTestSuite) TestRestoreOnStartupTokenRejected() {
	s.persistSession("token-expired")
	s.stub.verifyTokenErr = er.New(er.UnauthenticatedCode, "Invalid token")

	s.auth.RestoreOnStartup(context.Background())
	s.auth.WaitVerified()

	require.False(s.T(), s.auth.IsAuthenticated(), "後端拒絕token時應清回未登入")
	_, err := s.store.Get(context.Background(), constants.SessionStorageKey)
	require.ErrorIs(s.T(), err, storage.ErrKeyNotFound)
}

func (s *AuthServiceTestSuite) TestRestoreOnStartupBackendUnreachableKeepsSession() {
	s.persistSession("token-offline")
	s.stub.verifyTokenErr = er.New(er.InternalErrorCode, "connection refused")

	s.auth.RestoreOnStartup(context.Background())
	s.auth.WaitVerified()

	require.True(s.T(), s.auth.IsAuthenticated(), "離線時保留樂觀狀態")
}

func (s *AuthServiceTestSuite) TestRestoreOnStartupNothingPersisted() {
	s.auth.RestoreOnStartup(context.Background())
	s.auth.WaitVerified()
	require.False(s.T(), s.auth.IsAuthenticated())
}

func (s *AuthServiceTestSuite) TestRestoreOnStartupCorruptedRecord() {
	require.NoError(s.T(), s.store.Set(context.Background(), constants.SessionStorageKey, []byte(`"not a session"`)))

	s.auth.RestoreOnStartup(context.Background())
	s.auth.WaitVerified()

	require.False(s.T(), s.auth.IsAuthenticated())
	_, err := s.store.Get(context.Background(), constants.SessionStorageKey)
	require.ErrorIs(s.T(), err, storage.ErrKeyNotFound, "壞掉的紀錄應被清除")
}

func (s *AuthServiceTestSuite) TestForgotPasswordFailureMessageVerbatim() {
	s.stub.messageErr = er.New(er.UserNotFoundCode, "User not found")

	res := s.auth.ForgotPassword(context.Background(), "ghost@example.com")
	require.False(s.T(), res.Success)
	require.Equal(s.T(), "User not found", res.Message)
}

func (s *AuthServiceTestSuite) TestForgotPasswordPassesMessageThrough() {
	s.stub.message = "OTP sent to your email"

	res := s.auth.ForgotPassword(context.Background(), "royce@example.com")
	require.True(s.T(), res.Success)
	require.Equal(s.T(), "OTP sent to your email", res.Message)
	require.False(s.T(), s.auth.IsAuthenticated(), "忘記密碼流程不改動登入狀態")
}

func (s *AuthServiceTestSuite) persistSession(token string) {
	session := model.AuthSession{
		Token:   token,
		User:    model.UserProfile{ID: "u1", Name: "Royce", Email: "royce@example.com"},
		SavedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(session)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.store.Set(context.Background(), constants.SessionStorageKey, raw))
}
