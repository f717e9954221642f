package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/util"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client 對後端REST API的薄封裝
// 一個方法只會發出一次請求 不重試 不快取 不做請求去重
// 失敗原樣回傳給呼叫端 由上層決定呈現方式
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(logger *zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		panic("api client initialization failed: baseURL cannot be empty")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		temp := zerolog.New(os.Stdout).With().Timestamp().Logger()
		c.logger = &temp
	}

	return c
}

// envelope 後端回應的共用外層 {success, message}
// 個別回應的payload定義在dto.go
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool {
	return e.Success
}

func (e envelope) message() string {
	return e.Message
}

type enveloped interface {
	ok() bool
	message() string
}

// doJSON 發送單次JSON請求並解碼回應
//
// 錯誤:
//   - er.InternalErrorCode 500: 傳輸層失敗(連線被拒/逾時)或回應解碼失敗
//   - 其餘: 依HTTP status與回應內message轉為對應錯誤碼 message原樣保留
func (c *Client) doJSON(ctx context.Context, method, path string, token string, body any, out enveloped) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return er.New(er.InternalErrorCode, fmt.Sprintf("encode request: %v", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, token, out)
}

// doMultipart 發送單次multipart/form-data請求 用於帶圖片的商品新增與更新
func (c *Client) doMultipart(ctx context.Context, method, path string, token string, fields map[string]string, filePaths []string, out enveloped) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return er.New(er.InternalErrorCode, fmt.Sprintf("write form field: %v", err))
		}
	}

	for _, filePath := range filePaths {
		if err := appendFilePart(writer, filePath); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
	}

	if err := writer.Close(); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("close multipart writer: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, token, out)
}

func appendFilePart(writer *multipart.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open image %s: %v", filePath, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("images", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("create form file: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy image %s: %v", filePath, err)
	}
	return nil
}

// send 附帶token與request id後送出 並記錄單次請求log
func (c *Client) send(req *http.Request, token string, out enveloped) error {
	if token != "" {
		req.Header.Set(constants.TokenHeaderKey, token)
	}

	requestID := util.GetRequestIDFromContext(req.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set(constants.RequestIDHeaderKey, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("error", err.Error()).
			Msg("request failed")
		return er.New(er.InternalErrorCode, fmt.Sprintf("network error: %v", err))
	}
	defer resp.Body.Close()

	c.logger.Info().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("request completed")

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("decode response: %v", err))
	}

	if !out.ok() {
		return businessError(resp.StatusCode, out.message())
	}

	return nil
}

// businessError 將後端回報的失敗轉為帶碼錯誤 message原樣保留供呈現
func businessError(statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return er.New(er.UnauthenticatedCode, message)
	case http.StatusForbidden:
		return er.New(er.UnauthorizedCode, message)
	case http.StatusNotFound:
		return er.New(er.NotFoundCode, message)
	default:
		return er.New(er.InvalidOperationCode, message)
	}
}
