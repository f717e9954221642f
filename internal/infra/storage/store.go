package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("storage key not found")

// SessionStore 前端持久化的key/value儲存
// 瀏覽器localStorage的對應物 存session等少量字串資料
type SessionStore interface {
	// Get 取值 key不存在回傳ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete 刪除單一key key不存在不視為錯誤
	Delete(ctx context.Context, key string) error
	// Clear 清空所有key
	Clear(ctx context.Context) error
}
