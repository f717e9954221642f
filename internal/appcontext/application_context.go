package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/config"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/api"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/storage"
	"github.com/RoyceAzure/lab/rentfront/internal/service"
	"github.com/RoyceAzure/lab/rentfront/internal/util"
	"github.com/rs/zerolog"
)

// ApplicationContext 組裝全部元件 啟動時依序初始化
type ApplicationContext struct {
	Cf              *config.Config
	Logger          *zerolog.Logger
	ApiClient       *api.Client
	SessionStore    storage.SessionStore
	CatalogFallback *config.CatalogConfig
	CartService     service.ICartService
	CatalogService  service.ICatalogService
	AuthService     service.IAuthService
	OrderService    service.IOrderService
	ExportService   service.IExportService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	v := reflect.ValueOf(*cf)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldName := t.Field(i).Name
		fieldValue := v.Field(i).Interface()
		fmt.Printf("  \"%s\": \"%v\",\n", fieldName, fieldValue)
	}
	err := app.Init()

	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpLogger()
	if err != nil {
		return err
	}

	err = app.setUpApiClient()
	if err != nil {
		return err
	}

	err = app.setUpSessionStore()
	if err != nil {
		return err
	}

	err = app.setUpCatalogFallback()
	if err != nil {
		return err
	}

	err = app.setUpCartService()
	if err != nil {
		return err
	}

	err = app.setUpCatalogService()
	if err != nil {
		return err
	}

	err = app.setUpAuthService()
	if err != nil {
		return err
	}

	err = app.setUpOrderService()
	if err != nil {
		return err
	}

	err = app.setUpExportService()
	if err != nil {
		return err
	}

	//啟動時嘗試還原上次的登入狀態
	log.Printf("restoring persisted session...")
	app.AuthService.RestoreOnStartup(context.TODO())
	log.Printf("restoring persisted session finished")

	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	log.Printf("Start setup logger")
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("moduler", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger
	log.Printf("Finish setup logger")
	return nil
}

func (app *ApplicationContext) setUpApiClient() error {
	log.Printf("Start setup api client")

	timeout := time.Second * 30
	if app.Cf.HttpTimeoutSeconds != "" {
		seconds, err := strconv.Atoi(app.Cf.HttpTimeoutSeconds)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %w", err)
		}
		timeout = time.Second * time.Duration(seconds)
	}

	app.ApiClient = api.NewClient(app.Cf.ApiBaseUrl,
		api.WithTimeout(timeout),
		api.WithLogger(app.Logger))
	log.Printf("Finish setup api client")
	return nil
}

// setUpSessionStore 有設定REDIS_ADDR時用redis 否則落到本機檔案
func (app *ApplicationContext) setUpSessionStore() error {
	log.Printf("Start setup session store")

	if app.Cf.RedisAddr != "" {
		store, err := storage.NewRedisStore(app.Cf.RedisAddr, app.Cf.RedisPassword)
		if err != nil {
			return err
		}
		app.SessionStore = store
		log.Printf("Finish setup session store (redis)")
		return nil
	}

	path := app.Cf.SessionStorePath
	if path == "" {
		path = filepath.Join(util.GetProjectRoot(app.Cf.ModulerName), "session.json")
	}
	app.SessionStore = storage.NewFileStore(path)
	log.Printf("Finish setup session store (file)")
	return nil
}

// setUpCatalogFallback 靜態目錄載入失敗不中斷啟動 僅少了離線備援
func (app *ApplicationContext) setUpCatalogFallback() error {
	log.Printf("Start setup catalog fallback")

	path := app.Cf.CatalogFallbackPath
	if path == "" {
		path = filepath.Join(util.GetProjectRoot(app.Cf.ModulerName), "docs", "catalog.yaml")
	}

	fallback, err := config.LoadCatalogConfig(path)
	if err != nil {
		log.Printf("catalog fallback unavailable: %v", err)
		app.CatalogFallback = nil
	} else {
		app.CatalogFallback = fallback
	}

	log.Printf("Finish setup catalog fallback")
	return nil
}

func (app *ApplicationContext) setUpCartService() error {
	log.Printf("Start setup cart service")
	app.CartService = service.NewCartService()
	log.Printf("Finish setup cart service")
	return nil
}

func (app *ApplicationContext) setUpCatalogService() error {
	log.Printf("Start setup catalog service")
	app.CatalogService = service.NewCatalogService(app.ApiClient, app.CatalogFallback)
	log.Printf("Finish setup catalog service")
	return nil
}

func (app *ApplicationContext) setUpAuthService() error {
	log.Printf("Start setup auth service")
	app.AuthService = service.NewAuthService(app.ApiClient, app.SessionStore, app.Logger)
	log.Printf("Finish setup auth service")
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	log.Printf("Start setup order service")
	app.OrderService = service.NewOrderService(app.ApiClient, app.CartService, app.AuthService)
	log.Printf("Finish setup order service")
	return nil
}

func (app *ApplicationContext) setUpExportService() error {
	log.Printf("Start setup export service")
	app.ExportService = service.NewExportService()
	log.Printf("Finish setup export service")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		//等背景token驗證收尾 避免還在寫session時中斷
		app.AuthService.WaitVerified()

		if closer, ok := app.SessionStore.(interface{ Close() error }); ok {
			log.Printf("Closing session store...")
			if err := closer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("session store shutdown error: %v", err)
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
