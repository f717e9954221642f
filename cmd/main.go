package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/appcontext"
	"github.com/RoyceAzure/lab/rentfront/internal/config"
	"github.com/RoyceAzure/lab/rentfront/internal/constants"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	ctx := context.Background()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "products":
		err = runProducts(ctx, app, os.Args[2:])
	case "categories":
		err = runCategories(ctx, app)
	case "login":
		err = runLogin(ctx, app, os.Args[2:])
	case "logout":
		app.AuthService.Logout(ctx)
		fmt.Println("logged out")
	case "whoami":
		err = runWhoami(app)
	case "orders":
		err = runOrders(ctx, app)
	case "stats":
		err = runStats(ctx, app)
	case "export-orders":
		err = runExportOrders(ctx, app, os.Args[2:])
	case "export-products":
		err = runExportProducts(ctx, app, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal(err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Printf("Application shutdown error: %v", err)
	}
}

func printUsage() {
	fmt.Println("usage: rentfront <command> [args]")
	fmt.Println("  products [category] [query] [sort]   列出商品 sort: name|price-low|price-high")
	fmt.Println("  categories                           列出分類與商品數")
	fmt.Println("  login <email> <password>             登入並保存session")
	fmt.Println("  logout                               登出")
	fmt.Println("  whoami                               顯示當前登入者")
	fmt.Println("  orders                               列出我的訂單")
	fmt.Println("  stats                                管理後台統計")
	fmt.Println("  export-orders <file>                 匯出全部訂單CSV")
	fmt.Println("  export-products <file>               匯出商品CSV")
}

func runProducts(ctx context.Context, app *appcontext.ApplicationContext, args []string) error {
	category := constants.CategoryAll
	query := ""
	sortBy := constants.DefaultSortCriterion
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		query = args[1]
	}
	if len(args) > 2 {
		if !constants.IsValidSortCriterionEnum(args[2]) {
			return fmt.Errorf("unknown sort criterion: %s (name|price-low|price-high)", args[2])
		}
		sortBy = constants.SortCriterionEnum(args[2])
	}

	products, usedFallback, err := app.CatalogService.LoadProductsWithFallback(ctx)
	if err != nil {
		return err
	}
	if usedFallback {
		fmt.Println("(offline catalog)")
	}

	products = app.CatalogService.Filter(products, category, query)
	products = app.CatalogService.Sort(products, sortBy)

	for _, p := range products {
		availability := "available"
		if !p.IsAvailable || p.AvailableQuantity <= 0 {
			availability = "unavailable"
		}
		fmt.Printf("%-12s %-35s %-15s ₹%s/day  %s\n", p.ID, p.Name, p.Category, p.PricePerDay.StringFixed(2), availability)
	}
	fmt.Printf("%d products\n", len(products))
	return nil
}

func runCategories(ctx context.Context, app *appcontext.ApplicationContext) error {
	products, _, err := app.CatalogService.LoadProductsWithFallback(ctx)
	if err != nil {
		return err
	}
	for _, c := range app.CatalogService.Categories(products) {
		fmt.Printf("%-20s %-25s %d products\n", c.ID, c.Name, c.ProductCount)
	}
	return nil
}

func runLogin(ctx context.Context, app *appcontext.ApplicationContext, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rentfront login <email> <password>")
	}
	res := app.AuthService.Login(ctx, args[0], args[1])
	fmt.Println(res.Message)
	if !res.Success {
		os.Exit(1)
	}
	return nil
}

func runWhoami(app *appcontext.ApplicationContext) error {
	session := app.AuthService.Session()
	if session == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", session.User.Name, session.User.Email)
	return nil
}

func runOrders(ctx context.Context, app *appcontext.ApplicationContext) error {
	orders, err := app.OrderService.UserOrders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("%-10s %-12s ₹%-12s %s\n", o.ShortID(), o.Status, o.TotalAmount.StringFixed(2), o.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("%d orders\n", len(orders))
	return nil
}

func runStats(ctx context.Context, app *appcontext.ApplicationContext) error {
	stats, err := app.OrderService.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total revenue:    ₹%s\n", stats.TotalRevenue.StringFixed(2))
	fmt.Printf("total orders:     %d\n", stats.TotalOrders)
	fmt.Printf("pending orders:   %d\n", stats.PendingOrders)
	fmt.Printf("completed orders: %d\n", stats.CompletedOrders)
	fmt.Printf("cancelled orders: %d\n", stats.CancelledOrders)
	return nil
}

func runExportOrders(ctx context.Context, app *appcontext.ApplicationContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rentfront export-orders <file>")
	}
	orders, err := app.OrderService.AllOrders(ctx, "")
	if err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := app.ExportService.ExportOrders(f, orders); err != nil {
		return err
	}
	fmt.Printf("exported %d orders to %s\n", len(orders), args[0])
	return nil
}

func runExportProducts(ctx context.Context, app *appcontext.ApplicationContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rentfront export-products <file>")
	}
	products, _, err := app.CatalogService.LoadProductsWithFallback(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := app.ExportService.ExportProducts(f, products); err != nil {
		return err
	}
	fmt.Printf("exported %d products to %s\n", len(products), args[0])
	return nil
}
