package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"audimart/internal/caching"
	"audimart/internal/common"
	"audimart/internal/config"
	"audimart/internal/handlers"
	"audimart/internal/jobs/background"
	"audimart/internal/middleware"
	"audimart/internal/models"
	"audimart/internal/repositories"
	"audimart/internal/services"
	"audimart/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	pool, err := database.NewPool(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if cfg.Server.JWTSecret == "" {
		cfg.Server.JWTSecret = random.String(32)
		log.Printf("WARNING: Using generated JWT secret")
	}

	storageSvc, err := services.NewStorageService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background(), cfg.Storage.Bucket); err != nil {
		log.Printf("WARNING: could not ensure storage bucket %q: %v", cfg.Storage.Bucket, err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	inwardRepo := repositories.NewMaterialInwardRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	outRepo := repositories.NewMaterialOutRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	enquiryRepo := repositories.NewEnquiryRepository(pool)
	distributionRepo := repositories.NewDistributionRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	dealerRepo := repositories.NewDealerRepository(pool)
	branchRepo := repositories.NewBranchRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)

	// Services
	availabilitySvc := services.NewAvailabilityService(
		productRepo, inwardRepo, purchaseRepo, outRepo,
		saleRepo, enquiryRepo, distributionRepo, cacheSvc,
	)
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Server.JWTSecret, 3600, 7*24*3600)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	materialSvc := services.NewMaterialService(inwardRepo, purchaseRepo, outRepo, availabilitySvc)
	saleSvc := services.NewSaleService(saleRepo, productRepo, availabilitySvc)
	enquirySvc := services.NewEnquiryService(enquiryRepo, availabilitySvc)
	distributionSvc := services.NewDistributionService(distributionRepo, dealerRepo, productRepo, availabilitySvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, distributionRepo, dealerRepo, saleRepo, productRepo, cfg.Invoice)
	gstReportSvc := services.NewGSTReportService(invoiceRepo)
	dealerSvc := services.NewDealerService(dealerRepo)
	branchSvc := services.NewBranchService(branchRepo)

	// Handlers
	healthHandlers := handlers.NewHealthHandlers()
	authHandlers := handlers.NewAuthHandlers(authSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	materialHandlers := handlers.NewMaterialHandlers(materialSvc)
	saleHandlers := handlers.NewSaleHandlers(saleSvc)
	enquiryHandlers := handlers.NewEnquiryHandlers(enquirySvc)
	distributionHandlers := handlers.NewDistributionHandlers(distributionSvc, availabilitySvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, storageSvc, cfg.Storage.Bucket)
	gstReportHandlers := handlers.NewGSTReportHandlers(gstReportSvc)
	dealerHandlers := handlers.NewDealerHandlers(dealerSvc)
	branchHandlers := handlers.NewBranchHandlers(branchSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(availabilitySvc, invoiceSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// JWT middleware: validate the bearer token and load the caller's
	// identity into the request context for the role checks downstream.
	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.Server.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return
			}
			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			ctx = context.WithValue(ctx, common.BranchKey, claims.Branch)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.Health)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))

	stockRoles := middleware.RequireRole(models.RoleStock)
	frontDeskRoles := middleware.RequireRole(models.RoleFrontDesk, models.RoleAudiologist)

	// Product catalog
	protected.GET("/products", productHandlers.ListProducts)
	protected.GET("/products/search", productHandlers.SearchProducts)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.POST("/products", productHandlers.CreateProduct, stockRoles)
	protected.PUT("/products/:id", productHandlers.UpdateProduct, stockRoles)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct, stockRoles)

	// Stock movements
	protected.GET("/materials/inward", materialHandlers.ListInward)
	protected.GET("/materials/inward/:id", materialHandlers.GetInward)
	protected.POST("/materials/inward", materialHandlers.CreateInward, stockRoles)
	protected.DELETE("/materials/inward/:id", materialHandlers.DeleteInward, stockRoles)

	protected.GET("/purchases", materialHandlers.ListPurchases)
	protected.GET("/purchases/:id", materialHandlers.GetPurchase)
	protected.POST("/purchases", materialHandlers.CreatePurchase, stockRoles)
	protected.DELETE("/purchases/:id", materialHandlers.DeletePurchase, stockRoles)

	protected.GET("/materials/out", materialHandlers.ListOut)
	protected.GET("/materials/out/:id", materialHandlers.GetOut)
	protected.POST("/materials/out", materialHandlers.CreateOut, stockRoles)
	protected.PATCH("/materials/out/:id/status", materialHandlers.UpdateOutStatus, stockRoles)
	protected.DELETE("/materials/out/:id", materialHandlers.DeleteOut, stockRoles)

	// Available stock view
	protected.GET("/stock/available", distributionHandlers.GetAvailableStock)

	// Sales and enquiries
	protected.GET("/sales", saleHandlers.ListSales)
	protected.GET("/sales/:id", saleHandlers.GetSale)
	protected.POST("/sales", saleHandlers.CreateSale, frontDeskRoles)
	protected.DELETE("/sales/:id", saleHandlers.DeleteSale, frontDeskRoles)

	protected.GET("/enquiries", enquiryHandlers.ListEnquiries)
	protected.GET("/enquiries/:id", enquiryHandlers.GetEnquiry)
	protected.POST("/enquiries", enquiryHandlers.CreateEnquiry, frontDeskRoles)
	protected.PUT("/enquiries/:id", enquiryHandlers.UpdateEnquiry, frontDeskRoles)
	protected.POST("/enquiries/:id/visits", enquiryHandlers.AddVisit, frontDeskRoles)
	protected.DELETE("/enquiries/:id", enquiryHandlers.DeleteEnquiry, frontDeskRoles)

	// Distributions
	protected.GET("/distributions", distributionHandlers.ListDistributions)
	protected.GET("/distributions/:id", distributionHandlers.GetDistribution)
	protected.POST("/distributions", distributionHandlers.CreateDistribution, stockRoles)
	protected.DELETE("/distributions/:id", distributionHandlers.DeleteDistribution, stockRoles)

	// Invoices and GST reports
	protected.GET("/invoices", invoiceHandlers.ListInvoices)
	protected.GET("/invoices/:id", invoiceHandlers.GetInvoice)
	protected.GET("/invoices/:id/pdf", invoiceHandlers.DownloadPDF)
	protected.POST("/invoices", invoiceHandlers.CreateInvoice, frontDeskRoles)
	protected.POST("/invoices/:id/pay", invoiceHandlers.MarkPaid, frontDeskRoles)
	protected.DELETE("/invoices/:id", invoiceHandlers.DeleteInvoice, middleware.RequireRole())

	protected.GET("/reports/gst", gstReportHandlers.GetSummary)
	protected.GET("/reports/gst/export", gstReportHandlers.DownloadXLSX)

	// Directory
	protected.GET("/dealers", dealerHandlers.ListDealers)
	protected.GET("/dealers/:id", dealerHandlers.GetDealer)
	protected.POST("/dealers", dealerHandlers.CreateDealer, stockRoles)
	protected.PUT("/dealers/:id", dealerHandlers.UpdateDealer, stockRoles)
	protected.DELETE("/dealers/:id", dealerHandlers.DeleteDealer, stockRoles)

	protected.GET("/branches", branchHandlers.ListBranches)
	protected.GET("/branches/:id", branchHandlers.GetBranch)
	protected.POST("/branches", branchHandlers.CreateBranch, middleware.RequireRole())
	protected.PUT("/branches/:id", branchHandlers.UpdateBranch, middleware.RequireRole())
	protected.DELETE("/branches/:id", branchHandlers.DeleteBranch, middleware.RequireRole())

	log.Printf("audimart server v%s starting on port %d", version, cfg.Server.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}
