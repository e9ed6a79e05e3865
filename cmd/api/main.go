package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無ければ無いで良い（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Session{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := usecase.NewJWTIssuer(cfg.JWTSecret)

	//Validator生成
	signupValidator := validator.NewSignupValidator(userRepo)
	checkoutValidator := validator.NewCheckoutValidator()
	productValidator := validator.NewProductValidator(categoryRepo)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(sessionRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, checkoutValidator, logger)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo, categoryRepo, orderRepo, productValidator)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, logger)
	authUC := usecase.NewAuthUsecase(userRepo, signupValidator, hasher, verifier, issuer)

	//Handler生成
	handlers := server.Handlers{
		Product:  handler.NewProductHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC, cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Auth:     handler.NewAuthHandler(authUC),
		Admin:    handler.NewAdminHandler(adminProductUC, adminOrderUC),
	}

	//Server起動
	e := server.New(logger)
	server.RegisterRoutes(e, cfg, handlers, sessionRepo, userRepo)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
