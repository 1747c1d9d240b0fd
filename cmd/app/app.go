package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sainaman-tech/storefront-backend/internal/app"
	config "github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

//	@title			SaiNaman Pearls Storefront API
//	@version		1.0
//	@description	Бэкенд витрины ювелирного магазина: каталог, корзина, заказы.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
