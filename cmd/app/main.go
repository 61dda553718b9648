package main

import (
	"backoffice/cmd"
	inhttp "backoffice/internal/adapters/in/http"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Error assembling application: %v", err)
	}

	unsubscribe := app.RegisterAuditSubscriber()
	defer unsubscribe()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		OrdersAPIBaseURL:      goDotEnvVariable("ORDERS_API_BASE_URL"),
		OrdersAPIToken:        goDotEnvVariable("ORDERS_API_TOKEN"),
		NCMAPIBaseURL:         goDotEnvVariable("NCM_API_BASE_URL"),
		CacheTimezone:         goDotEnvVariable("CACHE_TIMEZONE"),
		OrderPollSchedule:     goDotEnvVariable("ORDER_POLL_SCHEDULE"),
		BranchRefreshSchedule: goDotEnvVariable("BRANCH_REFRESH_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	validator, err := inhttp.NewContractValidator()
	if err != nil {
		log.Fatalf("Error loading API contract: %v", err)
	}

	server := app.CreateServer()
	server.RegisterRoutes(e, validator)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
