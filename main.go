package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"rateorder/internal"
	"rateorder/internal/config"
	"rateorder/internal/container"
	"rateorder/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)
	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	// Configure data source
	dataset, err := appContainer.DatasetReader()
	if err != nil {
		log.Fatalf("Failed to configure data file: %v", err)
	}
	if dataset != nil {
		log.Printf("Using data file: %s", appConfig.Data.File)
	}

	server, err := ui.NewServer(appContainer.Service, appContainer.Exporter, dataset)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("Starting rateorder server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(appConfig.Address()))
}
