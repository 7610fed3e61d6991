package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/repository/postgresql"
	checkclockService "github.com/cmlabs-hris/checkclock-backend-go/internal/service/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	eventRepo := postgresql.NewAttendanceEventRepository(db)
	zoneRepo := postgresql.NewGeofenceZoneRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	checkClockSvc := checkclockService.NewCheckClockService(
		db,
		eventRepo,
		zoneRepo,
		userRepo,
		fileService,
		cfg.Geofence.RadiusMeters,
	)

	checkClockHandler := appHTTP.NewCheckClockHandler(checkClockSvc)

	router := appHTTP.NewRouter(
		JWTService,
		checkClockHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
