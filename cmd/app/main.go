package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"marketplace/cmd"
	s3adapter "marketplace/internal/adapters/out/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the repositories map to conflicts.
	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := cmd.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate record store: %v", err)
	}

	blobs, err := newBlobStore(context.Background(), configs)
	if err != nil {
		log.Fatalf("failed to configure blob store: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, blobs, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:        os.Getenv("HTTP_PORT"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       os.Getenv("DB_SSLMODE"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}
}

func newBlobStore(ctx context.Context, configs cmd.Config) (*s3adapter.BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(configs.S3Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// A custom endpoint means a MinIO-style deployment, which needs
		// path-style bucket addressing.
		if configs.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(configs.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return s3adapter.NewBlobStore(client, configs.S3Bucket, configs.S3PublicBaseURL), nil
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
