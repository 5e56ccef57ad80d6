// Command tweet-export uploads a JSON snapshot of all tweets to S3, or lists
// previous snapshots with --list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"tweet-api/internal/config"
	"tweet-api/internal/export"
	"tweet-api/internal/service"
	"tweet-api/internal/storage"
	"tweet-api/internal/store"
)

func main() {
	list := flag.Bool("list", false, "list previous exports instead of creating one")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer repos.Close()

	exporter := export.NewExporter(export.Config{
		Bucket:    cfg.Archive.Bucket,
		KeyPrefix: cfg.Archive.KeyPrefix,
		Logger:    logger,
	}, service.NewTweetService(repos.Tweets), service.NewUserService(repos.Users), storageSvc)

	if *list {
		objects, err := exporter.List(ctx)
		if err != nil {
			logger.Fatalf("list exports: %v", err)
		}
		for _, obj := range objects {
			modified := ""
			if obj.LastModified != nil {
				modified = obj.LastModified.UTC().Format(time.RFC3339)
			}
			fmt.Printf("%s\t%d\t%s\n", obj.Key, obj.Size, modified)
		}
		return
	}

	location, err := exporter.Run(ctx)
	if err != nil {
		logger.Fatalf("export tweets: %v", err)
	}
	fmt.Println(location)
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Archive.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Archive.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Archive.Bucket, cfg.Archive.Region)
	return storage.NewS3Service(client), nil
}
