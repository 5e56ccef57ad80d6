// Command tweet-useradd provisions a user and prints the api key it will
// authenticate with.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"tweet-api/internal/config"
	"tweet-api/internal/service"
	"tweet-api/internal/store"
)

func main() {
	username := flag.StringP("username", "u", "", "username (required)")
	email := flag.StringP("email", "e", "", "email address (required)")
	apiKey := flag.String("api-key", "", "api key to assign; generated when empty")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer repos.Close()

	user, err := service.NewUserService(repos.Users).Register(ctx, *username, *email, *apiKey)
	if err != nil {
		logger.Fatalf("register user: %v", err)
	}

	logger.Infof("created user %d (%s)", user.ID, user.Username)
	fmt.Println(user.APIKey)
}
