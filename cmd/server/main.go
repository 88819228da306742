package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tutorlane/platform-api/internal/config"
	"github.com/tutorlane/platform-api/internal/handler"
	"github.com/tutorlane/platform-api/internal/invoice"
	"github.com/tutorlane/platform-api/internal/mailer"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/session"
	"github.com/tutorlane/platform-api/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	_ = godotenv.Load()
	cfg := config.Load(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)

	repos := handler.Repositories{
		Users:         repository.NewUserMongoRepository(ctx, &logger, db),
		Teachers:      repository.NewTeacherMongoRepository(ctx, &logger, db),
		Guardians:     repository.NewGuardianMongoRepository(ctx, &logger, db),
		Posts:         repository.NewPostMongoRepository(ctx, &logger, db),
		Applications:  repository.NewApplicationMongoRepository(ctx, &logger, db),
		Ads:           repository.NewAdMongoRepository(db),
		AdAnalytics:   repository.NewAdAnalyticsMongoRepository(ctx, &logger, db),
		Admins:        repository.NewAdminMongoRepository(ctx, &logger, db),
		Notifications: repository.NewNotificationMongoRepository(ctx, &logger, db),
		Settings:      repository.NewSettingsMongoRepository(ctx, &logger, db),
	}

	resolvers := map[session.Domain]*session.Resolver{
		session.DomainTutorials: session.NewResolver(
			session.DomainTutorials, cfg.TutorialsSessionSecret, cfg.TokenIssuer, cfg.TutorialsSessionCookie),
		session.DomainJobs: session.NewResolver(
			session.DomainJobs, cfg.JobsSessionSecret, cfg.TokenIssuer, cfg.JobsSessionCookie),
		session.DomainAdmin: session.NewResolver(
			session.DomainAdmin, cfg.AdminSessionSecret, cfg.TokenIssuer, cfg.AdminSessionCookie),
	}

	mail := mailer.NewMailer(&logger, cfg.AdminInboxEmail)

	invoices, err := invoice.NewGenerator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse invoice templates")
	}

	usecases := handler.Usecases{
		Auth: usecase.NewAuthUsecase(repos.Users, repos.Admins, resolvers, cfg.SessionTTL),
		Post: usecase.NewPostUsecase(repos.Posts),
		Ad:   usecase.NewAdUsecase(repos.Ads, repos.AdAnalytics, &logger),
		Withdrawal: usecase.NewWithdrawalUsecase(
			repos.Applications, repos.Posts, repos.Teachers, repos.Notifications, mail, &logger),
	}

	server := handler.NewServer(cfg, &logger, repos, usecases, resolvers, invoices)

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
	if err := http.ListenAndServe(cfg.HTTPAddr, server.Router()); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
}
