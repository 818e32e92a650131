package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/jwtauth/v5"

	"github.com/clockwise-org/planning-service-go/internal/config"
	appHTTP "github.com/clockwise-org/planning-service-go/internal/handler/http"
	"github.com/clockwise-org/planning-service-go/internal/messaging/sqs"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
	"github.com/clockwise-org/planning-service-go/internal/repository/postgresql"
	availabilityService "github.com/clockwise-org/planning-service-go/internal/service/availability"
	conflictService "github.com/clockwise-org/planning-service-go/internal/service/conflict"
	exchangeService "github.com/clockwise-org/planning-service-go/internal/service/exchange"
	"github.com/clockwise-org/planning-service-go/internal/service/notification"
	scheduleService "github.com/clockwise-org/planning-service-go/internal/service/schedule"
	shiftService "github.com/clockwise-org/planning-service-go/internal/service/shift"
	worksessionService "github.com/clockwise-org/planning-service-go/internal/service/worksession"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "planning-service"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Messaging.Region))
	if err != nil {
		fmt.Println("Error loading AWS config:", err)
		return
	}
	sqsClient := awssqs.NewFromConfig(awsCfg)

	scheduleRepo := postgresql.NewScheduleRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	workSessionRepo := postgresql.NewWorkSessionRepository(db)
	sessionNoteRepo := postgresql.NewSessionNoteRepository(db)
	availabilityRepo := postgresql.NewAvailabilityRepository(db)

	publisher := sqs.NewPublisher(sqsClient, cfg.Messaging, logger)
	pending := notification.NewPendingNotifications()
	coordinator := notification.NewCoordinator(pending, publisher, publisher, logger)

	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, shiftRepo, coordinator, logger)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, scheduleRepo, workSessionRepo, sessionNoteRepo, publisher, logger)
	workSessionSvc := worksessionService.NewWorkSessionService(workSessionRepo, sessionNoteRepo, shiftRepo)
	availabilitySvc := availabilityService.NewAvailabilityService(availabilityRepo)
	conflictChecker := conflictService.NewConflictChecker(shiftRepo, logger)
	exchangeHandler := exchangeService.NewExchangeHandler(shiftSvc, publisher, logger)

	consumer := sqs.NewConsumer(sqsClient, cfg.Messaging, exchangeHandler, shiftSvc, coordinator, logger)
	go consumer.Start(ctx)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	workSessionHandler := appHTTP.NewWorkSessionHandler(workSessionSvc)
	availabilityHandler := appHTTP.NewAvailabilityHandler(availabilitySvc)
	conflictHandler := appHTTP.NewConflictHandler(conflictChecker)

	router := appHTTP.NewRouter(
		tokenAuth,
		scheduleHandler,
		shiftHandler,
		workSessionHandler,
		availabilityHandler,
		conflictHandler,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}
}
