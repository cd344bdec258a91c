package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/api"
	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/availability"
	"github.com/makingbetter/serveconnect-backend/internal/booking"
	bookingHttp "github.com/makingbetter/serveconnect-backend/internal/booking/http"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	catalogHttp "github.com/makingbetter/serveconnect-backend/internal/catalog/http"
	"github.com/makingbetter/serveconnect-backend/internal/contact"
	contactHttp "github.com/makingbetter/serveconnect-backend/internal/contact/http"
	"github.com/makingbetter/serveconnect-backend/internal/message"
	messageHttp "github.com/makingbetter/serveconnect-backend/internal/message/http"
	"github.com/makingbetter/serveconnect-backend/internal/notify"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/storage"
	"github.com/makingbetter/serveconnect-backend/internal/review"
	reviewHttp "github.com/makingbetter/serveconnect-backend/internal/review/http"
	"github.com/makingbetter/serveconnect-backend/internal/submission"
	"github.com/makingbetter/serveconnect-backend/internal/user"
	userHttp "github.com/makingbetter/serveconnect-backend/internal/user/http"
	"github.com/makingbetter/serveconnect-backend/internal/wizard"
	wizardHttp "github.com/makingbetter/serveconnect-backend/internal/wizard/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	DemoMode bool
	DBPool   *pgxpool.Pool // nil in demo mode
	Logger   *zap.Logger

	AllowedOrigins []string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	BookingInbox   string

	UploadDir     string
	SubmitTimeout time.Duration
	WizardTTL     time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container. In demo
// mode the repositories are in-memory (seeded with the sample catalog) and
// outbound email is logged instead of sent.
func NewContainer(cfg Config) (*Container, error) {
	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	var mailer notify.EmailSender
	if cfg.DemoMode || cfg.SendGridAPIKey == "" {
		mailer = notify.NewLogSender(cfg.Logger)
	} else {
		mailer = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, cfg.Logger)
	}

	// Repositories
	var (
		userRepo     user.Repository
		serviceRepo  catalog.ServiceRepository
		providerRepo catalog.ProviderRepository
		bookingRepo  booking.Repository
		reviewRepo   review.Repository
		messageRepo  message.Repository
	)
	if cfg.DemoMode {
		userRepo = user.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository()
		// The service repo checks bookings so the once-booked immutability
		// rule holds in demo mode too.
		serviceRepo = catalog.NewMemoryServiceRepositoryWithBookings(
			func(ctx context.Context, serviceID string) (bool, error) {
				_, total, err := bookingRepo.List(ctx, booking.Filter{ServiceID: serviceID, PageSize: 1})
				return total > 0, err
			},
			catalog.SampleServices()...,
		)
		providerRepo = catalog.NewMemoryProviderRepository(catalog.SampleProviders()...)
		reviewRepo = review.NewMemoryRepository()
		messageRepo = message.NewMemoryRepository()
	} else {
		userRepo = user.NewPgxRepository(cfg.DBPool)
		serviceRepo = catalog.NewPgxServiceRepository(cfg.DBPool)
		providerRepo = catalog.NewPgxProviderRepository(cfg.DBPool)
		bookingRepo = booking.NewPgxRepository(cfg.DBPool)
		reviewRepo = review.NewPgxRepository(cfg.DBPool)
		messageRepo = message.NewPgxRepository(cfg.DBPool)
	}

	// User module
	userService := user.NewService(userRepo, passwordHasher, files, cfg.Logger)

	// Catalog module
	catalogService := catalog.New(serviceRepo, providerRepo)

	// Availability
	slotFilter := availability.NewFilter(bookingRepo)

	// Booking module
	bookingService := booking.NewService(bookingRepo, catalogService)

	// Submission pipeline
	pipeline := submission.NewPipeline(
		catalogService, bookingService, mailer, cfg.Logger,
		cfg.BookingInbox, cfg.SubmitTimeout,
	)

	// Wizard sessions
	wizardStore := wizard.NewStore(cfg.WizardTTL)

	// Review module
	reviewService := review.NewService(reviewRepo, bookingService, providerRepo, cfg.Logger)

	// Message module
	messageService := message.NewService(messageRepo, userService)

	// Contact module
	contactService := contact.NewService(mailer, cfg.Logger, cfg.BookingInbox)

	handlers := api.Handlers{
		User:    userHttp.NewHandler(userService, jwtManager, files),
		Catalog: catalogHttp.NewHandler(catalogService),
		Wizard:  wizardHttp.NewHandler(wizardStore, catalogService, pipeline, slotFilter),
		Booking: bookingHttp.NewHandler(bookingService),
		Review:  reviewHttp.NewHandler(reviewService),
		Message: messageHttp.NewHandler(messageService),
		Contact: contactHttp.NewHandler(contactService),
	}

	router := api.NewRouter(handlers, jwtManager, cfg.AllowedOrigins)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
