package router

import (
	"net/http"
	"time"

	"github.com/anonto42/careerpulse/backend/internal/auth"
	"github.com/anonto42/careerpulse/backend/internal/handlers"
	"github.com/anonto42/careerpulse/backend/internal/middleware"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/anonto42/careerpulse/backend/internal/validators"
	"github.com/anonto42/careerpulse/backend/pkg/cache"
	"github.com/anonto42/careerpulse/backend/pkg/config"
	"github.com/anonto42/careerpulse/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// authRateWindow is the window AUTH_RATE_LIMIT is counted over
const authRateWindow = time.Minute

// Repositories groups the stores the services are built on
type Repositories struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
	Follows       repositories.FollowRepository
	Reactions     repositories.ReactionRepository
	Bookmarks     repositories.BookmarkRepository
	Tx            repositories.Transactor
}

// MongoRepositories builds every repository on the given database
func MongoRepositories(client *mongo.Client, db *mongo.Database, transactions bool) Repositories {
	tx := repositories.NewMongoTransactor(client, transactions)
	return Repositories{
		Users:         repositories.NewMongoUserRepository(db),
		Posts:         repositories.NewMongoPostRepository(db),
		Comments:      repositories.NewMongoCommentRepository(db),
		Notifications: repositories.NewMongoNotificationRepository(db),
		Follows:       repositories.NewMongoFollowRepository(db, tx),
		Reactions:     repositories.NewMongoReactionRepository(db),
		Bookmarks:     repositories.NewMongoBookmarkRepository(db),
		Tx:            tx,
	}
}

// Services is the wired application layer
type Services struct {
	Resolver      *services.IdentityResolver
	Auth          *services.AuthService
	Posts         *services.PostService
	Reactions     *services.ReactionService
	Follows       *services.FollowService
	Feed          *services.FeedService
	Comments      *services.CommentService
	Bookmarks     *services.BookmarkService
	Users         *services.UserService
	Notifications *services.NotificationService
}

// NewServices wires the services. fb may be nil, which disables Firebase login.
func NewServices(cfg *config.Config, repos Repositories, rc *cache.Cache, fb *firebase.App, log *zap.Logger, clock services.Clock) *Services {
	tokens := auth.NewTokenService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	var identities services.IdentityVerifier
	if fb != nil {
		identities = fb
	}

	notifier := services.NewNotificationService(repos.Notifications, log, clock)
	return &Services{
		Resolver:      services.NewIdentityResolver(tokens, repos.Users),
		Auth:          services.NewAuthService(repos.Users, hasher, tokens, identities, log, clock),
		Posts:         services.NewPostService(repos.Posts, repos.Comments, repos.Tx, notifier, rc, log, clock),
		Reactions:     services.NewReactionService(repos.Posts, repos.Reactions, notifier),
		Follows:       services.NewFollowService(repos.Users, repos.Follows, notifier),
		Feed:          services.NewFeedService(repos.Posts, rc, cfg.TrendingCacheTTL),
		Comments:      services.NewCommentService(repos.Comments, repos.Posts, notifier, clock),
		Bookmarks:     services.NewBookmarkService(repos.Bookmarks, repos.Posts),
		Users:         services.NewUserService(repos.Users),
		Notifications: notifier,
	}
}

// SetupRoutes configures all application routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, svc *Services, rc *cache.Cache, withFirebase bool, log *zap.Logger) {
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(log)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "CareerPulse API"})
	})

	api := e.Group("/api")
	requireAuth := middleware.JWTAuthMiddleware(svc.Resolver)
	authLimit := middleware.RateLimit(rc.Client(), "auth", cfg.AuthRateLimit, authRateWindow, log)

	handlers.NewAuthHandler(svc.Auth).RegisterAuthRoutes(api, requireAuth, authLimit, withFirebase)
	log.Debug("Auth routes configured", zap.Bool("firebase", withFirebase))

	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(api, requireAuth)
	handlers.NewPostHandler(svc.Posts).RegisterPostRoutes(api, requireAuth)
	handlers.NewReactionHandler(svc.Reactions).RegisterReactionRoutes(api, requireAuth)
	handlers.NewBookmarkHandler(svc.Bookmarks).RegisterBookmarkRoutes(api, requireAuth)
	handlers.NewCommentHandler(svc.Comments).RegisterCommentRoutes(api, requireAuth)
	log.Debug("Post routes configured")

	handlers.NewUserHandler(svc.Users).RegisterUserRoutes(api, requireAuth)
	handlers.NewFollowHandler(svc.Follows).RegisterFollowRoutes(api, requireAuth)
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(api, requireAuth)
	handlers.NewUploadHandler(cfg.MaxUploadBytes).RegisterUploadRoutes(api, requireAuth)

	log.Info("All routes configured", zap.Int("routes", len(e.Routes())))
}
