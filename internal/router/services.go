package router

import (
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/internal/services"
	"github.com/anonto42/faithconnect/backend/internal/storage"
	"github.com/anonto42/faithconnect/backend/internal/tokens"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"gorm.io/gorm"
)

// Services is every service the HTTP layer and the scheduler depend on.
type Services struct {
	Auth          *services.AuthService
	Follows       *services.FollowService
	Leaders       *services.LeaderService
	Posts         *services.PostService
	Engagement    *services.EngagementService
	Comments      *services.CommentService
	Chats         *services.ChatService
	Questions     *services.QuestionService
	Notifications *services.NotificationService
	Feed          *services.FeedService
	Media         *services.MediaService

	// UploadDir is served under /uploads when media lands on local disk.
	UploadDir string
}

// Options carries the optional collaborators that main wires from config.
type Options struct {
	// Mirrors receive a copy of every notification event after it is stored.
	Mirrors  []events.Sink
	Verifier services.IDTokenVerifier
	Store    storage.Store
	Now      services.Clock
}

// NewServices builds repositories over pg and the services on top of them.
func NewServices(cfg *config.Config, log *slog.Logger, pg *gorm.DB, opts Options) *Services {
	userRepo := repositories.NewPostgresUserRepository(pg)
	followRepo := repositories.NewPostgresFollowRepository(pg)
	postRepo := repositories.NewPostgresPostRepository(pg)
	likeRepo := repositories.NewPostgresLikeRepository(pg)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pg)
	commentRepo := repositories.NewPostgresCommentRepository(pg)
	chatRepo := repositories.NewPostgresChatRepository(pg)
	questionRepo := repositories.NewPostgresQuestionRepository(pg)
	notificationRepo := repositories.NewPostgresNotificationRepository(pg)

	notifications := services.NewNotificationService(notificationRepo, opts.Now)
	sink := &events.Fanout{Primary: notifications, Mirrors: opts.Mirrors, Log: log}
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	svcs := &Services{
		Auth:          services.NewAuthService(userRepo, issuer, opts.Verifier, log),
		Follows:       services.NewFollowService(followRepo, userRepo, postRepo, sink, log, opts.Now),
		Leaders:       services.NewLeaderService(userRepo, followRepo, postRepo),
		Posts:         services.NewPostService(postRepo, followRepo, sink, log, opts.Now),
		Engagement:    services.NewEngagementService(postRepo, likeRepo, savedPostRepo, commentRepo),
		Comments:      services.NewCommentService(postRepo, commentRepo, opts.Now),
		Chats:         services.NewChatService(chatRepo, followRepo, userRepo, sink, log, opts.Now, cfg.ChatOrdering),
		Questions:     services.NewQuestionService(questionRepo, followRepo, userRepo, sink, log, opts.Now),
		Notifications: notifications,
		Feed:          services.NewFeedService(postRepo, likeRepo, savedPostRepo, commentRepo, opts.Now),
		Media:         services.NewMediaService(opts.Store),
	}
	if local, ok := opts.Store.(*storage.LocalStore); ok {
		svcs.UploadDir = local.Dir
	}
	return svcs
}
