package services

import (
	"testing"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/anonto42/faithconnect/backend/internal/tokens"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	db     *gorm.DB
	clock  *testClock
	mirror *events.Recorder

	users         repositories.UserRepository
	notifications *NotificationService
	auth          *AuthService
	follows       *FollowService
	leaders       *LeaderService
	posts         *PostService
	engagement    *EngagementService
	comments      *CommentService
	chats         *ChatService
	questions     *QuestionService
	feed          *FeedService
}

func newEnv(t *testing.T) *env {
	return newEnvWithOrdering(t, config.ChatOrderCreated)
}

func newEnvWithOrdering(t *testing.T, ordering string) *env {
	t.Helper()
	db := testutil.NewDB(t)
	log := logging.Discard()
	clock := &testClock{t: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	saveRepo := repositories.NewPostgresSavedPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	chatRepo := repositories.NewPostgresChatRepository(db)
	questionRepo := repositories.NewPostgresQuestionRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	notifications := NewNotificationService(notificationRepo, clock.Now)
	mirror := &events.Recorder{}
	sink := &events.Fanout{Primary: notifications, Mirrors: []events.Sink{mirror}, Log: log}

	return &env{
		db:            db,
		clock:         clock,
		mirror:        mirror,
		users:         userRepo,
		notifications: notifications,
		auth:          NewAuthService(userRepo, tokens.NewIssuer("test-secret", time.Hour), nil, log),
		follows:       NewFollowService(followRepo, userRepo, postRepo, sink, log, clock.Now),
		leaders:       NewLeaderService(userRepo, followRepo, postRepo),
		posts:         NewPostService(postRepo, followRepo, sink, log, clock.Now),
		engagement:    NewEngagementService(postRepo, likeRepo, saveRepo, commentRepo),
		comments:      NewCommentService(postRepo, commentRepo, clock.Now),
		chats:         NewChatService(chatRepo, followRepo, userRepo, sink, log, clock.Now, ordering),
		questions:     NewQuestionService(questionRepo, followRepo, userRepo, sink, log, clock.Now),
		feed:          NewFeedService(postRepo, likeRepo, saveRepo, commentRepo, clock.Now),
	}
}

func (e *env) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func (e *env) notificationsFor(t *testing.T, userID uint, typ string) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, e.db.Where("user_id = ? AND type = ?", userID, typ).Order("id").Find(&list).Error)
	return list
}
