package repositories

import (
	"context"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines the interface for chat and message operations
type ChatRepository interface {
	GetOrCreateChat(ctx context.Context, worshiperID, leaderID uint) (*models.Chat, error)
	GetChatByID(ctx context.Context, id uint) (*models.Chat, error)
	GetChatWithMessages(ctx context.Context, id uint) (*models.Chat, error)
	GetLeaderChats(ctx context.Context, leaderID uint) ([]models.Chat, error)
	GetWorshiperChats(ctx context.Context, worshiperID uint) ([]models.Chat, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	MarkMessagesRead(ctx context.Context, chatID, readerID uint, at time.Time) (int64, error)
}

// PostgresChatRepository implements ChatRepository for PostgreSQL
type PostgresChatRepository struct {
	db *gorm.DB
}

// NewPostgresChatRepository creates a new PostgresChatRepository
func NewPostgresChatRepository(db *gorm.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

// GetOrCreateChat inserts the pair with ON CONFLICT DO NOTHING and then reads
// the row back, so concurrent first messages converge on one chat.
func (r *PostgresChatRepository) GetOrCreateChat(ctx context.Context, worshiperID, leaderID uint) (*models.Chat, error) {
	db := r.db.WithContext(ctx)

	chat := models.Chat{WorshiperID: worshiperID, LeaderID: leaderID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "worshiper_id"}, {Name: "leader_id"}},
		DoNothing: true,
	}).Create(&chat).Error
	if err != nil {
		return nil, err
	}

	var existing models.Chat
	err = db.Where("worshiper_id = ? AND leader_id = ?", worshiperID, leaderID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *PostgresChatRepository) GetChatByID(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("messages.created_at ASC").Order("messages.id ASC")
}

// GetChatWithMessages loads participants and messages, oldest message first.
func (r *PostgresChatRepository) GetChatWithMessages(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Preload("Worshiper").
		Preload("Leader").
		Preload("Messages", orderedMessages).
		Preload("Messages.Sender").
		First(&chat, id).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *PostgresChatRepository) listChats(ctx context.Context, column string, userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.WithContext(ctx).
		Preload("Worshiper").
		Preload("Leader").
		Preload("Messages", orderedMessages).
		Preload("Messages.Sender").
		Where(column+" = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&chats).Error
	return chats, err
}

func (r *PostgresChatRepository) GetLeaderChats(ctx context.Context, leaderID uint) ([]models.Chat, error) {
	return r.listChats(ctx, "leader_id", leaderID)
}

func (r *PostgresChatRepository) GetWorshiperChats(ctx context.Context, worshiperID uint) ([]models.Chat, error) {
	return r.listChats(ctx, "worshiper_id", worshiperID)
}

func (r *PostgresChatRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// MarkMessagesRead flips unread messages the reader did not send.
func (r *PostgresChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = ?", chatID, readerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}
