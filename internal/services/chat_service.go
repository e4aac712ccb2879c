package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/events"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"gorm.io/gorm"
)

type ChatService struct {
	chats    repositories.ChatRepository
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	pub      publisher
	now      Clock
	ordering string
}

// NewChatService builds the messaging service. ordering is
// config.ChatOrderCreated or config.ChatOrderRecent.
func NewChatService(
	chats repositories.ChatRepository,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	sink events.Sink,
	log *slog.Logger,
	now Clock,
	ordering string,
) *ChatService {
	if now == nil {
		now = SystemClock
	}
	return &ChatService{chats: chats, follows: follows, users: users, pub: publisher{sink: sink, log: log}, now: now, ordering: ordering}
}

// SendFirstMessage opens (or reuses) the chat with a followed leader and
// appends the message. Without a follow edge no chat row is created.
func (s *ChatService) SendFirstMessage(ctx context.Context, worshiper *models.User, leaderID uint, raw string) (*models.MessageResponse, error) {
	if err := requireRole(worshiper, models.RoleWorshiper, "Only worshipers can initiate conversations with leaders"); err != nil {
		return nil, err
	}
	text, err := cleanText(raw, "content_text", 1, 2000)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetLeaderByID(ctx, leaderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Leader with ID %d not found", leaderID))
		}
		return nil, apperr.FromStore(err, "Leader not found")
	}
	following, err := s.follows.IsFollowing(ctx, worshiper.ID, leaderID)
	if err != nil {
		return nil, apperr.FromStore(err, "Leader not found")
	}
	if !following {
		return nil, apperr.Forbidden("You must follow this leader to send messages")
	}

	chat, err := s.chats.GetOrCreateChat(ctx, worshiper.ID, leaderID)
	if err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	return s.send(ctx, chat, worshiper, text)
}

// SendMessage appends to an existing chat the caller takes part in.
func (s *ChatService) SendMessage(ctx context.Context, sender *models.User, chatID uint, raw string) (*models.MessageResponse, error) {
	text, err := cleanText(raw, "content_text", 1, 2000)
	if err != nil {
		return nil, err
	}
	chat, err := s.participantChat(ctx, sender, chatID)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, chat, sender, text)
}

func (s *ChatService) send(ctx context.Context, chat *models.Chat, sender *models.User, text string) (*models.MessageResponse, error) {
	msg := &models.Message{
		ChatID:      chat.ID,
		SenderID:    sender.ID,
		SenderRole:  sender.Role,
		ContentText: text,
		CreatedAt:   s.now(),
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	msg.Sender = *sender

	err := s.pub.emit(ctx, events.Event{
		Type:          models.NotificationNewMessage,
		RecipientID:   chat.OtherParticipant(sender.ID),
		ActorID:       sender.ID,
		Message:       fmt.Sprintf("%s sent you a message", sender.Name),
		ReferenceType: models.ReferenceChat,
		ReferenceID:   chat.ID,
		OccurredAt:    msg.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	resp := msg.ToResponse()
	return &resp, nil
}

func (s *ChatService) participantChat(ctx context.Context, caller *models.User, chatID uint) (*models.Chat, error) {
	chat, err := s.chats.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	if !chat.HasParticipant(caller.ID) {
		return nil, apperr.Forbidden("You can only access chats you are a participant in")
	}
	return chat, nil
}

// GetConversation returns the chat with its messages, oldest first.
func (s *ChatService) GetConversation(ctx context.Context, caller *models.User, chatID uint) (*models.ChatResponse, error) {
	chat, err := s.chats.GetChatWithMessages(ctx, chatID)
	if err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	if !chat.HasParticipant(caller.ID) {
		return nil, apperr.Forbidden("You can only access chats you are a participant in")
	}
	messages := make([]models.MessageResponse, 0, len(chat.Messages))
	for i := range chat.Messages {
		messages = append(messages, chat.Messages[i].ToResponse())
	}
	return &models.ChatResponse{
		ID:          chat.ID,
		WorshiperID: chat.WorshiperID,
		LeaderID:    chat.LeaderID,
		CreatedAt:   chat.CreatedAt,
		Worshiper:   chat.Worshiper.ToCompact(),
		Leader:      chat.Leader.ToCompact(),
		Messages:    messages,
	}, nil
}

// ListMyChats dispatches on the caller's role.
func (s *ChatService) ListMyChats(ctx context.Context, caller *models.User) (*models.ChatListResponse, error) {
	var (
		chats []models.Chat
		err   error
	)
	if caller.IsLeader() {
		chats, err = s.chats.GetLeaderChats(ctx, caller.ID)
	} else {
		chats, err = s.chats.GetWorshiperChats(ctx, caller.ID)
	}
	if err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	return s.summarize(chats, caller.ID), nil
}

func (s *ChatService) ListLeaderChats(ctx context.Context, leader *models.User) (*models.ChatListResponse, error) {
	if err := requireRole(leader, models.RoleLeader, "Only leaders can access this endpoint"); err != nil {
		return nil, err
	}
	chats, err := s.chats.GetLeaderChats(ctx, leader.ID)
	if err != nil {
		return nil, apperr.FromStore(err, "Chat not found")
	}
	return s.summarize(chats, leader.ID), nil
}

// summarize expects chats newest-created first with messages in ascending
// order, which is what the repository returns.
func (s *ChatService) summarize(chats []models.Chat, callerID uint) *models.ChatListResponse {
	out := make([]models.ChatSummary, 0, len(chats))
	for i := range chats {
		c := &chats[i]
		sum := models.ChatSummary{
			ID:          c.ID,
			WorshiperID: c.WorshiperID,
			LeaderID:    c.LeaderID,
			CreatedAt:   c.CreatedAt,
			Worshiper:   c.Worshiper.ToCompact(),
			Leader:      c.Leader.ToCompact(),
		}
		if n := len(c.Messages); n > 0 {
			last := c.Messages[n-1].ToResponse()
			sum.LastMessage = &last
		}
		for _, m := range c.Messages {
			if m.SenderID != callerID && !m.IsRead {
				sum.UnreadCount++
			}
		}
		out = append(out, sum)
	}

	if s.ordering == config.ChatOrderRecent {
		sort.SliceStable(out, func(i, j int) bool {
			return activityTime(out[i]).After(activityTime(out[j]))
		})
	}
	return &models.ChatListResponse{Chats: out, Total: len(out)}
}

func activityTime(c models.ChatSummary) time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.CreatedAt
	}
	return c.CreatedAt
}

// MarkRead flips the other participant's unread messages and reports how
// many changed.
func (s *ChatService) MarkRead(ctx context.Context, caller *models.User, chatID uint) (int64, error) {
	chat, err := s.participantChat(ctx, caller, chatID)
	if err != nil {
		return 0, err
	}
	n, err := s.chats.MarkMessagesRead(ctx, chat.ID, caller.ID, s.now())
	if err != nil {
		return 0, apperr.FromStore(err, "Chat not found")
	}
	return n, nil
}
