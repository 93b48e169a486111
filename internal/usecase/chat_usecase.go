package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	gearRepo repository.GearRepository
	userRepo repository.UserRepository
	txRepo   repository.TransactionRepository
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	gearRepo repository.GearRepository,
	userRepo repository.UserRepository,
	txRepo repository.TransactionRepository,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		gearRepo: gearRepo,
		userRepo: userRepo,
		txRepo:   txRepo,
	}
}

type StartChatInput struct {
	GearID   string
	SellerID string
}

// StartChat opens the thread for a (gear, buyer, seller) triple. It is
// idempotent: if the thread exists it is returned as-is.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID string, input StartChatInput) (*entity.Chat, error) {
	if buyerID == input.SellerID {
		return nil, errors.BadRequest("You cannot start a chat with yourself", nil)
	}

	gear, err := uc.gearRepo.GetByID(ctx, input.GearID)
	if err != nil {
		return nil, err
	}
	if gear.SellerID != input.SellerID {
		return nil, errors.Validation("seller does not own this gear item")
	}
	if _, err := uc.userRepo.GetByID(ctx, buyerID); err != nil {
		return nil, errors.NotFound("Buyer", err)
	}

	existing, err := uc.chatRepo.GetByKey(ctx, input.GearID, buyerID, input.SellerID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	now := time.Now()
	chat := &entity.Chat{
		ID:         uuid.NewString(),
		GearID:     input.GearID,
		BuyerID:    buyerID,
		SellerID:   input.SellerID,
		Messages:   []entity.Message{},
		HasDeposit: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// SendMessage appends to the thread. The system pseudo-user may write into
// any thread; everyone else must be a participant.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Validation("message text is required")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if senderID != entity.SystemSenderID && !chat.IsParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := entity.Message{
		ID:        ulid.Make().String(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now(),
		IsRead:    false,
	}

	chat.Messages = append(chat.Messages, message)
	chat.UpdatedAt = message.Timestamp

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkAsRead flips the read flag on every message addressed to the reader,
// never on the reader's own. Returns the reader's remaining unread total.
func (uc *ChatUseCase) MarkAsRead(ctx context.Context, chatID, userID string) (int, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return 0, err
	}
	if !chat.IsParticipant(userID) {
		return 0, errors.Forbidden("You are not a participant in this chat", nil)
	}

	changed := false
	for i := range chat.Messages {
		if chat.Messages[i].SenderID != userID && !chat.Messages[i].IsRead {
			chat.Messages[i].IsRead = true
			changed = true
		}
	}
	if changed {
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			return 0, err
		}
	}

	return uc.CountUnread(ctx, userID)
}

// CountUnread is the notification-badge number: unread messages addressed to
// the user across all of their threads.
func (uc *ChatUseCase) CountUnread(ctx context.Context, userID string) (int, error) {
	chats, err := uc.chatRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, chat := range chats {
		count += chat.UnreadFor(userID)
	}
	return count, nil
}

// SetMeetupLocation reveals the handover point. Only the seller may share it,
// and only once a deposit is held.
func (uc *ChatUseCase) SetMeetupLocation(ctx context.Context, chatID, callerID string, location entity.MeetupLocation) (*entity.Chat, error) {
	if strings.TrimSpace(location.Address) == "" {
		return nil, errors.Validation("meetup address is required")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if callerID != chat.SellerID {
		return nil, errors.Forbidden("Only the seller can share a meetup location", nil)
	}
	if !chat.HasDeposit {
		return nil, errors.Forbidden("A deposit is required before sharing a meetup location", nil)
	}

	chat.MeetupLocation = &location
	chat.UpdatedAt = time.Now()

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	uc.advanceTransaction(ctx, chatID)
	return chat, nil
}

// advanceTransaction moves the chat's deposit record to location_shared.
// Best effort: the meetup location is already committed, so failures here
// are logged and swallowed.
func (uc *ChatUseCase) advanceTransaction(ctx context.Context, chatID string) {
	tx, err := uc.txRepo.GetByChatID(ctx, chatID)
	if err != nil {
		logger.Warn("No transaction to advance for chat %s: %v", chatID, err)
		return
	}
	if tx.Status != entity.StatusDepositPlaced && tx.Status != entity.StatusNeedsReconciliation {
		return
	}
	tx.Status = entity.StatusLocationShared
	tx.UpdatedAt = time.Now()
	if err := uc.txRepo.Update(ctx, tx); err != nil {
		logger.Warn("Failed to advance transaction %s to location_shared: %v", tx.ID, err)
	}
}

func (uc *ChatUseCase) GetByID(ctx context.Context, chatID, callerID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsParticipant(callerID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByUser(ctx, userID)
}

// markDeposit flips the thread's deposit flag. It is only reachable from the
// deposit placement flow, which is what keeps the false->true transition tied
// to an actual deposit record.
func (uc *ChatUseCase) markDeposit(ctx context.Context, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.HasDeposit {
		return nil
	}
	chat.HasDeposit = true
	chat.UpdatedAt = time.Now()
	return uc.chatRepo.Update(ctx, chat)
}
