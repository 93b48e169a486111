package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

// DepositCalculator derives the deposit owed for a listing price.
type DepositCalculator interface {
	DepositAmount(price float64) float64
}

type rateDepositCalculator struct {
	rate float64
}

// Whole dollars, rounded up, like the mobile client computed it.
func (c *rateDepositCalculator) DepositAmount(price float64) float64 {
	return math.Ceil(price * c.rate)
}

func NewRateDepositCalculator(rate float64) DepositCalculator {
	return &rateDepositCalculator{rate: rate}
}

type TransactionUseCase struct {
	txRepo     repository.TransactionRepository
	gearRepo   repository.GearRepository
	userRepo   repository.UserRepository
	chatUC     *ChatUseCase
	calculator DepositCalculator
}

func NewTransactionUseCase(
	txRepo repository.TransactionRepository,
	gearRepo repository.GearRepository,
	userRepo repository.UserRepository,
	chatUC *ChatUseCase,
	calculator DepositCalculator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRepo:     txRepo,
		gearRepo:   gearRepo,
		userRepo:   userRepo,
		chatUC:     chatUC,
		calculator: calculator,
	}
}

type PlaceDepositInput struct {
	GearID string
	ChatID string
}

// PlaceDeposit creates the deposit record, then performs the cross-aggregate
// step: a system notice in the chat and the chat's deposit flag. The two
// writes share no transaction; if the chat write fails the record is kept and
// marked needs_reconciliation instead of being rolled back.
func (uc *TransactionUseCase) PlaceDeposit(ctx context.Context, buyerID string, input PlaceDepositInput) (*entity.Transaction, error) {
	gear, err := uc.gearRepo.GetByID(ctx, input.GearID)
	if err != nil {
		return nil, err
	}
	if !gear.IsActive {
		return nil, errors.BadRequest("This listing is no longer available", nil)
	}
	if gear.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot place a deposit on your own listing", nil)
	}

	chat, err := uc.chatRepo().GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if chat.GearID != input.GearID || chat.BuyerID != buyerID || chat.SellerID != gear.SellerID {
		return nil, errors.Validation("chat does not belong to this gear item and buyer")
	}
	if chat.HasDeposit {
		return nil, errors.Conflict("A deposit has already been placed in this chat")
	}

	amount := uc.calculator.DepositAmount(gear.Price)
	now := time.Now()
	tx := &entity.Transaction{
		ID:            uuid.NewString(),
		GearID:        input.GearID,
		BuyerID:       buyerID,
		SellerID:      gear.SellerID,
		ChatID:        input.ChatID,
		DepositAmount: amount,
		Status:        entity.StatusDepositPlaced,
		DepositAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if err := uc.notifyDeposit(ctx, tx); err != nil {
		// The deposit record stays; only the chat is out of sync.
		logger.Error("Deposit notice failed for transaction %s: %v", tx.ID,
			errors.Dependency("Failed to update chat after deposit", err))
		tx.Status = entity.StatusNeedsReconciliation
		tx.UpdatedAt = time.Now()
		if err := uc.txRepo.Update(ctx, tx); err != nil {
			logger.Error("Failed to mark transaction %s for reconciliation: %v", tx.ID, err)
		}
	}

	return tx, nil
}

func (uc *TransactionUseCase) notifyDeposit(ctx context.Context, tx *entity.Transaction) error {
	notice := fmt.Sprintf("A deposit of $%s has been placed.", formatAmount(tx.DepositAmount))
	if _, err := uc.chatUC.SendMessage(ctx, tx.ChatID, entity.SystemSenderID, notice); err != nil {
		return err
	}
	return uc.chatUC.markDeposit(ctx, tx.ChatID)
}

// Complete settles a transaction after the in-person handover and bumps both
// parties' lifetime counters.
func (uc *TransactionUseCase) Complete(ctx context.Context, id, callerID string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.BuyerID != callerID && tx.SellerID != callerID {
		return nil, errors.Forbidden("You are not a party to this transaction", nil)
	}
	if tx.Status.Terminal() {
		return nil, errors.Conflict("Transaction is already settled")
	}

	now := time.Now()
	tx.Status = entity.StatusCompleted
	tx.CompletedAt = &now
	tx.UpdatedAt = now

	if err := uc.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	uc.bumpCounters(ctx, tx)
	uc.notify(ctx, tx.ChatID, "Transaction completed successfully!")
	return tx, nil
}

// Cancel aborts a transaction from any non-terminal state. Deposits are
// non-refundable, so nothing is paid back.
func (uc *TransactionUseCase) Cancel(ctx context.Context, id, callerID string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.BuyerID != callerID && tx.SellerID != callerID {
		return nil, errors.Forbidden("You are not a party to this transaction", nil)
	}
	if tx.Status.Terminal() {
		return nil, errors.Conflict("Transaction is already settled")
	}

	now := time.Now()
	tx.Status = entity.StatusCancelled
	tx.CancelledAt = &now
	tx.UpdatedAt = now

	if err := uc.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	uc.notify(ctx, tx.ChatID, "Transaction has been cancelled.")
	return tx, nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, id, callerID string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.BuyerID != callerID && tx.SellerID != callerID {
		return nil, errors.Forbidden("You are not a party to this transaction", nil)
	}
	return tx, nil
}

func (uc *TransactionUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByUser(ctx, userID)
}

// notify appends a system notice to the related chat. Best effort.
func (uc *TransactionUseCase) notify(ctx context.Context, chatID, text string) {
	if _, err := uc.chatUC.SendMessage(ctx, chatID, entity.SystemSenderID, text); err != nil {
		logger.Warn("Failed to write system notice to chat %s: %v", chatID, err)
	}
}

func (uc *TransactionUseCase) bumpCounters(ctx context.Context, tx *entity.Transaction) {
	if buyer, err := uc.userRepo.GetByID(ctx, tx.BuyerID); err == nil {
		buyer.BuyCount++
		buyer.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, buyer); err != nil {
			logger.Warn("Failed to bump buy count for %s: %v", tx.BuyerID, err)
		}
	}
	if seller, err := uc.userRepo.GetByID(ctx, tx.SellerID); err == nil {
		seller.SellCount++
		seller.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, seller); err != nil {
			logger.Warn("Failed to bump sell count for %s: %v", tx.SellerID, err)
		}
	}
}

func (uc *TransactionUseCase) chatRepo() repository.ChatRepository {
	return uc.chatUC.chatRepo
}

// formatAmount renders whole amounts without a decimal point ("10", "12.5").
func formatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%g", amount)
}
