package handler

import (
	"github.com/labstack/echo/v4"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chats)
}

type startChatRequest struct {
	GearID   string `json:"gear_id" validate:"required"`
	SellerID string `json:"seller_id" validate:"required"`
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), uid, usecase.StartChatInput{
		GearID:   req.GearID,
		SellerID: req.SellerID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, chat)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	chat, err := h.chatUseCase.GetByID(c.Request().Context(), chatID, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chat)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	chat, err := h.chatUseCase.GetByID(c.Request().Context(), chatID, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chat.Messages)
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), chatID, uid, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	unread, err := h.chatUseCase.MarkAsRead(c.Request().Context(), chatID, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{
		"unread_count": unread,
	})
}

func (h *ChatHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)

	unread, err := h.chatUseCase.CountUnread(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{
		"unread_count": unread,
	})
}

type meetupLocationRequest struct {
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *ChatHandler) SetMeetupLocation(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	var req meetupLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.SetMeetupLocation(c.Request().Context(), chatID, uid, entity.MeetupLocation{
		Address: req.Address,
		Coordinates: entity.Coordinates{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chat)
}
