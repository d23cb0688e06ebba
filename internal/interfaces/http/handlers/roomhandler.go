package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roomapp "tunemates/internal/application/room"
	"tunemates/internal/interfaces/http/middleware"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

type RoomHandler struct {
	rooms  roomService
	logger logger.Interface
}

func NewRoomHandler(rooms roomService) *RoomHandler {
	return &RoomHandler{
		rooms:  rooms,
		logger: logger.NewLogger(),
	}
}

func (h *RoomHandler) Create(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req roomapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create room", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rooms.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "room created successfully")
}

func (h *RoomHandler) ListMine(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rooms.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *RoomHandler) GetByID(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	result, err := h.rooms.GetByID(c.Request.Context(), r.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Join is the password-gated public lookup by slug.
func (h *RoomHandler) Join(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("room slug is required"))
		return
	}

	var req roomapp.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for join room", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rooms.Join(c.Request.Context(), slug, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *RoomHandler) Update(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	var req roomapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update room", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rooms.Update(c.Request.Context(), r, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "room updated successfully", result)
}

func (h *RoomHandler) ChangePassword(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	var req roomapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change room password", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.rooms.ChangePassword(c.Request.Context(), r, req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "room password changed successfully", nil)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	if err := h.rooms.Delete(c.Request.Context(), r.ID()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *RoomHandler) IssueCode(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	result, err := h.rooms.IssueCode(c.Request.Context(), r.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "share code issued")
}

func (h *RoomHandler) ListCodes(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	result, err := h.rooms.ListCodes(c.Request.Context(), r.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *RoomHandler) DeleteCode(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	codeID, err := utils.ParseUintParam(c, "code_id", "share code")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.rooms.DeleteCode(c.Request.Context(), r.ID(), codeID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// RedeemCode trades a share code for room access. Public.
func (h *RoomHandler) RedeemCode(c *gin.Context) {
	var req roomapp.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for redeem code", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rooms.RedeemCode(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
