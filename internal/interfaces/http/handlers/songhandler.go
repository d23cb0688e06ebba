package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	songapp "tunemates/internal/application/song"
	"tunemates/internal/interfaces/http/middleware"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

type SongHandler struct {
	songs  songService
	logger logger.Interface
}

func NewSongHandler(songs songService) *SongHandler {
	return &SongHandler{
		songs:  songs,
		logger: logger.NewLogger(),
	}
}

// Propose adds a track proposal to an active room. Public, the room password
// or a share code is the access gate upstream.
func (h *SongHandler) Propose(c *gin.Context) {
	roomID, err := utils.ParseUintParam(c, "id", "room")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req songapp.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for propose song", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.songs.Propose(c.Request.Context(), roomID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "song proposed successfully")
}

func (h *SongHandler) ListByRoom(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	status := c.Query("status")

	var (
		result []*songapp.SongDTO
		err    error
	)
	if status != "" {
		result, err = h.songs.ListByRoomAndStatus(c.Request.Context(), r.ID(), status)
	} else {
		result, err = h.songs.ListByRoom(c.Request.Context(), r.ID())
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SongHandler) Refuse(c *gin.Context) {
	r, ok := middleware.RoomFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("room context missing"))
		return
	}

	songID, err := utils.ParseUintParam(c, "song_id", "song")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.songs.Refuse(c.Request.Context(), r.ID(), songID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "song refused", result)
}
