package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	spotifyapp "tunemates/internal/application/spotify"
	"tunemates/internal/interfaces/http/middleware"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

type SpotifyHandler struct {
	spotify spotifyService
	logger  logger.Interface
}

func NewSpotifyHandler(spotify spotifyService) *SpotifyHandler {
	return &SpotifyHandler{
		spotify: spotify,
		logger:  logger.NewLogger(),
	}
}

// AuthorizeLink starts the account-linking flow and returns the consent URL.
func (h *SpotifyHandler) AuthorizeLink(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.spotify.AuthorizeLink(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Callback completes the OAuth flow. Spotify redirects here, so the route is
// public and the state parameter identifies the linking user.
func (h *SpotifyHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")

	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("spotify authorization denied", "error", errParam)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("spotify authorization was denied"))
		return
	}

	if state == "" || code == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("state and code are required"))
		return
	}

	if err := h.spotify.HandleCallback(c.Request.Context(), state, code); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "spotify account linked successfully", nil)
}

// Token hands the authenticated owner a short-lived access token.
func (h *SpotifyHandler) Token(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.spotify.OwnerToken(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Search queries the track catalog. Public, rate limited.
func (h *SpotifyHandler) Search(c *gin.Context) {
	var req spotifyapp.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid query for track search", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.spotify.Search(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Approve pushes a pending song onto the room's linked playlist.
func (h *SpotifyHandler) Approve(c *gin.Context) {
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

	result, err := h.spotify.Approve(c.Request.Context(), r, songID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "song approved and added to playlist", result)
}

// Playlists lists the authenticated owner's playlists for the picker.
func (h *SpotifyHandler) Playlists(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.spotify.Playlists(c.Request.Context(), userID, limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
