package middleware

import (
	"github.com/gin-gonic/gin"

	"tunemates/internal/domain/room"
	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

// RoomOwnerMiddleware is the single ownership predicate for room-scoped
// routes. It resolves the room from the :id path parameter, checks the
// authenticated user owns it, and stores the room in context for handlers.
// Everything fails closed.
type RoomOwnerMiddleware struct {
	rooms  room.Repository
	logger logger.Interface
}

func NewRoomOwnerMiddleware(rooms room.Repository, logger logger.Interface) *RoomOwnerMiddleware {
	return &RoomOwnerMiddleware{
		rooms:  rooms,
		logger: logger,
	}
}

// RequireRoomOwner must run after RequireAuth.
func (m *RoomOwnerMiddleware) RequireRoomOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.CurrentUserID(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		roomID, err := utils.ParseUintParam(c, "id", "room")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		r, err := m.rooms.FindByID(c.Request.Context(), roomID)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if !r.IsOwnedBy(userID) {
			m.logger.Warnw("room access denied", "room_id", roomID, "user_id", userID)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("you do not own this room"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRoom, r)

		c.Next()
	}
}

// RoomFromContext retrieves the room stored by RequireRoomOwner.
func RoomFromContext(c *gin.Context) (*room.Room, bool) {
	value, exists := c.Get(constants.ContextKeyRoom)
	if !exists {
		return nil, false
	}
	r, ok := value.(*room.Room)
	return r, ok
}
