package room

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"

	domain "tunemates/internal/domain/room"
	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

// PasswordHasher hashes and verifies room passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type Service struct {
	rooms  domain.Repository
	codes  domain.CodeRepository
	hasher PasswordHasher
	log    logger.Interface
}

func NewService(rooms domain.Repository, codes domain.CodeRepository, hasher PasswordHasher, log logger.Interface) *Service {
	return &Service{
		rooms:  rooms,
		codes:  codes,
		hasher: hasher,
		log:    log.Named("room"),
	}
}

// Create makes a new room for the owner. Owners are limited to a fixed
// number of rooms and cannot reuse a name.
func (s *Service) Create(ctx context.Context, ownerID uint, req CreateRequest) (*RoomDTO, error) {
	count, err := s.rooms.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= constants.MaxRoomsPerUser {
		return nil, errors.NewConflictError(fmt.Sprintf("room limit of %d reached", constants.MaxRoomsPerUser))
	}

	name := utils.SanitizeUserText(req.Name)
	if name == "" {
		return nil, errors.NewValidationError("room name is required")
	}

	taken, err := s.rooms.ExistsByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("room name already in use")
	}

	roomSlug, err := s.generateSlug(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err.Error())
	}

	r, err := domain.NewRoom(ownerID, name, roomSlug, hash, req.Market)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, err
	}

	s.log.Infow("room created", "room_id", r.ID(), "owner_id", ownerID, "slug", r.Slug())
	return toDTO(r), nil
}

// generateSlug slugifies the name and appends the owner ID when the plain
// slug is taken.
func (s *Service) generateSlug(ctx context.Context, name string, ownerID uint) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", errors.NewValidationError("room name produces an empty slug")
	}

	taken, err := s.rooms.ExistsBySlug(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	suffixed := fmt.Sprintf("%s-%d", base, ownerID)
	taken, err = s.rooms.ExistsBySlug(ctx, suffixed)
	if err != nil {
		return "", err
	}
	if taken {
		return "", errors.NewConflictError("room slug already in use")
	}
	return suffixed, nil
}

// ListByOwner returns all rooms the user owns.
func (s *Service) ListByOwner(ctx context.Context, ownerID uint) ([]*RoomDTO, error) {
	rooms, err := s.rooms.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		dtos = append(dtos, toDTO(r))
	}
	return dtos, nil
}

// GetByID returns a room by ID.
func (s *Service) GetByID(ctx context.Context, id uint) (*RoomDTO, error) {
	r, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

// Join is the password-gated public lookup by slug. A wrong password
// reads the same as a missing room.
func (s *Service) Join(ctx context.Context, roomSlug string, req JoinRequest) (*PublicRoomDTO, error) {
	r, err := s.rooms.FindBySlug(ctx, roomSlug)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Verify(req.Password, r.PasswordHash()); err != nil {
		return nil, errors.NewNotFoundError("room not found")
	}

	return toPublicDTO(r), nil
}

// Update edits room fields.
func (s *Service) Update(ctx context.Context, r *domain.Room, req UpdateRequest) (*RoomDTO, error) {
	if req.Name != nil {
		name := utils.SanitizeUserText(*req.Name)
		if err := r.Rename(name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if req.Slug != nil {
		normalized := slug.Make(*req.Slug)
		if normalized == "" {
			return nil, errors.NewValidationError("slug is invalid")
		}
		if normalized != r.Slug() {
			taken, err := s.rooms.ExistsBySlug(ctx, normalized)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errors.NewConflictError("room slug already in use")
			}
			if err := r.SetSlug(normalized); err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
		}
	}
	if req.PlaylistID != nil {
		r.LinkPlaylist(*req.PlaylistID)
	}
	if req.Active != nil {
		r.SetActive(*req.Active)
	}

	if err := s.rooms.Update(ctx, r); err != nil {
		return nil, err
	}

	return toDTO(r), nil
}

// ChangePassword replaces the room password.
func (s *Service) ChangePassword(ctx context.Context, r *domain.Room, req ChangePasswordRequest) error {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err.Error())
	}

	if err := r.ChangePassword(hash); err != nil {
		return errors.NewValidationError(err.Error())
	}

	return s.rooms.Update(ctx, r)
}

// Delete removes the room with its songs and codes.
func (s *Service) Delete(ctx context.Context, roomID uint) error {
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return err
	}
	s.log.Infow("room deleted", "room_id", roomID)
	return nil
}

// IssueCode creates a fresh share code for the room.
func (s *Service) IssueCode(ctx context.Context, roomID uint) (*CodeDTO, error) {
	code, err := domain.NewCode(roomID)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate code", err.Error())
	}

	if err := s.codes.Create(ctx, code); err != nil {
		return nil, err
	}

	return toCodeDTO(code), nil
}

// RedeemCode trades a valid share code for the public room view.
func (s *Service) RedeemCode(ctx context.Context, req RedeemRequest) (*PublicRoomDTO, error) {
	code, err := s.codes.FindByValue(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	if code.IsExpired(biztime.NowUTC()) {
		return nil, errors.NewNotFoundError("room code not found")
	}

	r, err := s.rooms.FindByID(ctx, code.RoomID())
	if err != nil {
		return nil, err
	}

	return toPublicDTO(r), nil
}

// ListCodes returns the codes issued for a room.
func (s *Service) ListCodes(ctx context.Context, roomID uint) ([]*CodeDTO, error) {
	codes, err := s.codes.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CodeDTO, 0, len(codes))
	for _, c := range codes {
		dtos = append(dtos, toCodeDTO(c))
	}
	return dtos, nil
}

// DeleteCode revokes a share code, checking it belongs to the room.
func (s *Service) DeleteCode(ctx context.Context, roomID, codeID uint) error {
	codes, err := s.codes.FindByRoom(ctx, roomID)
	if err != nil {
		return err
	}

	for _, c := range codes {
		if c.ID() == codeID {
			return s.codes.Delete(ctx, codeID)
		}
	}
	return errors.NewNotFoundError("room code not found")
}

func toDTO(r *domain.Room) *RoomDTO {
	return &RoomDTO{
		ID:         r.ID(),
		OwnerID:    r.OwnerID(),
		Name:       r.Name(),
		Slug:       r.Slug(),
		Active:     r.IsActive(),
		Market:     r.Market(),
		PlaylistID: r.PlaylistID(),
		LastUpdate: r.LastUpdate(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toPublicDTO(r *domain.Room) *PublicRoomDTO {
	return &PublicRoomDTO{
		ID:     r.ID(),
		Name:   r.Name(),
		Slug:   r.Slug(),
		Active: r.IsActive(),
	}
}

func toCodeDTO(c *domain.Code) *CodeDTO {
	return &CodeDTO{
		ID:        c.ID(),
		Code:      c.Value(),
		ExpiresAt: c.ExpiresAt(),
	}
}
