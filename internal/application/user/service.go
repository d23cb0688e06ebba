package user

import (
	"context"

	domain "tunemates/internal/domain/user"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
	"tunemates/internal/shared/utils"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, username string) (string, error)
}

type Service struct {
	users  domain.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	log    logger.Interface
}

func NewService(users domain.Repository, hasher PasswordHasher, tokens TokenIssuer, log logger.Interface) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.Named("user"),
	}
}

// Register creates a new account. Passwords must satisfy the complexity
// policy and emails are unique case-insensitively.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	if err := utils.ValidatePasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	username := utils.SanitizeUserText(req.Username)
	if username == "" {
		return nil, errors.NewValidationError("username is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err.Error())
	}

	u, err := domain.NewUser(username, req.Email, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Infow("user registered", "user_id", u.ID())
	return toDTO(u), nil
}

// Login verifies credentials and issues a bearer token. The failure message
// never reveals whether the email exists.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := s.hasher.Verify(req.Password, u.PasswordHash()); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Generate(u.ID(), u.Username())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err.Error())
	}

	return &LoginResponse{Token: token, User: toDTO(u)}, nil
}

// GetByID returns a single user profile.
func (s *Service) GetByID(ctx context.Context, id uint) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

// List returns a page of user profiles together with the total count.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*UserDTO, int64, error) {
	users, total, err := s.users.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toDTO(u))
	}
	return dtos, total, nil
}

// UpdateProfile edits the caller's own profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := utils.SanitizeUserText(*req.Username)
		if err := u.Rename(username); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if req.Email != nil {
		if !utils.IsValidEmail(*req.Email) {
			return nil, errors.NewValidationError("email must be a valid email address")
		}
		// Reconstructing with a new email keeps the entity encapsulated,
		// so the repository enforces uniqueness on update instead.
		updated, err := domain.ReconstructUser(
			u.ID(), u.Username(), *req.Email, u.PasswordHash(),
			u.SpotifyRefreshToken(), u.SpotifyAccessToken(), u.SpotifyTokenExpiry(),
			u.CreatedAt(), u.UpdatedAt(),
		)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		u = updated
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	return toDTO(u), nil
}

// ChangePassword rotates the password after verifying the current one and
// the new one's complexity.
func (s *Service) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Verify(req.CurrentPassword, u.PasswordHash()); err != nil {
		return errors.NewInvalidCredentialsError()
	}

	if err := utils.ValidatePasswordComplexity(req.NewPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err.Error())
	}

	if err := u.ChangePassword(hash); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.log.Infow("password changed", "user_id", userID)
	return nil
}

// Delete removes the caller's account after password confirmation.
func (s *Service) Delete(ctx context.Context, userID uint, req DeleteRequest) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Verify(req.Password, u.PasswordHash()); err != nil {
		return errors.NewInvalidCredentialsError()
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Infow("user deleted", "user_id", userID)
	return nil
}

func toDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID(),
		Username:      u.Username(),
		Email:         u.Email(),
		SpotifyLinked: u.HasSpotifyLink(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}
