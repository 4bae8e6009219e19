package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rahmadiangg/attendance-management/internal/core/validation"
)

// Service handles user administration.
type Service struct {
	repo       RepositoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := validation.Struct(dto); err != nil {
		s.logger.Error("user validation failed", "error", err, "username", dto.Username)
		return nil, err
	}

	taken, err := s.repo.ExistsByIdentity(dto.Username, dto.Email, dto.RFIDCard, 0)
	if err != nil {
		s.logger.Error("failed to check user identity", "error", err)
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = RoleStudent
	}
	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	u := &User{
		Username:     dto.Username,
		FullName:     dto.FullName,
		Email:        dto.Email,
		RFIDCard:     dto.RFIDCard,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     isActive,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *Service) GetUsers() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetUserByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := validation.Struct(dto); err != nil {
		s.logger.Error("user update validation failed", "error", err, "user_id", id)
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	username := u.Username
	email := u.Email
	rfid := u.RFIDCard
	if dto.Username != nil {
		username = *dto.Username
	}
	if dto.Email != nil {
		email = *dto.Email
	}
	if dto.RFIDCard != nil {
		rfid = *dto.RFIDCard
	}
	taken, err := s.repo.ExistsByIdentity(username, email, rfid, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUser
	}

	u.Username = username
	u.Email = email
	u.RFIDCard = rfid
	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err, "user_id", id)
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) DeleteUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
