package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
)

// Service учётные записи: регистрация, вход, администрирование
type Service struct {
	userRepo     UserRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	tokens       TokenService
	timeProvider TimeProvider
	logger       Logger
	bcryptCost   int
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	tokens TokenService,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// WithBcryptCost переопределяет стоимость хеширования (в тестах bcrypt.MinCost)
func (s *Service) WithBcryptCost(cost int) *Service {
	s.bcryptCost = cost
	return s
}

// Register создаёт участника (MEMBER) в статусе PENDING: войти он сможет после одобрения администратором
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	s.logger.Info("Register: email=%s", email)

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)

	switch {
	case first == "" || last == "" || email == "" || req.Password == "":
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	case len(first) > domain.MaxNameLength || len(last) > domain.MaxNameLength:
		return nil, fmt.Errorf("%w: names are limited to %d characters", ErrInvalidInput, domain.MaxNameLength)
	case len(req.Password) < domain.MinPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	case req.Password != req.PasswordConfirm:
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	user, err := s.newUser(email, first, last, req.Password, domain.RoleMember, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create user email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created user id=%s, waiting for approval", user.ID)
	return user, nil
}

// Login проверяет пароль и выдаёт токен. Неодобренные учётные записи не получают сессию
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved() {
		s.logger.Warn("Login: user id=%s has status %s", user.ID, user.Status)
		return nil, fmt.Errorf("%w: status %s", ErrAccountNotApproved, user.Status)
	}

	tok, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - token error: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%s signed in", user.ID)
	return &LoginResult{Token: tok, User: user}, nil
}

// Authenticate разбирает токен и загружает пользователя.
// Роль всегда берётся из хранилища: изменение роли действует со следующего запроса
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		s.logger.Error("Authenticate: repository error for user id=%s: %v", claims.UserID, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if !user.IsApproved() {
		return nil, fmt.Errorf("%w: status %s", ErrAccountNotApproved, user.Status)
	}

	return user, nil
}

// Me профиль пользователя сессии
func (s *Service) Me(ctx context.Context, session rules.Session) (*domain.User, error) {
	return s.get(ctx, "Me", session.UserID)
}

// List все пользователи (только администратор)
func (s *Service) List(ctx context.Context, session rules.Session) ([]*domain.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return users, nil
}

// UpdateStatus одобряет или отклоняет учётную запись (только администратор)
func (s *Service) UpdateStatus(ctx context.Context, session rules.Session, userID string, status domain.AccountStatus) (*domain.User, error) {
	s.logger.Info("UpdateStatus: admin=%s, user=%s, status=%s", session.UserID, userID, status)

	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, status, s.timeProvider.Now()); err != nil {
		return nil, s.mapRepoError("UpdateStatus", userID, err)
	}
	return s.get(ctx, "UpdateStatus", userID)
}

// UpdateRole меняет роль (только администратор). Снять роль ADMIN с себя можно только с подтверждением
func (s *Service) UpdateRole(ctx context.Context, session rules.Session, userID string, role domain.Role, confirmed bool) (*domain.User, error) {
	s.logger.Info("UpdateRole: admin=%s, user=%s, role=%s, confirmed=%t", session.UserID, userID, role, confirmed)

	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if userID == session.UserID && role != domain.RoleAdmin && !confirmed {
		return nil, ErrSelfDemotion
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, s.timeProvider.Now()); err != nil {
		return nil, s.mapRepoError("UpdateRole", userID, err)
	}
	return s.get(ctx, "UpdateRole", userID)
}

// Delete удаляет пользователя вместе со всеми его бронированиями (только администратор)
func (s *Service) Delete(ctx context.Context, session rules.Session, userID string) (*DeleteResult, error) {
	s.logger.Info("Delete: admin=%s, user=%s", session.UserID, userID)

	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if userID == session.UserID {
		return nil, ErrSelfDeletion
	}

	result := &DeleteResult{}
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.userRepo.GetByID(txCtx, userID); err != nil {
			return s.mapRepoError("Delete", userID, err)
		}

		n, err := s.bookingRepo.DeleteByUser(txCtx, userID)
		if err != nil {
			s.logger.Error("Delete: failed to delete bookings of user=%s: %v", userID, err)
			return fmt.Errorf("%w: Delete - bookings: %v", ErrInternal, err)
		}
		result.DeletedBookings = n

		if err := s.userRepo.Delete(txCtx, userID); err != nil {
			return s.mapRepoError("Delete", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Delete: user=%s deleted with %d booking(s)", userID, result.DeletedBookings)
	return result, nil
}

// EnsureAdmin создаёт одобренного администратора при старте, если такого email ещё нет
func (s *Service) EnsureAdmin(ctx context.Context, email, password, firstName, lastName string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, userRepo.ErrUserNotFound) {
		return false, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	if len(password) < domain.MinPasswordLength {
		return false, fmt.Errorf("%w: admin password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	user, err := s.newUser(email, firstName, lastName, password, domain.RoleAdmin, domain.StatusApproved)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return false, nil
		}
		return false, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: created admin id=%s email=%s", user.ID, email)
	return true, nil
}

func (s *Service) newUser(email, first, last, password string, role domain.Role, status domain.AccountStatus) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	return &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    first,
		LastName:     last,
		FullName:     strings.TrimSpace(first + " " + last),
		Role:         role,
		Status:       status,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Service) get(ctx context.Context, op, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, s.mapRepoError(op, userID, err)
	}
	return user, nil
}

func (s *Service) mapRepoError(op, userID string, err error) error {
	if errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Warn("%s: user id=%s not found", op, userID)
		return ErrUserNotFound
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInternal) {
		return err
	}
	s.logger.Error("%s: repository error for user id=%s: %v", op, userID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
