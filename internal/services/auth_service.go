package services

import (
	"time"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/config"
	"empylo_backend/internal/email"
	"empylo_backend/internal/logger"
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthService implements signup, email verification, one- and two-step
// login, and the password reset flow. Store writes are transactional;
// mail goes out after commit as a best-effort side effect.
type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*models.User, error)
	VerifyEmailOTP(db *gorm.DB, token string) (*models.User, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*LoginOutcome, error)
	TwoStepLogin(db *gorm.DB, token string) (*dto.LoginResponse, error)
	ForgotPassword(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, token, password string) (*dto.LoginResponse, error)
	ResendVerificationOTP(db *gorm.DB, emailAddr string) error
}

// LoginOutcome is either a session or a two-step acknowledgment, never
// both.
type LoginOutcome struct {
	Session         *dto.LoginResponse
	TwoStepRequired bool
	Message         string
}

type AuthServiceImpl struct {
	cfg           *config.Config
	userRepo      repositories.UserRepository
	tokenService  TokenService
	emailProvider email.Provider
}

func NewAuthService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	tokenService TokenService,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		cfg:           cfg,
		userRepo:      userRepo,
		tokenService:  tokenService,
		emailProvider: emailProvider,
	}
}

func (s *AuthServiceImpl) otpTTL() time.Duration {
	return time.Duration(s.cfg.Token.OTPTTLMinutes) * time.Minute
}

func (s *AuthServiceImpl) resetTTL() time.Duration {
	return time.Duration(s.cfg.Token.ResetTTLMinutes) * time.Minute
}

func (s *AuthServiceImpl) sessionTTL() time.Duration {
	return time.Duration(s.cfg.JWT.TTL) * time.Hour
}

// sendMailAsync fires the mail attempt after the caller's transaction
// has committed. Failures are logged, never surfaced to the caller.
func sendMailAsync(what, to string, send func() error) {
	go func() {
		if err := send(); err != nil {
			logger.Error("failed to send mail", "kind", what, "to", to, "error", err)
		}
	}()
}

// Signup creates an unverified user and its verification token in one
// transaction, then mails the code.
func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*models.User, error) {
	accountType := models.AccountType(req.AccountType)
	if req.AccountType == "" {
		accountType = models.AccountTypePersonal
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:           req.Email,
		Password:        hashed,
		AccountType:     accountType,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		TermsConditions: req.TermsConditions,
		Status:          models.UserStatusPending,
	}

	var code string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		token, err := s.tokenService.Issue(tx, user, models.OperationEmailVerification, s.otpTTL())
		if err != nil {
			return err
		}
		code = token.Token
		return nil
	})
	if err != nil {
		return nil, err
	}

	sendMailAsync("verification", user.Email, func() error {
		return s.emailProvider.SendVerificationOTP(user.Email, code)
	})

	return user, nil
}

// VerifyEmailOTP consumes the code and activates the account
// atomically.
func (s *AuthServiceImpl) VerifyEmailOTP(db *gorm.DB, tokenValue string) (*models.User, error) {
	var user *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenService.Validate(tx, tokenValue, models.OperationEmailVerification)
		if err != nil {
			return err
		}

		if err := s.userRepo.MarkVerified(tx, token.UserID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.tokenService.Consume(tx, token); err != nil {
			return err
		}

		user, err = s.userRepo.FindByID(tx, token.UserID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// checkAccountState enforces the post-credential login gates in order:
// email verified, not deleted, activated.
func checkAccountState(user *models.User) error {
	if !user.IsEmailVerified {
		return apperrors.ErrEmailNotVerified
	}
	if user.IsDeleted {
		return apperrors.ErrUserDeleted
	}
	if !user.IsActivated {
		return apperrors.ErrUserDeactivated
	}
	return nil
}

func (s *AuthServiceImpl) session(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(*user, s.sessionTTL())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        user.Sanitized(),
	}, nil
}

// Login checks credentials first with a non-enumerating error, then the
// account state gates. With two-step verification on it issues and
// mails a code instead of a session.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*LoginOutcome, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same error as a wrong password.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := checkAccountState(user); err != nil {
		return nil, err
	}

	if user.TwoStepVerification {
		var code string
		err := db.Transaction(func(tx *gorm.DB) error {
			token, err := s.tokenService.Issue(tx, user, models.OperationTwoStepVerification, s.otpTTL())
			if err != nil {
				return err
			}
			code = token.Token
			return nil
		})
		if err != nil {
			return nil, err
		}

		sendMailAsync("two-step", user.Email, func() error {
			return s.emailProvider.SendTwoStepOTP(user.Email, code)
		})

		return &LoginOutcome{
			TwoStepRequired: true,
			Message:         "Check email for the verification code",
		}, nil
	}

	session, err := s.session(user)
	if err != nil {
		return nil, err
	}
	return &LoginOutcome{Session: session}, nil
}

// TwoStepLogin consumes the mailed code and returns the session.
func (s *AuthServiceImpl) TwoStepLogin(db *gorm.DB, tokenValue string) (*dto.LoginResponse, error) {
	var user *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenService.Validate(tx, tokenValue, models.OperationTwoStepVerification)
		if err != nil {
			return err
		}

		user, err = s.userRepo.FindByID(tx, token.UserID)
		if err != nil {
			return apperrors.InternalError(err)
		}

		if user.IsDeleted {
			return apperrors.ErrUserDeleted
		}
		if !user.IsActivated {
			return apperrors.ErrUserDeactivated
		}

		return s.tokenService.Consume(tx, token)
	})
	if err != nil {
		return nil, err
	}

	return s.session(user)
}

// ForgotPassword issues a reset token for a live account and mails it.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.IsDeleted {
		return apperrors.ErrUserDeleted
	}
	if !user.IsActivated {
		return apperrors.ErrUserDeactivated
	}

	var value string
	err = db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenService.Issue(tx, user, models.OperationPasswordReset, s.resetTTL())
		if err != nil {
			return err
		}
		value = token.Token
		return nil
	})
	if err != nil {
		return err
	}

	sendMailAsync("password-reset", user.Email, func() error {
		return s.emailProvider.SendPasswordReset(user.Email, value)
	})

	return nil
}

// ResetPassword consumes the reset token and stores the new hash,
// returning a fresh session.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, tokenValue, password string) (*dto.LoginResponse, error) {
	var user *models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenService.Validate(tx, tokenValue, models.OperationPasswordReset)
		if err != nil {
			return err
		}

		user, err = s.userRepo.FindByID(tx, token.UserID)
		if err != nil {
			return apperrors.InternalError(err)
		}

		if user.IsDeleted {
			return apperrors.ErrUserDeleted
		}
		if !user.IsActivated {
			return apperrors.ErrUserDeactivated
		}

		hashed, err := auth.HashPassword(password)
		if err != nil {
			return apperrors.InternalError(err)
		}

		if err := s.userRepo.UpdateFields(tx, user.ID, map[string]interface{}{
			"password": hashed,
		}); err != nil {
			return apperrors.InternalError(err)
		}
		user.Password = hashed

		return s.tokenService.Consume(tx, token)
	})
	if err != nil {
		return nil, err
	}

	return s.session(user)
}

// ResendVerificationOTP replaces the pending verification token and
// re-mails it.
func (s *AuthServiceImpl) ResendVerificationOTP(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	var code string
	err = db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenService.Resend(tx, user, models.OperationEmailVerification, s.otpTTL())
		if err != nil {
			return err
		}
		code = token.Token
		return nil
	})
	if err != nil {
		return err
	}

	sendMailAsync("verification", user.Email, func() error {
		return s.emailProvider.SendVerificationOTP(user.Email, code)
	})

	return nil
}
