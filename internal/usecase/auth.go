package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tutorlane/platform-api/internal/model"
	"github.com/tutorlane/platform-api/internal/repository"
	"github.com/tutorlane/platform-api/internal/security"
	"github.com/tutorlane/platform-api/internal/session"
)

// AuthUsecase defines signup/login for the tutorials and jobs domains and
// login/verify for the admin domain. The main domain mints no sessions of
// its own; it redirects to the sub-applications.
type AuthUsecase interface {
	Signup(ctx context.Context, domain session.Domain, params SignupParams) (*model.User, string, error)
	Login(ctx context.Context, domain session.Domain, email, password string) (*model.User, string, error)
	VerifyUser(ctx context.Context, principal *session.Principal) (*model.User, error)
	AdminLogin(ctx context.Context, email, password string) (*model.Admin, string, error)
	AdminVerify(ctx context.Context, principal *session.Principal) (*model.Admin, error)
}

// SignupParams defines the parameters for user signup. Role selection
// happens at signup and is constrained by the domain signing up.
type SignupParams struct {
	Email    string
	Password string
	Role     model.UserRole
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrRoleNotAllowed     = errors.New("role not allowed for this application")
	ErrPrincipalNotFound  = errors.New("principal record not found")
)

// domainRoles constrains which roles each sub-application may register.
var domainRoles = map[session.Domain][]model.UserRole{
	session.DomainTutorials: {model.RoleTeacher, model.RoleGuardian},
	session.DomainJobs:      {model.RoleFreelancer, model.RoleClient},
}

type authUsecase struct {
	userRepo   repository.UserRepository
	adminRepo  repository.AdminRepository
	resolvers  map[session.Domain]*session.Resolver
	sessionTTL time.Duration
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	resolvers map[session.Domain]*session.Resolver,
	sessionTTL time.Duration,
) AuthUsecase {
	return &authUsecase{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		resolvers:  resolvers,
		sessionTTL: sessionTTL,
	}
}

func (u *authUsecase) Signup(
	ctx context.Context,
	domain session.Domain,
	params SignupParams,
) (*model.User, string, error) {
	if !roleAllowed(domain, params.Role) {
		return nil, "", ErrRoleNotAllowed
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         params.Role,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.mint(domain, user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(
	ctx context.Context,
	domain session.Domain,
	email, password string,
) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if !roleAllowed(domain, user.Role) {
		return nil, "", ErrRoleNotAllowed
	}
	if !user.Active {
		return nil, "", ErrAccountInactive
	}

	token, err := u.mint(domain, user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// VerifyUser re-fetches the principal's record and re-checks the active
// flag: a verified token for a deactivated account is still rejected.
func (u *authUsecase) VerifyUser(ctx context.Context, principal *session.Principal) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}

	return user, nil
}

func (u *authUsecase) AdminLogin(ctx context.Context, email, password string) (*model.Admin, string, error) {
	admin, err := u.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if ok, err := security.VerifyPassword(password, admin.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if !admin.Active {
		return nil, "", ErrAccountInactive
	}

	if err := u.adminRepo.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		return nil, "", err
	}

	token, err := u.mint(session.DomainAdmin, admin.ID.Hex(), admin.Role)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (u *authUsecase) AdminVerify(ctx context.Context, principal *session.Principal) (*model.Admin, error) {
	admin, err := u.adminRepo.GetAdmin(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if !admin.Active {
		return nil, ErrAccountInactive
	}

	return admin, nil
}

func (u *authUsecase) mint(domain session.Domain, subject, role string) (string, error) {
	resolver, ok := u.resolvers[domain]
	if !ok {
		return "", errors.New("no session resolver for domain")
	}
	return resolver.Mint(subject, role, u.sessionTTL)
}

func roleAllowed(domain session.Domain, role model.UserRole) bool {
	for _, allowed := range domainRoles[domain] {
		if role == allowed {
			return true
		}
	}
	return false
}
