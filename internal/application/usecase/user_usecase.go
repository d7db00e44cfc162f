package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// UserUseCase aplica reglas de negocio para usuarios.
// La cuenta raíz (rootAdminEmail) no se puede eliminar, degradar ni desactivar.
type UserUseCase struct {
	repo           repository.UserRepository
	rootAdminEmail string
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, rootAdminEmail string) *UserUseCase {
	return &UserUseCase{repo: repo, rootAdminEmail: NormalizeEmail(rootAdminEmail)}
}

// List lista usuarios ordenados por nombre.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, *dto.Pagination, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, dto.NewPagination(page, total), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Create crea un usuario con el rol indicado (usuario por defecto).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUsuario
	}
	user, err := NewUser(in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, userError(err)
	}
	return ToUserResponse(user), nil
}

// Update actualiza los campos enviados. Password vacío conserva el hash actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	root := uc.IsRootAdmin(user)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		if root && email != user.Email {
			return nil, domain.ErrProtectedUser
		}
		user.Email = email
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleUsuario {
			return nil, domain.ErrInvalidInput
		}
		if root && *in.Role != entity.RoleAdmin {
			return nil, domain.ErrProtectedUser
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		if root && !*in.Active {
			return nil, domain.ErrProtectedUser
		}
		user.Active = *in.Active
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, userError(err)
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario. actorID es el usuario autenticado que realiza la operación.
func (uc *UserUseCase) Delete(ctx context.Context, id, actorID string) error {
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if uc.IsRootAdmin(user) {
		return domain.ErrProtectedUser
	}
	if user.ID == actorID {
		return domain.ErrSelfDelete
	}
	return uc.repo.Delete(ctx, user.ID)
}

// IsRootAdmin indica si u es la cuenta administradora principal.
func (uc *UserUseCase) IsRootAdmin(u *entity.User) bool {
	return u != nil && uc.rootAdminEmail != "" && u.Email == uc.rootAdminEmail
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	if !isValidID(id) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// NewUser valida los datos y construye un usuario activo con el password hasheado (bcrypt).
func NewUser(name, email, password, role string) (*entity.User, error) {
	name, email = strings.TrimSpace(name), NormalizeEmail(email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if role != entity.RoleAdmin && role != entity.RoleUsuario {
		return nil, domain.ErrInvalidInput
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HashPassword valida la longitud mínima y genera el hash bcrypt (costo 10).
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail pasa a minúsculas y quita espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userError(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

// ToUserResponse convierte la entidad en DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
