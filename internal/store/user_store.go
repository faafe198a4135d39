package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"officeHub/internal/logger"
	"officeHub/internal/models/user"
	repo "officeHub/internal/repository"
	"officeHub/internal/repository/collection"

	"go.uber.org/zap"
)

// session - сохраняемое состояние входа.
type session struct {
	UserID          string `json:"userId"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// UserStore владеет списком сотрудников и текущей сессией.
type UserStore struct {
	users    *collection.Collection[user.User]
	slot     repo.Slot
	password string
	session  session
	sessMtx  *sync.RWMutex
	writeMtx *sync.Mutex
	opts     options
}

// NewUserStore создаёт хранилище; password - единый пароль-заглушка для входа.
func NewUserStore(slot repo.Slot, password string, opts ...Option) *UserStore {
	return &UserStore{
		users:    collection.New[user.User](repo.SlotUsers, slot),
		slot:     slot,
		password: password,
		sessMtx:  &sync.RWMutex{},
		writeMtx: &sync.Mutex{},
		opts:     newOptions(opts),
	}
}

// Load читает пользователей и сессию из слотов; пустой слот пользователей заполняется seed.
func (s *UserStore) Load(ctx context.Context, seed []user.User) error {
	if err := s.users.Load(ctx, seed); err != nil {
		return fmt.Errorf("загрузка пользователей: %w", err)
	}

	payload, ok, err := s.slot.Load(ctx, repo.SlotSession)
	if err != nil {
		return fmt.Errorf("чтение сессии: %w", err)
	}
	if !ok {
		return nil
	}

	var sess session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return fmt.Errorf("разбор сессии: %w", err)
	}

	s.sessMtx.Lock()
	s.session = sess
	s.sessMtx.Unlock()
	return nil
}

// Login - заглушка: пользователь с таким email существует и пароль совпал с единым паролем.
// При неудаче состояние сессии не меняется.
func (s *UserStore) Login(ctx context.Context, email, password string) (bool, error) {
	u, ok := s.users.Find(func(u user.User) bool { return u.Email == email })
	if !ok || password != s.password {
		logger.Info("Store: Неудачная попытка входа", zap.String("email", email))
		return false, nil
	}

	if err := s.setSession(ctx, session{UserID: u.ID, IsAuthenticated: true}); err != nil {
		return false, err
	}
	logger.Info("Store: Пользователь вошёл", zap.String("user_id", u.ID))
	return true, nil
}

func (s *UserStore) Logout(ctx context.Context) error {
	if err := s.setSession(ctx, session{}); err != nil {
		return err
	}
	logger.Info("Store: Пользователь вышел")
	return nil
}

// CurrentUser возвращает вошедшего пользователя. Удалённый пользователь считается вышедшим.
func (s *UserStore) CurrentUser() (user.User, bool) {
	s.sessMtx.RLock()
	sess := s.session
	s.sessMtx.RUnlock()

	if !sess.IsAuthenticated {
		return user.User{}, false
	}
	return s.users.Get(sess.UserID)
}

func (s *UserStore) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

func (s *UserStore) AddUser(ctx context.Context, u user.User) (user.User, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	id, err := s.opts.newID()
	if err != nil {
		return user.User{}, fmt.Errorf("генерация id: %w", err)
	}
	u.ID = id

	if err := validate(u); err != nil {
		return user.User{}, err
	}
	if s.EmailInUse(u.Email, "") {
		return user.User{}, NewAlreadyExists(ResourceUser, "email", u.Email)
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return user.User{}, mutationError(ResourceUser, u.ID, err)
	}

	logger.Info("Store: Пользователь добавлен", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// UpdateUser применяет только переданные поля; nil-опции пропускаются.
func (s *UserStore) UpdateUser(ctx context.Context, id string, patch ...user.UserOption) (user.User, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	next, ok := s.users.Get(id)
	if !ok {
		logger.Info("Store: Пользователь не найден", zap.String("target_id", id))
		return user.User{}, NewNotFound(ResourceUser, id)
	}

	for _, opt := range patch {
		if opt != nil {
			opt(&next)
		}
	}
	next.ID = id

	if err := validate(next); err != nil {
		return user.User{}, err
	}
	if s.EmailInUse(next.Email, id) {
		return user.User{}, NewAlreadyExists(ResourceUser, "email", next.Email)
	}

	updated, err := s.users.Update(ctx, id, func(u *user.User) error {
		*u = next
		return nil
	})
	if err != nil {
		return user.User{}, mutationError(ResourceUser, id, err)
	}

	logger.Info("Store: Пользователь обновлён", zap.String("user_id", id))
	return updated, nil
}

// RemoveUser не затрагивает проекты, задачи и сообщения, ссылающиеся на пользователя.
func (s *UserStore) RemoveUser(ctx context.Context, id string) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	if err := s.users.Delete(ctx, id); err != nil {
		return mutationError(ResourceUser, id, err)
	}
	logger.Info("Store: Пользователь удалён", zap.String("user_id", id))
	return nil
}

func (s *UserStore) GetUserByID(id string) (user.User, bool) {
	return s.users.Get(id)
}

func (s *UserStore) GetUserByEmail(email string) (user.User, bool) {
	return s.users.Find(func(u user.User) bool { return u.Email == email })
}

func (s *UserStore) ListUsers() []user.User {
	return s.users.List()
}

func (s *UserStore) ListEmployees() []user.User {
	return s.users.Filter(func(u user.User) bool { return u.Role == user.RoleEmployee })
}

// EmailInUse сравнивает email без учёта регистра; exceptID исключает самого пользователя.
func (s *UserStore) EmailInUse(email, exceptID string) bool {
	_, ok := s.users.Find(func(u user.User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
	return ok
}

func (s *UserStore) setSession(ctx context.Context, sess session) error {
	s.sessMtx.Lock()
	defer s.sessMtx.Unlock()

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("сериализация сессии: %w", err)
	}
	if err := s.slot.Save(ctx, repo.SlotSession, payload); err != nil {
		logger.Warn("Store: Не удалось сохранить сессию", zap.Error(err))
		return NewPersistenceError(ResourceUser, err)
	}

	s.session = sess
	return nil
}
