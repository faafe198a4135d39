package user

type UserOption func(*User)

func WithName(name string) UserOption {
	return func(u *User) {
		u.Name = name
	}
}

func WithEmail(email string) UserOption {
	return func(u *User) {
		u.Email = email
	}
}

func WithRole(role Role) UserOption {
	if role == "" {
		return nil
	}
	return func(u *User) {
		u.Role = role
	}
}

// WithPosition принимает пустую строку: так позиция очищается.
func WithPosition(position string) UserOption {
	return func(u *User) {
		u.Position = position
	}
}

func WithCategory(category Category) UserOption {
	return func(u *User) {
		u.Category = category
	}
}
