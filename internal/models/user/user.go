package user

type User struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Email    string   `json:"email" yaml:"email" validate:"required,email"`
	Role     Role     `json:"role" yaml:"role" validate:"oneof=founder employee"`
	Position string   `json:"position,omitempty" yaml:"position,omitempty"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty" validate:"omitempty,oneof=Intern Full-Time Part-Time Contractor"`
}

type Role string
type Category string

const RoleFounder Role = "founder"
const RoleEmployee Role = "employee"

const CategoryIntern Category = "Intern"
const CategoryFullTime Category = "Full-Time"
const CategoryPartTime Category = "Part-Time"
const CategoryContractor Category = "Contractor"

func (u User) GetID() string {
	return u.ID
}

func (u User) Clone() User {
	return u
}

func (u User) IsFounder() bool {
	return u.Role == RoleFounder
}
