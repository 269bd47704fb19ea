package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Mentor
	RoleMentor = "mentor:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner}
	MentorRoles  = []string{RoleMentor}
	StudentRoles = []string{RoleStudent}
	AllRoles     = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Mentors: 20 - 11
		RoleMentor: 11,

		// Students: 10 - 1
		RoleStudent: 1,
	}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Mentor", Value: RoleMentor},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 4)
	all = append(all, AdminRoles...)
	all = append(all, MentorRoles...)
	all = append(all, StudentRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url"`
	IsActive     *bool     `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool   { return u.RoleStartsWith(RoleAdmin) }
func (u *User) IsMentor() bool  { return u.RoleStartsWith(RoleMentor) }
func (u *User) IsStudent() bool { return u.RoleStartsWith(RoleStudent) }

// StudentProfile carries the academic details a student fills in once signed up.
type StudentProfile struct {
	UserID         string    `json:"user_id"`
	Grade          string    `json:"grade"`
	Interests      []string  `json:"interests"`
	PreferredField string    `json:"preferred_field"`
	AcademicGoal   string    `json:"academic_goal"`
	Location       string    `json:"location"`
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

type (
	NewUser struct {
		Name     string   `json:"name"`
		Username string   `json:"username" validate:"omitempty,alphanum_"`
		Email    string   `json:"email" validate:"omitempty,email"`
		Password string   `json:"password" validate:"required"`
		Roles    []string `json:"roles" validate:"omitempty,allroles"`
	}

	UpdateUser struct {
		Name     string   `json:"name"`
		Username string   `json:"username" validate:"omitempty,alphanum_"`
		Email    string   `json:"email" validate:"omitempty,email"`
		Password string   `json:"password"`
		IsActive *bool    `json:"is_active"`
		Roles    []string `json:"roles" validate:"omitempty,allroles"`
	}

	ResetUserPassword struct {
		UID             string `json:"uid" validate:"required"`
		Token           string `json:"token" validate:"required"`
		Password        string `json:"password" validate:"required"`
		PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	}

	QueryFilter struct {
		Search   string   `json:"search" query:"search"`
		Roles    []string `json:"roles" query:"role"`
		IsActive *bool    `json:"is_active" query:"is_active"`
	}
)

func (f *QueryFilter) Clean() {
	f.Search = strings.TrimSpace(f.Search)
}
