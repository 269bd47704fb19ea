package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/user"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	AvatarURL    string         `db:"avatar_url"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    null.Time      `db:"created_at"`
	UpdatedAt    null.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (r userRow) toUser() user.User {
	active := r.IsActive
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		AvatarURL:    r.AvatarURL,
		IsActive:     &active,
		Roles:        r.Roles,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
		LastLogin:    r.LastLogin.Time,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	excludedIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		excludedIDs = append(excludedIDs, usr.ID)
	}

	var rows []userRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, username, email FROM "user"
		 WHERE (lower(username) = lower($1) OR lower(email) = lower($2))
		   AND NOT (id = ANY($3))`,
		username, email, pq.Array(excludedIDs),
	)
	if err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}

	for _, row := range rows {
		if strings.EqualFold(row.Username, username) {
			return user.ErrUsernameExists
		}
		if strings.EqualFold(row.Email, email) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	isActive := usr.IsActive == nil || *usr.IsActive

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO "user" (id, name, username, email, avatar_url, is_active, roles, password_hash, created_at, updated_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.AvatarURL, isActive,
		pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
		null.NewTime(usr.LastLogin, !usr.LastLogin.IsZero()),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) getUser(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.getUser(ctx, `SELECT * FROM "user" WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	return repo.getUser(ctx,
		`SELECT * FROM "user" WHERE lower(username) = lower($1) OR lower(email) = lower($1)`, username)
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	query := `SELECT * FROM "user"`
	var (
		clauses []string
		args    []interface{}
	)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, "(name ILIKE $1 OR username ILIKE $1 OR email ILIKE $1)")
	}
	if len(filter.Roles) > 0 {
		patterns := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			patterns = append(patterns, role+"%")
		}
		args = append(args, pq.Array(patterns))
		clauses = append(clauses, sqlxIndexed("EXISTS (SELECT 1 FROM unnest(roles) r WHERE r LIKE ANY(?))", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, sqlxIndexed("is_active = ?", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += orderBy(ordering, "created_at DESC")

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}

	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// UpdateUser only overwrites set fields; zero-valued fields on usr are left
// untouched in the row.
func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	orig, err := repo.GetUserByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, err
	}

	if usr.Name != "" {
		orig.Name = usr.Name
	}
	if usr.Username != "" {
		orig.Username = usr.Username
	}
	if usr.Email != "" {
		orig.Email = usr.Email
	}
	if usr.AvatarURL != "" {
		orig.AvatarURL = usr.AvatarURL
	}
	if usr.Roles != nil {
		orig.Roles = usr.Roles
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if isActive != nil {
		orig.IsActive = isActive
	}
	if !usr.UpdatedAt.IsZero() {
		orig.UpdatedAt = usr.UpdatedAt
	}
	if !usr.LastLogin.IsZero() {
		orig.LastLogin = usr.LastLogin
	}

	_, err = repo.db.ExecContext(ctx,
		`UPDATE "user"
		 SET name = $2, username = $3, email = $4, avatar_url = $5, is_active = $6,
		     roles = $7, password_hash = $8, updated_at = $9, last_login = $10
		 WHERE id = $1`,
		orig.ID, orig.Name, orig.Username, orig.Email, orig.AvatarURL, *orig.IsActive,
		pq.Array(orig.Roles), orig.PasswordHash, orig.UpdatedAt,
		null.NewTime(orig.LastLogin, !orig.LastLogin.IsZero()),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return orig, nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = ANY($1)`, pq.Array(ids))
	return errors.Wrap(err, "deleting users")
}

type studentProfileRow struct {
	UserID         string         `db:"user_id"`
	Grade          string         `db:"grade"`
	Interests      pq.StringArray `db:"interests"`
	PreferredField string         `db:"preferred_field"`
	AcademicGoal   string         `db:"academic_goal"`
	Location       string         `db:"location"`
	UpdatedAt      null.Time      `db:"updated_at"`
}

func (repo *userRepository) GetStudentProfile(ctx context.Context, userID string) (user.StudentProfile, error) {
	var row studentProfileRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM student_profile WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.StudentProfile{}, user.ErrNotFound
		}
		return user.StudentProfile{}, errors.Wrap(err, "getting student profile")
	}
	return user.StudentProfile{
		UserID:         row.UserID,
		Grade:          row.Grade,
		Interests:      row.Interests,
		PreferredField: row.PreferredField,
		AcademicGoal:   row.AcademicGoal,
		Location:       row.Location,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}

func (repo *userRepository) UpsertStudentProfile(ctx context.Context, profile user.StudentProfile) (user.StudentProfile, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO student_profile (user_id, grade, interests, preferred_field, academic_goal, location, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE
		 SET grade = EXCLUDED.grade, interests = EXCLUDED.interests,
		     preferred_field = EXCLUDED.preferred_field, academic_goal = EXCLUDED.academic_goal,
		     location = EXCLUDED.location, updated_at = EXCLUDED.updated_at`,
		profile.UserID, profile.Grade, pq.Array(profile.Interests),
		profile.PreferredField, profile.AcademicGoal, profile.Location, profile.UpdatedAt,
	)
	if err != nil {
		return user.StudentProfile{}, errors.Wrap(err, "upserting student profile")
	}
	return profile, nil
}
