package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SQLStore persists the quiz domain over database/sql. It works unchanged
// on sqlite and postgres ($1 placeholders, JSON text columns for the list
// fields).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetCategory(ctx context.Context, id string) (Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,description,allowed_roles_json,created_at FROM categories WHERE id=$1`, id)
	return scanCategory(row)
}

func (s *SQLStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,description,allowed_roles_json,created_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutCategory(ctx context.Context, c Category) error {
	roles, err := json.Marshal(c.AllowedRoles)
	if err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO categories (id,name,description,allowed_roles_json,created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description,
		   allowed_roles_json=EXCLUDED.allowed_roles_json`,
		c.ID, c.Name, c.Description, string(roles), c.CreatedAt.Unix())
	return err
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	// questions cascade via FK; stats are cleaned up explicitly
	_, err = s.db.ExecContext(ctx, `DELETE FROM category_user_stats WHERE category_id=$1`, id)
	return err
}

func (s *SQLStore) CountQuestions(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE category_id=$1`, categoryID).Scan(&n)
	return n, err
}

func (s *SQLStore) ListByCategory(ctx context.Context, categoryID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,category_id,text,options_json,correct_answer,created_at
		 FROM questions WHERE category_id=$1 ORDER BY created_at, id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) Lookup(ctx context.Context, categoryID string) (map[string]Question, error) {
	qs, err := s.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Question, len(qs))
	for _, q := range qs {
		out[q.ID] = q
	}
	return out, nil
}

func (s *SQLStore) PutQuestions(ctx context.Context, qs []Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, q := range qs {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = time.Now()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id,category_id,text,options_json,correct_answer,created_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			q.ID, q.CategoryID, q.Text, string(opts), q.CorrectAnswer, q.CreatedAt.Unix()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET category_id=$1, text=$2, options_json=$3, correct_answer=$4 WHERE id=$5`,
		q.CategoryID, q.Text, string(opts), q.CorrectAnswer, q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) AppendResult(ctx context.Context, r Result) (Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}
	details, err := json.Marshal(r.WrongDetails)
	if err != nil {
		return Result{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id,username,user_role,category_id,category_name,total_questions,
		   correct_answers,wrong_answers,percentage,time_spent_sec,wrong_details_json,submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		r.ID, r.Username, r.UserRole, r.CategoryID, r.CategoryName, r.TotalQuestions,
		r.CorrectAnswers, r.WrongAnswers, r.Percentage, r.TimeSpentSeconds, string(details),
		r.SubmittedAt.Unix())
	if err != nil {
		return Result{}, err
	}
	return r, nil
}

func (s *SQLStore) ListResults(ctx context.Context, username, categoryID string) ([]Result, error) {
	// empty filter matches everything; keeps both drivers on one statement
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,username,user_role,category_id,category_name,total_questions,
		   correct_answers,wrong_answers,percentage,time_spent_sec,wrong_details_json,submitted_at
		 FROM results
		 WHERE ($1='' OR username=$1) AND ($2='' OR category_id=$2)
		 ORDER BY submitted_at DESC, id`, username, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		var details string
		var submitted int64
		if err := rows.Scan(&r.ID, &r.Username, &r.UserRole, &r.CategoryID, &r.CategoryName,
			&r.TotalQuestions, &r.CorrectAnswers, &r.WrongAnswers, &r.Percentage,
			&r.TimeSpentSeconds, &details, &submitted); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(details), &r.WrongDetails); err != nil {
			return nil, err
		}
		r.SubmittedAt = time.Unix(submitted, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetStat(ctx context.Context, categoryID, username string) (CategoryUserStat, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username,total_correct,total_questions,test_count,average_percentage,last_updated
		 FROM category_user_stats WHERE category_id=$1 AND username=$2`, categoryID, username)
	var st CategoryUserStat
	var updated int64
	err := row.Scan(&st.Username, &st.TotalCorrectAnswers, &st.TotalQuestions,
		&st.TestCount, &st.AveragePercentage, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return CategoryUserStat{}, false, nil
	}
	if err != nil {
		return CategoryUserStat{}, false, err
	}
	st.LastUpdated = time.Unix(updated, 0)
	return st, true, nil
}

func (s *SQLStore) PutStat(ctx context.Context, categoryID, username string, st CategoryUserStat) error {
	now := st.LastUpdated
	if now.IsZero() {
		now = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_user_stats
		   (category_id,username,total_correct,total_questions,test_count,average_percentage,last_updated,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (category_id,username) DO UPDATE SET
		   total_correct=EXCLUDED.total_correct, total_questions=EXCLUDED.total_questions,
		   test_count=EXCLUDED.test_count, average_percentage=EXCLUDED.average_percentage,
		   last_updated=EXCLUDED.last_updated`,
		categoryID, username, st.TotalCorrectAnswers, st.TotalQuestions, st.TestCount,
		st.AveragePercentage, now.Unix(), now.Unix())
	return err
}

func (s *SQLStore) ListStats(ctx context.Context, categoryID string) ([]CategoryUserStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username,total_correct,total_questions,test_count,average_percentage,last_updated
		 FROM category_user_stats WHERE category_id=$1 ORDER BY created_at, username`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryUserStat
	for rows.Next() {
		var st CategoryUserStat
		var updated int64
		if err := rows.Scan(&st.Username, &st.TotalCorrectAnswers, &st.TotalQuestions,
			&st.TestCount, &st.AveragePercentage, &updated); err != nil {
			return nil, err
		}
		st.LastUpdated = time.Unix(updated, 0)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,username,password_hash,role,created_at FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,username,password_hash,role,created_at FROM users WHERE username=$1`, username)
	return scanUser(row)
}

func (s *SQLStore) CreateUser(ctx context.Context, u User) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, u.Username).Scan(&exists)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id,username,password_hash,role,created_at) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt.Unix())
	return err
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,username,password_hash,role,created_at FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateUserRole(ctx context.Context, id, role string) (User, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role=$1 WHERE id=$2`, role, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrUserNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id,username,password_hash,role,created_at FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (s *SQLStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (Category, error) {
	var c Category
	var roles string
	var created int64
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &roles, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	if err := json.Unmarshal([]byte(roles), &c.AllowedRoles); err != nil {
		return Category{}, err
	}
	c.CreatedAt = time.Unix(created, 0)
	return c, nil
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var opts string
	var created int64
	if err := row.Scan(&q.ID, &q.CategoryID, &q.Text, &opts, &q.CorrectAnswer, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
		return Question{}, err
	}
	q.CreatedAt = time.Unix(created, 0)
	return q, nil
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}
