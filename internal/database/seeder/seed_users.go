package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-swap/internal/database"

	"github.com/google/uuid"
)

var seedNamespace = uuid.MustParse("5d0f2a0e-8f5b-4c43-9d49-3c2f7e1b6a11")

type DemoUser struct {
	UserName    string
	Email       string
	SkillString string
	Wants       []string
}

// UserID derives a stable id from the email so reseeding is idempotent.
func (u DemoUser) UserID() uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(strings.ToLower(strings.TrimSpace(u.Email))))
}

func (u DemoUser) RequirementID(position int) uuid.UUID {
	return uuid.NewSHA1(u.UserID(), []byte(fmt.Sprintf("requirement:%d", position)))
}

func DemoUsers() []DemoUser {
	return []DemoUser{
		{UserName: "alice", Email: "alice@example.com", SkillString: "Guitar, Cooking", Wants: []string{"Python"}},
		{UserName: "bob", Email: "bob@example.com", SkillString: "Python, the, Photography", Wants: []string{"Guitar"}},
		{UserName: "carol", Email: "carol@example.com", SkillString: "Spanish, Drums", Wants: []string{"Golang", "Photography"}},
		{UserName: "dave", Email: "dave@example.com", SkillString: "Go, Kubernetes", Wants: []string{"Spanish"}},
		{UserName: "erin", Email: "erin@example.com", SkillString: "Knitting", Wants: []string{}},
	}
}

type UsersSeeder struct {
	Users []DemoUser
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "user_name", "email", "skill_string"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skill_requirements", "id", "user_id", "name", "position"); err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, u := range s.Users {
			if err := upsertDemoUser(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertDemoUser(ctx context.Context, tx database.Tx, u DemoUser) error {
	id := u.UserID()
	_, err := tx.Exec(
		ctx,
		`INSERT INTO users (id, user_name, email, skill_string)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET user_name = EXCLUDED.user_name, skill_string = EXCLUDED.skill_string, updated_at = now()`,
		id,
		u.UserName,
		u.Email,
		u.SkillString,
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Email, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM skill_requirements WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("reset requirements %s: %w", u.Email, err)
	}
	for i, name := range u.Wants {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skill_requirements (id, user_id, name, position) VALUES ($1, $2, $3, $4)`,
			u.RequirementID(i),
			id,
			name,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert requirement %s/%s: %w", u.Email, name, err)
		}
	}
	return nil
}
