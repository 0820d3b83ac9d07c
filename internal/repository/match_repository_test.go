package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"skill-swap/internal/domain/matching"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func TestMatchKey_Reversed(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	k := MatchKey{User1: a, User2: b, Skill1: "python", Skill2: "guitar", Score: 1}
	want := MatchKey{User1: b, User2: a, Skill1: "guitar", Skill2: "python", Score: 1}
	if diff := cmp.Diff(want, k.Reversed()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPostgresMatchRepository_ExistsChecksBothOrderings(t *testing.T) {
	db := &fakeDB{row: fakeRow{vals: []any{true}}}
	r := NewPostgresMatchRepository(db)

	a, b := uuid.New(), uuid.New()
	ok, err := r.Exists(context.Background(), MatchKey{User1: a, User2: b, Skill1: "python", Skill2: "guitar", Score: 0.9})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ok {
		t.Fatalf("expected exists")
	}

	args := db.args[0]
	want := []any{a, b, "python", "guitar", 0.9, b, a, "guitar", "python"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestPostgresMatchRepository_CreateConflictIsNotCreated(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	r := NewPostgresMatchRepository(db)

	_, created, err := r.Create(context.Background(), MatchKey{User1: uuid.New(), User2: uuid.New(), Skill1: "a", Skill2: "b", Score: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created {
		t.Fatalf("expected created=false on conflict")
	}
	if !strings.Contains(db.queries[0], "ON CONFLICT") || !strings.Contains(db.queries[0], "false, false") {
		t.Fatalf("unexpected insert: %s", db.queries[0])
	}
}

func TestPostgresMatchRepository_Create(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{row: fakeRow{vals: []any{id}}}
	r := NewPostgresMatchRepository(db)

	got, created, err := r.Create(context.Background(), MatchKey{User1: uuid.New(), User2: uuid.New(), Skill1: "a", Skill2: "b", Score: 1})
	if err != nil || !created || got != id {
		t.Fatalf("unexpected result id=%v created=%v err=%v", got, created, err)
	}

	if _, _, err := r.Create(context.Background(), MatchKey{}); err == nil {
		t.Fatalf("expected error for empty user ids")
	}
}

func TestPostgresMatchRepository_CreateStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewPostgresMatchRepository(&fakeDB{row: fakeRow{err: boom}})

	_, _, err := r.Create(context.Background(), MatchKey{User1: uuid.New(), User2: uuid.New()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestPostgresMatchRepository_ListByUser(t *testing.T) {
	u, v := uuid.New(), uuid.New()
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeDB{rows: [][]any{{id, u, v, "python", "guitar", 1.0, false, false, created}}}
	r := NewPostgresMatchRepository(db)

	got, err := r.ListByUser(context.Background(), u, 0, -1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != id || got[0].Skill1 != "python" || !got[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if db.args[0][1] != 50 || db.args[0][2] != 0 {
		t.Fatalf("expected default paging, got %v", db.args[0])
	}
}

func TestPostgresMatchRepository_GetByIDNotFound(t *testing.T) {
	r := NewPostgresMatchRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	if _, err := r.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestPostgresUserDirectory_ListUsers(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	r1, r2 := uuid.New(), uuid.New()
	py, gt := "Python", "Guitar"
	db := &fakeDB{rows: [][]any{
		{u1, "Guitar", &r1, &py},
		{u1, "Guitar", &r2, &gt},
		{u2, "", nil, nil},
	}}

	got, err := NewPostgresUserDirectory(db).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []matching.UserSnapshot{
		{ID: u1, OfferedSkillsRaw: "Guitar", RequiredSkills: []matching.RequiredSkill{{ID: r1, Name: "Python"}, {ID: r2, Name: "Guitar"}}},
		{ID: u2, OfferedSkillsRaw: "", RequiredSkills: []matching.RequiredSkill{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPostgresUserDirectory_QueryError(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewPostgresUserDirectory(&fakeDB{queryErr: boom}).ListUsers(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
