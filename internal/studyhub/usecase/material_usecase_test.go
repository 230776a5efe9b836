package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	studydomain "campusbuddy-backend/internal/studyhub/domain"
	studydto "campusbuddy-backend/internal/studyhub/dto"
	"campusbuddy-backend/pkg/votes"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeMaterialRepo mirrors the repository's vote semantics in memory.
type fakeMaterialRepo struct {
	materials map[string]*studydomain.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: map[string]*studydomain.Material{}}
}

func (f *fakeMaterialRepo) Create(ctx context.Context, material *studydomain.Material) error {
	material.ID = primitive.NewObjectID()
	material.CreatedAt = time.Now()
	material.UpdatedAt = material.CreatedAt
	if material.Votes == nil {
		material.Votes = map[string]int{}
	}
	f.materials[material.ID.Hex()] = material
	return nil
}

func (f *fakeMaterialRepo) FindByID(ctx context.Context, id string) (*studydomain.Material, error) {
	if m, ok := f.materials[id]; ok {
		return m, nil
	}
	return nil, studydomain.ErrNotFound
}

func (f *fakeMaterialRepo) List(ctx context.Context, filter studydomain.Filter, skip, limit int64) ([]*studydomain.Material, int64, error) {
	var out []*studydomain.Material
	for _, m := range f.materials {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaterialRepo) Update(ctx context.Context, id string, set bson.M) (*studydomain.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, studydomain.ErrNotFound
	}
	if title, ok := set["title"].(string); ok {
		m.Title = title
	}
	m.UpdatedAt = time.Now()
	return m, nil
}

func (f *fakeMaterialRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.materials[id]; !ok {
		return studydomain.ErrNotFound
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeMaterialRepo) ApplyVote(ctx context.Context, id, userID string, direction int) (*studydomain.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, studydomain.ErrNotFound
	}

	next, delta := votes.Delta(m.Votes[userID], direction)
	if next == 0 {
		delete(m.Votes, userID)
	} else {
		m.Votes[userID] = next
	}
	m.VoteCount += delta
	return m, nil
}

func voter(name string) *authdomain.User {
	return &authdomain.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: name + "@x.com",
		Role:  authdomain.RoleStudent,
	}
}

func newMaterial(t *testing.T, uc MaterialUsecase, owner *authdomain.User) *studydomain.Material {
	t.Helper()
	material, err := uc.Create(context.Background(), owner, &studydto.CreateMaterialRequest{
		Title:    "Calc II Notes",
		Subject:  "calculus",
		FileURL:  "/uploads/materials/abc.pdf",
		FileName: "notes.pdf",
		FileSize: 1024,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	return material
}

func TestVoteToggleOff(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := NewMaterialUsecase(repo, nil)
	ctx := context.Background()
	material := newMaterial(t, uc, voter("owner"))
	u := voter("reader")

	voted, err := uc.Vote(ctx, u, material.ID.Hex(), "up")
	if err != nil {
		t.Fatalf("vote error: %v", err)
	}
	if voted.VoteCount != 1 {
		t.Fatalf("expected count 1 after upvote, got %d", voted.VoteCount)
	}

	// Same direction again removes the vote: one below the single-vote state.
	voted, err = uc.Vote(ctx, u, material.ID.Hex(), "up")
	if err != nil {
		t.Fatalf("second vote error: %v", err)
	}
	if voted.VoteCount != 0 {
		t.Fatalf("expected count 0 after toggle, got %d", voted.VoteCount)
	}
}

func TestVoteSwitchDirection(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := NewMaterialUsecase(repo, nil)
	ctx := context.Background()
	material := newMaterial(t, uc, voter("owner"))
	u := voter("reader")

	if _, err := uc.Vote(ctx, u, material.ID.Hex(), "down"); err != nil {
		t.Fatalf("vote error: %v", err)
	}
	voted, err := uc.Vote(ctx, u, material.ID.Hex(), "up")
	if err != nil {
		t.Fatalf("switch vote error: %v", err)
	}
	if voted.VoteCount != 1 {
		t.Fatalf("expected count 1 after switch, got %d", voted.VoteCount)
	}
}

func TestVotesAccumulateAcrossUsers(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := NewMaterialUsecase(repo, nil)
	ctx := context.Background()
	material := newMaterial(t, uc, voter("owner"))

	for _, name := range []string{"a", "b", "c"} {
		if _, err := uc.Vote(ctx, voter(name), material.ID.Hex(), "up"); err != nil {
			t.Fatalf("vote error: %v", err)
		}
	}
	if _, err := uc.Vote(ctx, voter("d"), material.ID.Hex(), "down"); err != nil {
		t.Fatalf("vote error: %v", err)
	}

	stored, _ := repo.FindByID(ctx, material.ID.Hex())
	if stored.VoteCount != 2 {
		t.Fatalf("expected count 2, got %d", stored.VoteCount)
	}
}

func TestVoteBadDirection(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := NewMaterialUsecase(repo, nil)
	material := newMaterial(t, uc, voter("owner"))

	_, err := uc.Vote(context.Background(), voter("reader"), material.ID.Hex(), "sideways")
	if !errors.Is(err, studydomain.ErrBadVoteDirection) {
		t.Fatalf("expected ErrBadVoteDirection, got %v", err)
	}
}

func TestUpdateByNonOwner(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := NewMaterialUsecase(repo, nil)
	ctx := context.Background()
	material := newMaterial(t, uc, voter("owner"))

	_, err := uc.Update(ctx, voter("intruder"), material.ID.Hex(), &studydto.UpdateMaterialRequest{
		Title:   "Hijacked",
		Subject: "calculus",
	})
	if !errors.Is(err, studydomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored, _ := repo.FindByID(ctx, material.ID.Hex())
	if stored.Title != "Calc II Notes" {
		t.Fatalf("material mutated by non-owner")
	}
}
