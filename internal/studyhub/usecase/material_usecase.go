package usecase

import (
	"context"

	authdomain "campusbuddy-backend/internal/auth/domain"
	studydomain "campusbuddy-backend/internal/studyhub/domain"
	studydto "campusbuddy-backend/internal/studyhub/dto"
	"campusbuddy-backend/internal/studyhub/repository"
	"campusbuddy-backend/pkg/paging"
	"campusbuddy-backend/pkg/upload"
	"campusbuddy-backend/pkg/votes"

	"go.mongodb.org/mongo-driver/bson"
)

// MaterialUsecase owns study material CRUD and voting.
type MaterialUsecase interface {
	List(ctx context.Context, filter studydomain.Filter, page paging.Params) ([]*studydomain.Material, int64, error)
	Get(ctx context.Context, id string) (*studydomain.Material, error)
	Create(ctx context.Context, user *authdomain.User, req *studydto.CreateMaterialRequest) (*studydomain.Material, error)
	Update(ctx context.Context, user *authdomain.User, id string, req *studydto.UpdateMaterialRequest) (*studydomain.Material, error)
	Delete(ctx context.Context, user *authdomain.User, id string) error
	Vote(ctx context.Context, user *authdomain.User, id, direction string) (*studydomain.Material, error)
}

type materialUsecase struct {
	materialRepo repository.MaterialRepository
	files        *upload.Store
}

func NewMaterialUsecase(materialRepo repository.MaterialRepository, files *upload.Store) MaterialUsecase {
	return &materialUsecase{
		materialRepo: materialRepo,
		files:        files,
	}
}

func (u *materialUsecase) List(ctx context.Context, filter studydomain.Filter, page paging.Params) ([]*studydomain.Material, int64, error) {
	return u.materialRepo.List(ctx, filter, page.Skip(), int64(page.Limit))
}

func (u *materialUsecase) Get(ctx context.Context, id string) (*studydomain.Material, error) {
	return u.materialRepo.FindByID(ctx, id)
}

func (u *materialUsecase) Create(ctx context.Context, user *authdomain.User, req *studydto.CreateMaterialRequest) (*studydomain.Material, error) {
	material := &studydomain.Material{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Semester:    req.Semester,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		Author:      user.Snapshot(),
	}

	if err := u.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (u *materialUsecase) Update(ctx context.Context, user *authdomain.User, id string, req *studydto.UpdateMaterialRequest) (*studydomain.Material, error) {
	material, err := u.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(material.Author) {
		return nil, studydomain.ErrNotFound
	}

	return u.materialRepo.Update(ctx, id, bson.M{
		"title":       req.Title,
		"description": req.Description,
		"subject":     req.Subject,
		"semester":    req.Semester,
	})
}

// Delete removes the record and best-effort unlinks the stored file.
func (u *materialUsecase) Delete(ctx context.Context, user *authdomain.User, id string) error {
	material, err := u.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(material.Author) {
		return studydomain.ErrNotFound
	}

	if err := u.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	u.files.Remove(material.FileURL)
	return nil
}

func (u *materialUsecase) Vote(ctx context.Context, user *authdomain.User, id, direction string) (*studydomain.Material, error) {
	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}
	return u.materialRepo.ApplyVote(ctx, id, user.ID.Hex(), dir)
}

func parseDirection(direction string) (int, error) {
	switch direction {
	case "up":
		return votes.Up, nil
	case "down":
		return votes.Down, nil
	default:
		return 0, studydomain.ErrBadVoteDirection
	}
}
