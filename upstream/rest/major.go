package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/major"
	"github.com/courati/console/upstream"
)

const majorsPath = "/api/auth/admin/majors/"

type MajorRepository struct {
	client *upstream.Client
}

var _ major.Repository = (*MajorRepository)(nil)

func NewMajorRepository(client *upstream.Client) *MajorRepository {
	return &MajorRepository{client: client}
}

func (repo *MajorRepository) Query(ctx context.Context, filter major.ListFilter) ([]major.Major, error) {
	body, err := repo.client.Get(ctx, majorsPath, filter.Values())
	if err != nil {
		return nil, err
	}
	var majors []major.Major
	err = upstream.UnmarshalList(body, &majors, "results", "majors")
	return majors, err
}

func (repo *MajorRepository) Get(ctx context.Context, id int) (major.Major, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", majorsPath, id), nil)
	if err != nil {
		return major.Major{}, err
	}
	var mjr major.Major
	err = upstream.UnmarshalObject(body, &mjr, "major")
	return mjr, err
}

func (repo *MajorRepository) Create(ctx context.Context, nm major.NewMajor) (major.Major, error) {
	body, err := repo.client.Post(ctx, majorsPath, nm)
	if err != nil {
		return major.Major{}, err
	}
	var mjr major.Major
	err = upstream.UnmarshalObject(body, &mjr, "major")
	return mjr, err
}

func (repo *MajorRepository) Update(ctx context.Context, id int, um major.UpdateMajor) (major.Major, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", majorsPath, id), um)
	if err != nil {
		return major.Major{}, err
	}
	var mjr major.Major
	err = upstream.UnmarshalObject(body, &mjr, "major")
	return mjr, err
}

func (repo *MajorRepository) Delete(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", majorsPath, id))
	return err
}
