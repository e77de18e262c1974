package restapi

import (
	"context"
	"fmt"

	"github.com/courati/console/core/level"
	"github.com/courati/console/upstream"
)

const levelsPath = "/api/auth/admin/levels/"

type LevelRepository struct {
	client *upstream.Client
}

var _ level.Repository = (*LevelRepository)(nil)

func NewLevelRepository(client *upstream.Client) *LevelRepository {
	return &LevelRepository{client: client}
}

func (repo *LevelRepository) Query(ctx context.Context, filter level.ListFilter) ([]level.Level, error) {
	body, err := repo.client.Get(ctx, levelsPath, filter.Values())
	if err != nil {
		return nil, err
	}
	var levels []level.Level
	// this endpoint has been seen returning {results}, {levels} and a bare array
	err = upstream.UnmarshalList(body, &levels, "results", "levels")
	return levels, err
}

func (repo *LevelRepository) Get(ctx context.Context, id int) (level.Level, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", levelsPath, id), nil)
	if err != nil {
		return level.Level{}, err
	}
	var lvl level.Level
	err = upstream.UnmarshalObject(body, &lvl, "level")
	return lvl, err
}

func (repo *LevelRepository) Create(ctx context.Context, nl level.NewLevel) (level.Level, error) {
	body, err := repo.client.Post(ctx, levelsPath, nl)
	if err != nil {
		return level.Level{}, err
	}
	var lvl level.Level
	err = upstream.UnmarshalObject(body, &lvl, "level")
	return lvl, err
}

func (repo *LevelRepository) Update(ctx context.Context, id int, ul level.UpdateLevel) (level.Level, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", levelsPath, id), ul)
	if err != nil {
		return level.Level{}, err
	}
	var lvl level.Level
	err = upstream.UnmarshalObject(body, &lvl, "level")
	return lvl, err
}

func (repo *LevelRepository) Delete(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", levelsPath, id))
	return err
}
