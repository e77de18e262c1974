package dummyapi

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core/level"
)

type LevelRepository struct {
	api *API
}

var _ level.Repository = (*LevelRepository)(nil)

func NewLevelRepository(api *API) *LevelRepository {
	return &LevelRepository{api: api}
}

func (repo *LevelRepository) Seed(levels ...level.Level) []level.Level {
	repo.api.levels.Lock()
	defer repo.api.levels.Unlock()

	out := make([]level.Level, 0, len(levels))
	for _, lvl := range levels {
		lvl := lvl
		repo.api.levels.seq++
		lvl.ID = repo.api.levels.seq
		repo.api.levels.table[lvl.ID] = &lvl
		out = append(out, lvl)
	}
	return out
}

func (repo *LevelRepository) Query(ctx context.Context, filter level.ListFilter) ([]level.Level, error) {
	repo.api.levels.RLock()
	defer repo.api.levels.RUnlock()

	levels := make([]level.Level, 0, len(repo.api.levels.table))
	for _, lvl := range repo.api.levels.table {
		if matches(filter.Search, lvl.Code, lvl.Name) {
			levels = append(levels, *lvl)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Order < levels[j].Order })
	return levels, nil
}

func (repo *LevelRepository) Get(ctx context.Context, id int) (level.Level, error) {
	repo.api.levels.RLock()
	defer repo.api.levels.RUnlock()

	if lvl, ok := repo.api.levels.table[id]; ok {
		return *lvl, nil
	}
	return level.Level{}, notFound("Niveau introuvable.")
}

func (repo *LevelRepository) Create(ctx context.Context, nl level.NewLevel) (level.Level, error) {
	repo.api.levels.Lock()
	defer repo.api.levels.Unlock()

	repo.api.levels.seq++
	lvl := level.Level{
		ID:          repo.api.levels.seq,
		Code:        nl.Code,
		Name:        nl.Name,
		Order:       nl.Order,
		Description: null.NewString(nl.Description, nl.Description != ""),
	}
	repo.api.levels.table[lvl.ID] = &lvl
	return lvl, nil
}

func (repo *LevelRepository) Update(ctx context.Context, id int, ul level.UpdateLevel) (level.Level, error) {
	repo.api.levels.Lock()
	defer repo.api.levels.Unlock()

	lvl, ok := repo.api.levels.table[id]
	if !ok {
		return level.Level{}, notFound("Niveau introuvable.")
	}
	if ul.Code != "" {
		lvl.Code = ul.Code
	}
	if ul.Name != "" {
		lvl.Name = ul.Name
	}
	if ul.Order != nil {
		lvl.Order = *ul.Order
	}
	if ul.Description != "" {
		lvl.Description = null.StringFrom(ul.Description)
	}
	return *lvl, nil
}

func (repo *LevelRepository) Delete(ctx context.Context, id int) error {
	repo.api.levels.Lock()
	defer repo.api.levels.Unlock()

	if _, ok := repo.api.levels.table[id]; !ok {
		return notFound("Niveau introuvable.")
	}
	delete(repo.api.levels.table, id)
	return nil
}
