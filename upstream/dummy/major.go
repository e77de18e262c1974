package dummyapi

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core/major"
)

type MajorRepository struct {
	api *API
}

var _ major.Repository = (*MajorRepository)(nil)

func NewMajorRepository(api *API) *MajorRepository {
	return &MajorRepository{api: api}
}

func (repo *MajorRepository) Seed(majors ...major.Major) []major.Major {
	repo.api.majors.Lock()
	defer repo.api.majors.Unlock()

	out := make([]major.Major, 0, len(majors))
	for _, mjr := range majors {
		mjr := mjr
		repo.api.majors.seq++
		mjr.ID = repo.api.majors.seq
		repo.api.majors.table[mjr.ID] = &mjr
		out = append(out, mjr)
	}
	return out
}

func (repo *MajorRepository) Query(ctx context.Context, filter major.ListFilter) ([]major.Major, error) {
	repo.api.majors.RLock()
	defer repo.api.majors.RUnlock()

	majors := make([]major.Major, 0, len(repo.api.majors.table))
	for _, mjr := range repo.api.majors.table {
		if matches(filter.Search, mjr.Code, mjr.Name) {
			majors = append(majors, *mjr)
		}
	}
	sort.Slice(majors, func(i, j int) bool { return majors[i].Code < majors[j].Code })
	return majors, nil
}

func (repo *MajorRepository) Get(ctx context.Context, id int) (major.Major, error) {
	repo.api.majors.RLock()
	defer repo.api.majors.RUnlock()

	if mjr, ok := repo.api.majors.table[id]; ok {
		return *mjr, nil
	}
	return major.Major{}, notFound("Filière introuvable.")
}

func (repo *MajorRepository) Create(ctx context.Context, nm major.NewMajor) (major.Major, error) {
	repo.api.majors.Lock()
	defer repo.api.majors.Unlock()

	repo.api.majors.seq++
	mjr := major.Major{
		ID:          repo.api.majors.seq,
		Code:        nm.Code,
		Name:        nm.Name,
		Description: null.NewString(nm.Description, nm.Description != ""),
	}
	repo.api.majors.table[mjr.ID] = &mjr
	return mjr, nil
}

func (repo *MajorRepository) Update(ctx context.Context, id int, um major.UpdateMajor) (major.Major, error) {
	repo.api.majors.Lock()
	defer repo.api.majors.Unlock()

	mjr, ok := repo.api.majors.table[id]
	if !ok {
		return major.Major{}, notFound("Filière introuvable.")
	}
	if um.Code != "" {
		mjr.Code = um.Code
	}
	if um.Name != "" {
		mjr.Name = um.Name
	}
	if um.Description != "" {
		mjr.Description = null.StringFrom(um.Description)
	}
	return *mjr, nil
}

func (repo *MajorRepository) Delete(ctx context.Context, id int) error {
	repo.api.majors.Lock()
	defer repo.api.majors.Unlock()

	if _, ok := repo.api.majors.table[id]; !ok {
		return notFound("Filière introuvable.")
	}
	delete(repo.api.majors.table, id)
	return nil
}
