package dummyapi

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core/document"
)

type DocumentRepository struct {
	api *API

	// own scopes QueryOwn/DeleteOwn to the current teacher's subjects.
	own map[int]bool // subject ids
}

var (
	_ document.Repository        = (*DocumentRepository)(nil)
	_ document.TeacherRepository = (*DocumentRepository)(nil)
)

func NewDocumentRepository(api *API) *DocumentRepository {
	return &DocumentRepository{api: api, own: make(map[int]bool)}
}

func (repo *DocumentRepository) Seed(documents ...document.Document) []document.Document {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	out := make([]document.Document, 0, len(documents))
	for _, doc := range documents {
		doc := doc
		repo.api.documents.seq++
		doc.ID = repo.api.documents.seq
		repo.api.documents.table[doc.ID] = &doc
		out = append(out, doc)
	}
	return out
}

// SetOwn marks the subjects the current teacher caller can manage
// documents on.
func (repo *DocumentRepository) SetOwn(subjectIDs ...int) {
	repo.own = make(map[int]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		repo.own[id] = true
	}
}

func (repo *DocumentRepository) Query(ctx context.Context, filter document.ListFilter) (document.Page, error) {
	return repo.page(repo.filtered(filter, nil), filter), nil
}

func (repo *DocumentRepository) QueryOwn(ctx context.Context, filter document.ListFilter) (document.Page, error) {
	return repo.page(repo.filtered(filter, repo.own), filter), nil
}

func (repo *DocumentRepository) filtered(filter document.ListFilter, scope map[int]bool) []document.Document {
	repo.api.documents.RLock()
	defer repo.api.documents.RUnlock()

	documents := make([]document.Document, 0, len(repo.api.documents.table))
	for _, doc := range repo.api.documents.table {
		if scope != nil && !scope[doc.Subject.ID] {
			continue
		}
		if !matches(filter.Search, doc.Title) {
			continue
		}
		if filter.SubjectID != 0 && doc.Subject.ID != filter.SubjectID {
			continue
		}
		if filter.DocumentType != "" && doc.DocumentType != filter.DocumentType {
			continue
		}
		if filter.IsActive != nil && doc.IsActive != *filter.IsActive {
			continue
		}
		documents = append(documents, *doc)
	}
	sort.Slice(documents, func(i, j int) bool { return documents[i].ID < documents[j].ID })
	return documents
}

func (repo *DocumentRepository) page(documents []document.Document, filter document.ListFilter) document.Page {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	total := len(documents)
	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	start := (filter.Page - 1) * filter.PageSize
	end := start + filter.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return document.Page{
		Results:    documents[start:end],
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (repo *DocumentRepository) Get(ctx context.Context, id int) (document.Document, error) {
	repo.api.documents.RLock()
	defer repo.api.documents.RUnlock()

	if doc, ok := repo.api.documents.table[id]; ok {
		return *doc, nil
	}
	return document.Document{}, notFound("Document introuvable.")
}

// Upload drains the file like the real transport would, reporting a single
// completed progress tick, and files the document under the subject.
func (repo *DocumentRepository) Upload(ctx context.Context, subjectID int, up document.Upload) (document.Document, error) {
	if !repo.own[subjectID] {
		return document.Document{}, notFound("Matière introuvable.")
	}
	if up.File != nil {
		if _, err := io.Copy(ioutil.Discard, up.File); err != nil {
			return document.Document{}, err
		}
	}
	if up.Progress != nil {
		up.Progress(1)
	}

	repo.api.subjects.RLock()
	ref := document.SubjectRef{ID: subjectID}
	if sub, ok := repo.api.subjects.table[subjectID]; ok {
		ref = document.SubjectRef{ID: sub.ID, Code: sub.Code, Name: sub.Name}
	}
	repo.api.subjects.RUnlock()

	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	repo.api.documents.seq++
	doc := document.Document{
		ID:           repo.api.documents.seq,
		Title:        up.Title,
		Description:  null.NewString(up.Description, up.Description != ""),
		DocumentType: up.DocumentType,
		FileURL:      fmt.Sprintf("/media/documents/%s", up.FileName),
		IsActive:     true,
		IsPremium:    up.IsPremium,
		Subject:      ref,
		CreatedAt:    time.Now(),
	}
	repo.api.documents.table[doc.ID] = &doc
	return doc, nil
}

func (repo *DocumentRepository) Update(ctx context.Context, id int, ud document.UpdateDocument) (document.Document, error) {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	doc, ok := repo.api.documents.table[id]
	if !ok {
		return document.Document{}, notFound("Document introuvable.")
	}
	if ud.Title != "" {
		doc.Title = ud.Title
	}
	if ud.Description != "" {
		doc.Description = null.StringFrom(ud.Description)
	}
	if ud.DocumentType != "" {
		doc.DocumentType = ud.DocumentType
	}
	if ud.IsPremium != nil {
		doc.IsPremium = *ud.IsPremium
	}
	if ud.IsActive != nil {
		doc.IsActive = *ud.IsActive
	}
	return *doc, nil
}

func (repo *DocumentRepository) Delete(ctx context.Context, id int) error {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	if _, ok := repo.api.documents.table[id]; !ok {
		return notFound("Document introuvable.")
	}
	delete(repo.api.documents.table, id)
	return nil
}

func (repo *DocumentRepository) DeleteOwn(ctx context.Context, id int) error {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	doc, ok := repo.api.documents.table[id]
	if !ok || !repo.own[doc.Subject.ID] {
		return notFound("Document introuvable.")
	}
	delete(repo.api.documents.table, id)
	return nil
}

func (repo *DocumentRepository) ToggleActive(ctx context.Context, id int) (document.Document, error) {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	doc, ok := repo.api.documents.table[id]
	if !ok {
		return document.Document{}, notFound("Document introuvable.")
	}
	doc.IsActive = !doc.IsActive
	return *doc, nil
}

func (repo *DocumentRepository) BulkAction(ctx context.Context, ba document.BulkAction) error {
	repo.api.documents.Lock()
	defer repo.api.documents.Unlock()

	for _, id := range ba.IDs {
		doc, ok := repo.api.documents.table[id]
		if !ok {
			continue
		}
		switch ba.Action {
		case document.BulkActivate:
			doc.IsActive = true
		case document.BulkDeactivate:
			doc.IsActive = false
		case document.BulkDelete:
			delete(repo.api.documents.table, id)
		}
	}
	return nil
}
