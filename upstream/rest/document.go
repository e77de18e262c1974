package restapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/courati/console/core/document"
	"github.com/courati/console/upstream"
)

const (
	adminDocumentsPath   = "/api/courses/admin/documents/"
	teacherDocumentsPath = "/api/courses/teacher/documents/"
)

type DocumentRepository struct {
	client *upstream.Client
}

var (
	_ document.Repository        = (*DocumentRepository)(nil)
	_ document.TeacherRepository = (*DocumentRepository)(nil)
)

func NewDocumentRepository(client *upstream.Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

func (repo *DocumentRepository) Query(ctx context.Context, filter document.ListFilter) (document.Page, error) {
	return repo.query(ctx, adminDocumentsPath, filter)
}

func (repo *DocumentRepository) QueryOwn(ctx context.Context, filter document.ListFilter) (document.Page, error) {
	return repo.query(ctx, teacherDocumentsPath, filter)
}

func (repo *DocumentRepository) query(ctx context.Context, path string, filter document.ListFilter) (document.Page, error) {
	body, err := repo.client.Get(ctx, path, filter.Values())
	if err != nil {
		return document.Page{}, err
	}
	var page document.Page
	meta, err := upstream.UnmarshalPage(body, &page.Results, "results", "documents")
	if err != nil {
		return document.Page{}, err
	}
	page.Page = meta.Page
	page.PageSize = meta.PageSize
	if page.PageSize == 0 {
		page.PageSize = filter.PageSize
	}
	page.Total = meta.Total
	page.TotalPages = meta.TotalPages
	return page, nil
}

func (repo *DocumentRepository) Get(ctx context.Context, id int) (document.Document, error) {
	body, err := repo.client.Get(ctx, fmt.Sprintf("%s%d/", adminDocumentsPath, id), nil)
	if err != nil {
		return document.Document{}, err
	}
	var doc document.Document
	err = upstream.UnmarshalObject(body, &doc, "document")
	return doc, err
}

// Upload posts the multipart form to the subject's own documents collection;
// metadata travels as plain form fields alongside the file part.
func (repo *DocumentRepository) Upload(ctx context.Context, subjectID int, up document.Upload) (document.Document, error) {
	fields := map[string]string{
		"title":         up.Title,
		"document_type": up.DocumentType,
		"is_premium":    strconv.FormatBool(up.IsPremium),
	}
	if up.Description != "" {
		fields["description"] = up.Description
	}
	file := upstream.File{
		Field:    "file",
		Name:     up.FileName,
		Size:     up.FileSize,
		Reader:   up.File,
		Progress: up.Progress,
	}
	path := fmt.Sprintf("/api/courses/teacher/subjects/%d/documents/", subjectID)
	body, err := repo.client.Upload(ctx, path, fields, file)
	if err != nil {
		return document.Document{}, err
	}
	var doc document.Document
	err = upstream.UnmarshalObject(body, &doc, "document")
	return doc, err
}

func (repo *DocumentRepository) Update(ctx context.Context, id int, ud document.UpdateDocument) (document.Document, error) {
	body, err := repo.client.Patch(ctx, fmt.Sprintf("%s%d/", adminDocumentsPath, id), ud)
	if err != nil {
		return document.Document{}, err
	}
	var doc document.Document
	err = upstream.UnmarshalObject(body, &doc, "document")
	return doc, err
}

func (repo *DocumentRepository) Delete(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", adminDocumentsPath, id))
	return err
}

func (repo *DocumentRepository) DeleteOwn(ctx context.Context, id int) error {
	_, err := repo.client.Delete(ctx, fmt.Sprintf("%s%d/", teacherDocumentsPath, id))
	return err
}

func (repo *DocumentRepository) ToggleActive(ctx context.Context, id int) (document.Document, error) {
	body, err := repo.client.Post(ctx, fmt.Sprintf("%s%d/toggle-active/", adminDocumentsPath, id), nil)
	if err != nil {
		return document.Document{}, err
	}
	var doc document.Document
	err = upstream.UnmarshalObject(body, &doc, "document")
	return doc, err
}

func (repo *DocumentRepository) BulkAction(ctx context.Context, ba document.BulkAction) error {
	_, err := repo.client.Post(ctx, adminDocumentsPath+"bulk-action/", ba)
	return err
}
