package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/core/document"
)

type documentApi struct {
	opts *Options
}

func registerDocumentAPI(g *echo.Group, opts *Options) {
	api := documentApi{opts: opts}

	g.GET("/documents", api.query)
	g.POST("/documents/bulk-action", api.bulkAction)
	g.GET("/documents/:id", api.retrieve)
	g.PATCH("/documents/:id", api.update)
	g.DELETE("/documents/:id", api.destroy)
	g.POST("/documents/:id/toggle-active", api.toggleActive)
}

// registerTeacherDocumentAPI exposes the teacher surface: documents of the
// caller's assigned subjects, the multipart upload under the subject, and
// deleting their own documents.
func registerTeacherDocumentAPI(g *echo.Group, opts *Options) {
	api := documentApi{opts: opts}

	g.GET("/documents", api.queryOwn)
	g.DELETE("/documents/:id", api.destroyOwn)
	g.POST("/subjects/:id/documents", api.upload)
}

type documentResponse struct {
	Success  string            `json:"success"`
	Document document.Document `json:"document"`
}

func (api *documentApi) filter(q ListQuery) document.ListFilter {
	return document.ListFilter{
		Search:       q.Search,
		SubjectID:    q.SubjectID,
		DocumentType: q.DocumentType,
		IsActive:     q.IsActive,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}
}

func (api *documentApi) query(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	page, err := api.opts.DocumentSvc.List(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "querying documents")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *documentApi) queryOwn(ctx echo.Context) error {
	q, err := bindListQuery(ctx)
	if err != nil {
		return err
	}
	page, err := api.opts.DocumentSvc.ListOwn(ctx.Request().Context(), api.filter(q))
	if err != nil {
		return errors.Wrap(err, "querying own documents")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *documentApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	doc, err := api.opts.DocumentSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "fetching document")
	}
	return ctx.JSON(http.StatusOK, doc)
}

// upload accepts the multipart form: metadata fields plus the file part.
func (api *documentApi) upload(ctx echo.Context) error {
	subjectID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "un fichier est requis"})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	up := document.Upload{
		Title:        ctx.FormValue("title"),
		Description:  ctx.FormValue("description"),
		DocumentType: ctx.FormValue("document_type"),
		IsPremium:    ctx.FormValue("is_premium") == "true",
		FileName:     fh.Filename,
		FileSize:     fh.Size,
		File:         src,
	}
	doc, err := api.opts.DocumentSvc.Upload(ctx.Request().Context(), subjectID, up)
	if err != nil {
		return errors.Wrap(err, "uploading document")
	}
	return ctx.JSON(http.StatusCreated, documentResponse{Success: "Document importé avec succès.", Document: doc})
}

func (api *documentApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data document.UpdateDocument
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateDocument")
	}
	doc, err := api.opts.DocumentSvc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	return ctx.JSON(http.StatusOK, documentResponse{Success: "Document mis à jour avec succès.", Document: doc})
}

func (api *documentApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.DocumentSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting document")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Document supprimé avec succès."})
}

func (api *documentApi) destroyOwn(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.opts.DocumentSvc.DeleteOwn(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting own document")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Document supprimé avec succès."})
}

func (api *documentApi) toggleActive(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	doc, err := api.opts.DocumentSvc.ToggleActive(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "toggling document")
	}
	return ctx.JSON(http.StatusOK, documentResponse{Success: "Statut du document mis à jour.", Document: doc})
}

func (api *documentApi) bulkAction(ctx echo.Context) error {
	var data document.BulkAction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkAction")
	}
	if err := api.opts.DocumentSvc.BulkAction(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "applying bulk action")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Action appliquée avec succès."})
}
