package document

import (
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/courati/console/core"
)

// Document types.
const (
	TypeCours   = "COURS"
	TypeTD      = "TD"
	TypeTP      = "TP"
	TypeArchive = "ARCHIVE"
)

const (
	BulkActivate   = "activate"
	BulkDeactivate = "deactivate"
	BulkDelete     = "delete"
)

type Document struct {
	ID            int         `json:"id"`
	Title         string      `json:"title"`
	Description   null.String `json:"description,omitempty"`
	DocumentType  string      `json:"document_type"`
	FileURL       string      `json:"file_url"`
	IsActive      bool        `json:"is_active"`
	IsPremium     bool        `json:"is_premium"`
	ViewCount     int         `json:"view_count"`
	DownloadCount int         `json:"download_count"`
	Subject       SubjectRef  `json:"subject"`
	CreatedBy     CreatorRef  `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
}

type SubjectRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CreatorRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Upload is the multipart document upload: metadata fields plus the file.
type Upload struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	DocumentType string `json:"document_type" validate:"required,oneof=COURS TD TP ARCHIVE"`
	IsPremium    bool   `json:"is_premium"`

	FileName string      `json:"-" validate:"required"`
	FileSize int64       `json:"-"`
	File     io.Reader   `json:"-"`
	Progress func(float64) `json:"-"`
}

type UpdateDocument struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	DocumentType string `json:"document_type,omitempty" validate:"omitempty,oneof=COURS TD TP ARCHIVE"`
	IsPremium    *bool  `json:"is_premium,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

type BulkAction struct {
	Action string `json:"action" validate:"required,oneof=activate deactivate delete"`
	IDs    []int  `json:"ids" validate:"required,min=1"`
}

// Page is one server-driven page of documents.
type Page struct {
	Results    []Document `json:"results"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

type ListFilter struct {
	Search       string
	SubjectID    int
	DocumentType string
	IsActive     *bool
	Page         int
	PageSize     int
}

func (f ListFilter) Clean() ListFilter {
	f.Search = core.CleanString(f.Search)
	f.DocumentType = core.CleanString(f.DocumentType)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	return f
}

func (f ListFilter) Values() url.Values {
	v := make(url.Values)
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.SubjectID != 0 {
		v.Set("subject", strconv.Itoa(f.SubjectID))
	}
	if f.DocumentType != "" {
		v.Set("document_type", f.DocumentType)
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("page_size", strconv.Itoa(f.PageSize))
	return v
}
