package api

import (
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/service"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse is returned after a successful login or logout.
type LoginResponse struct {
	Success bool `json:"success"`
}

// CreateSetRequest is the body of POST /sets.
type CreateSetRequest struct {
	Language    string  `json:"langOfSet"   validate:"required"`
	Name        string  `json:"setName"     validate:"required,max=100"`
	Folder      string  `json:"setFolder"   validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	TermIDs     []int64 `json:"termIds"     validate:"omitempty,dive,gt=0"`
}

// CreateSetResponse reports the created set and, when terms were
// requested, whether all of them were linked.
type CreateSetResponse struct {
	Status     service.CreateStatus   `json:"status"`
	Set        *domain.Set            `json:"set"`
	TermReport *domain.AddTermsResult `json:"termReport,omitempty"`
	// LinkError is set when the set was created but linking its terms failed.
	LinkError string `json:"linkError,omitempty"`
}

// UpdateFolderRequest is the body of PUT /sets/updateSetFolder.
type UpdateFolderRequest struct {
	Language  string `json:"setLang"      validate:"required"`
	Name      string `json:"setName"      validate:"required"`
	NewFolder string `json:"newSetFolder" validate:"required,max=100"`
}

// UpdateFolderResponse carries the client facing message and the count of
// sets that changed.
type UpdateFolderResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

// TermIDsRequest is the body of the set term link and unlink endpoints.
type TermIDsRequest struct {
	TermIDs []int64 `json:"termIds"`
}

// AddTermsResponse is returned by POST /ops/addData/{lang}.
type AddTermsResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// RemoveTermResponse is returned by DELETE /ops/removeData/{lang}.
type RemoveTermResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// SizeResponse is returned by GET /data/fetchSize/{lang}.
type SizeResponse struct {
	Size int64 `json:"size"`
}
