package model

import "time"

type TokenData struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
}

type TokenClaim struct {
	UserId  uint   `json:"userId"`
	Email   string `json:"email"`
	IsStaff bool   `json:"isStaff"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type Pagination struct {
	Limit *int `query:"limit"`
	Page  *int `query:"page"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 500
)

func (p Pagination) Enabled() bool {
	return p.Page != nil && *p.Page > 0
}

// Normalized fills in the default page size and caps oversized pages.
func (p Pagination) Normalized() Pagination {
	if !p.Enabled() {
		return p
	}
	limit := DefaultPageSize
	if p.Limit != nil && *p.Limit > 0 {
		limit = min(*p.Limit, MaxPageSize)
	}
	page := *p.Page
	return Pagination{Limit: &limit, Page: &page}
}

// Scope is the identity every order and ticket query is filtered by.
type Scope struct {
	UserID  uint
	IsAdmin bool
}

func AdminScope() Scope {
	return Scope{IsAdmin: true}
}
