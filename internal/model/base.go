package model

import "time"

type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID satisfies store.Entity for every record type embedding BaseModel.
func (b BaseModel) EntityID() string { return b.ID }

// Pagination is the pagination block the server attaches to every list
// response. Pages is derived server-side from Total and Limit.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HasMore reports whether another page exists after the current one.
func (p Pagination) HasMore() bool { return p.Page < p.Pages }
