//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "encoding/json"

// PageInfo is the pagination block the API attaches to list responses.
// The API is inconsistent about key names, so both spellings are accepted.
type PageInfo struct {
	Current    int `json:"current"`
	TotalPages int `json:"total"`
	TotalItems int `json:"count,omitempty"`
}

// UnmarshalJSON accepts current|currentPage, total|totalPages and count|totalUsers|totalItems.
func (p *PageInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		Current     *int `json:"current"`
		CurrentPage *int `json:"currentPage"`
		Total       *int `json:"total"`
		TotalPages  *int `json:"totalPages"`
		Count       *int `json:"count"`
		TotalUsers  *int `json:"totalUsers"`
		TotalItems  *int `json:"totalItems"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PageInfo{
		Current:    firstInt(raw.Current, raw.CurrentPage),
		TotalPages: firstInt(raw.Total, raw.TotalPages),
		TotalItems: firstInt(raw.Count, raw.TotalUsers, raw.TotalItems),
	}
	if p.Current < 1 {
		p.Current = 1
	}
	return nil
}

func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination PageInfo `json:"pagination"`
}
