package dto

import "github.com/google/uuid"

type CreateEmployeeRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	FullName    string      `json:"full_name"`
	Permissions []string    `json:"permissions"`
	PageIDs     []uuid.UUID `json:"page_ids,omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName    *string      `json:"full_name,omitempty"`
	Permissions *[]string    `json:"permissions,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
	PageIDs     *[]uuid.UUID `json:"page_ids,omitempty"`
}

type ConnectPageRequest struct {
	Platform     string  `json:"platform"`
	AccessToken  string  `json:"access_token"`
	RefreshToken *string `json:"refresh_token,omitempty"`
}

type UpdatePageRequest struct {
	Name        *string `json:"name,omitempty"`
	Status      *string `json:"status,omitempty"`
	AccessToken *string `json:"access_token,omitempty"`
}
