package dto

type CreateTenantRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	MaxSocialPages int     `json:"max_social_pages"`
}

type UpdateTenantRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	MaxSocialPages *int    `json:"max_social_pages,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type CreateAdminRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Permissions []string `json:"permissions"`
}

type CreateTenantAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
