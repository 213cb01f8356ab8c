package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// Filter names of the users list.
const (
	FilterUserRole   = "role"
	FilterUserStatus = "status"
)

// UsersService is the users directory screen.
type UsersService struct {
	*ListController[models.DirectoryUser]
	api adapter.UsersAPI
}

func NewUsersService(api adapter.UsersAPI, pageSize int, log *logger.Logger) *UsersService {
	cfg := ListConfig[models.DirectoryUser]{
		Name:  "users",
		Fetch: api.List,
		ID:    func(u models.DirectoryUser) int64 { return u.ID },
		TextFields: []func(models.DirectoryUser) string{
			func(u models.DirectoryUser) string { return u.FirstName },
			func(u models.DirectoryUser) string { return u.LastName },
			func(u models.DirectoryUser) string { return u.Email },
			func(u models.DirectoryUser) string { return u.Username },
		},
		Filters: map[string]func(models.DirectoryUser, string) bool{
			FilterUserRole: func(u models.DirectoryUser, v string) bool {
				return strings.EqualFold(string(u.Role), v)
			},
			FilterUserStatus: func(u models.DirectoryUser, v string) bool {
				return (v == "active") == u.Active
			},
		},
		ServerSearch: true,
		SortFields: map[string]SortField[models.DirectoryUser]{
			"username":  {Kind: SortText, Text: func(u models.DirectoryUser) string { return u.Username }},
			"email":     {Kind: SortText, Text: func(u models.DirectoryUser) string { return u.Email }},
			"role":      {Kind: SortText, Text: func(u models.DirectoryUser) string { return string(u.Role) }},
			"createdAt": {Kind: SortDate, Number: func(u models.DirectoryUser) float64 { return float64(u.CreatedAt.Unix()) }},
		},
		DefaultSort: Sort{Key: "username"},
		PageSize:    pageSize,
		FetchFailed: app.MsgFetchUsersFailed,
	}

	return &UsersService{
		ListController: NewListController(cfg, log),
		api:            api,
	}
}

func (s *UsersService) Create(ctx context.Context, req models.CreateUserRequest) error {
	return s.Mutate(ctx, app.MsgCreateUserFailed, func(ctx context.Context) error {
		_, err := s.api.Create(ctx, req)
		return err
	})
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.Mutate(ctx, app.MsgDeleteUserFailed, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *UsersService) ToggleStatus(ctx context.Context, id int64) error {
	return s.Mutate(ctx, app.MsgToggleStatusFailed, func(ctx context.Context) error {
		return s.api.ToggleStatus(ctx, id)
	})
}
