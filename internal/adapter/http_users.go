package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/commerce-console/models"
)

const usersPath = "/api/users"

type httpUsersAPI struct {
	client *Client
}

func userPath(id int64, suffix ...string) string {
	p := usersPath + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (a *httpUsersAPI) List(ctx context.Context, q models.ListQuery) (models.Page[models.DirectoryUser], error) {
	var out models.Page[models.DirectoryUser]
	err := a.client.SendJSON(ctx, http.MethodGet, usersPath, func(r *resty.Request) {
		r.SetQueryParams(q.Params())
	}, &out)
	if err != nil {
		return models.Page[models.DirectoryUser]{}, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (a *httpUsersAPI) Get(ctx context.Context, id int64) (models.DirectoryUser, error) {
	var out models.DirectoryUser
	if err := a.client.SendJSON(ctx, http.MethodGet, userPath(id), nil, &out); err != nil {
		return models.DirectoryUser{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return out, nil
}

func (a *httpUsersAPI) GetByUsername(ctx context.Context, username string) (models.DirectoryUser, error) {
	var out models.DirectoryUser
	path := usersPath + "/username/" + url.PathEscape(username)
	if err := a.client.SendJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return models.DirectoryUser{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return out, nil
}

func (a *httpUsersAPI) Create(ctx context.Context, req models.CreateUserRequest) (models.DirectoryUser, error) {
	var out models.DirectoryUser
	if err := a.client.SendJSON(ctx, http.MethodPost, usersPath, jsonBody(req), &out); err != nil {
		return models.DirectoryUser{}, fmt.Errorf("create user: %w", err)
	}
	return out, nil
}

func (a *httpUsersAPI) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (models.DirectoryUser, error) {
	var out models.DirectoryUser
	if err := a.client.SendJSON(ctx, http.MethodPut, userPath(id), jsonBody(req), &out); err != nil {
		return models.DirectoryUser{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return out, nil
}

func (a *httpUsersAPI) Delete(ctx context.Context, id int64) error {
	if _, err := a.client.Send(ctx, http.MethodDelete, userPath(id), nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (a *httpUsersAPI) ToggleStatus(ctx context.Context, id int64) error {
	if _, err := a.client.Send(ctx, http.MethodPatch, userPath(id, "toggle-status"), nil); err != nil {
		return fmt.Errorf("toggle user %d: %w", id, err)
	}
	return nil
}

func (a *httpUsersAPI) UploadProfilePicture(ctx context.Context, id int64, fileName string, content []byte) (models.ProfilePictureResponse, error) {
	var out models.ProfilePictureResponse
	err := a.client.SendJSON(ctx, http.MethodPost, userPath(id, "profile-picture"), func(r *resty.Request) {
		// a fresh reader per attempt, the retry after a refresh resends the file
		r.SetFileReader("file", fileName, bytes.NewReader(content))
	}, &out)
	if err != nil {
		return models.ProfilePictureResponse{}, fmt.Errorf("upload profile picture: %w", err)
	}
	return out, nil
}
