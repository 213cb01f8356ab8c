package models

// User is the session's view of the signed-in operator.
//
// It is a partial, client-trusted projection of the authoritative record kept
// by the users service: it is built from the login/register response, may lag
// the backend copy and is refreshed after every profile mutation. The value is
// persisted as JSON next to the tokens, so the field names follow the backend
// casing.
type User struct {
	// ID is the users-service identifier. It may be empty until it is
	// resolved through a username lookup.
	ID string `json:"id,omitempty"`

	// Username is immutable and unique.
	Username string `json:"username,omitempty"`

	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	Bio               string `json:"bio,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`

	// Roles holds the role set of the user. Current backends issue exactly
	// one role per account.
	Roles []Role `json:"roles,omitempty"`

	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
}

// PrimaryRole returns the first role of the user or an empty role.
func (u *User) PrimaryRole() Role {
	if u == nil || len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

// DisplayName returns "first last" when known and falls back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// UserPatch is a partial [User] used for shallow merges. Only non-nil fields
// are applied; Username is immutable and therefore absent.
type UserPatch struct {
	ID                *string
	Email             *string
	FirstName         *string
	LastName          *string
	Phone             *string
	Address           *string
	Bio               *string
	ProfilePictureURL *string
	Roles             []Role
	IsActive          *bool
}

// Merge returns a copy of u with every field set in p applied on top of it.
func (u User) Merge(p UserPatch) User {
	merged := u
	merged.Roles = append([]Role(nil), u.Roles...)

	setIfPresent(&merged.ID, p.ID)
	setIfPresent(&merged.Email, p.Email)
	setIfPresent(&merged.FirstName, p.FirstName)
	setIfPresent(&merged.LastName, p.LastName)
	setIfPresent(&merged.Phone, p.Phone)
	setIfPresent(&merged.Address, p.Address)
	setIfPresent(&merged.Bio, p.Bio)
	setIfPresent(&merged.ProfilePictureURL, p.ProfilePictureURL)

	if p.Roles != nil {
		merged.Roles = append([]Role(nil), p.Roles...)
	}
	if p.IsActive != nil {
		active := *p.IsActive
		merged.IsActive = &active
	}

	return merged
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DirectoryUser is a full user record as listed by the users service.
type DirectoryUser struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Phone             *string    `json:"phone,omitempty"`
	Address           *string    `json:"address,omitempty"`
	Bio               *string    `json:"bio,omitempty"`
	ProfilePictureURL *string    `json:"profilePictureUrl,omitempty"`
	Role              Role       `json:"role,omitempty"`
	MemberSince       string     `json:"memberSince,omitempty"`
	Active            bool       `json:"active"`
	CreatedAt         *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt         *Timestamp `json:"updatedAt,omitempty"`
	CreatedBy         string     `json:"createdBy,omitempty"`
	LastModifiedBy    string     `json:"lastModifiedBy,omitempty"`
}

// CreateUserRequest is the admin-driven provisioning payload of
// POST /api/users.
type CreateUserRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      Role    `json:"role"`
}

// UpdateUserRequest is the payload of PUT /api/users/{id}. Empty optional
// values are sent as JSON null.
type UpdateUserRequest struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Bio               *string `json:"bio"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// ProfilePictureResponse is returned by the profile picture upload.
type ProfilePictureResponse struct {
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// NullableString returns nil for an empty string and a pointer to s
// otherwise.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
