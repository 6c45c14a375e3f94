package structs

import (
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyUserID = errors.New("user id must not be empty")
	ErrInvalidUTF8 = errors.New("user id and name must be valid UTF-8")
)

// User is an immutable cache record. Fields are only readable through getters
// so a value handed out by a store can't be altered behind its back.
type User struct {
	id   string
	name string
}

// userJSON is the wire shape used when a User passes through the cache.
type userJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUser creates a user with a freshly generated id.
func NewUser(name string) User {
	return User{
		id:   uuid.NewString(),
		name: name,
	}
}

// NewUserWithID creates a user with a caller supplied id.
func NewUserWithID(id, name string) User {
	return User{
		id:   id,
		name: name,
	}
}

func (u User) GetID() string {
	return u.id
}

func (u User) GetName() string {
	return u.name
}

// Validate rejects an empty id and any id or name that would not survive a
// JSON round trip unchanged.
func (u User) Validate() error {
	if u.id == "" {
		return ErrEmptyUserID
	}
	if !utf8.ValidString(u.id) || !utf8.ValidString(u.name) {
		return ErrInvalidUTF8
	}
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{ID: u.id, Name: u.name})
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.id = raw.ID
	u.name = raw.Name
	return nil
}
