package entity

import "time"

// The entity of a user channel. Videos reference their channel by id and
// carry the owner as author.
type Channel struct {
	Id          string    `firestore:"id"`
	Owner       string    `firestore:"owner"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func NewChannel(id, owner, name, description string) *Channel {
	now := time.Now().UTC()
	return &Channel{
		Id:          id,
		Owner:       owner,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
