// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document stored in the "users" collection.
// It contains identity attributes, the hashed credential, and the set of
// bearer tokens currently valid for the account.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user document.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Name is the display name of the user. Must be non-empty.
	Name string `json:"name" bson:"name"`

	// Email is the unique login identifier. Stored lowercased; a unique
	// index on this field enforces uniqueness at the database level.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext.
	// It is never serialized to JSON.
	PasswordHash string `json:"-" bson:"password"`

	// Age is an optional non-negative attribute, defaulting to 0.
	Age int `json:"age" bson:"age"`

	// Tokens is the ordered collection of bearer tokens issued for this
	// account. A token is valid only while it remains in this list;
	// logout removes entries, logout-all clears the list.
	// Never serialized to JSON.
	Tokens []Token `json:"-" bson:"tokens"`

	// AvatarKey is the object-storage key of the user's avatar, empty when
	// no avatar has been uploaded. Not exposed via JSON.
	AvatarKey string `json:"-" bson:"avatar_key,omitempty"`

	// CreatedAt and UpdatedAt are maintained by the repository on every
	// insert and update.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CollectionName returns the name of the MongoDB collection
// holding user documents.
func (u User) CollectionName() string {
	return "users"
}
