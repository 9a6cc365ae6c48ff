// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a single journal note.
//
// Content is rich text stored as an opaque string. When IsEncrypted is true,
// Content holds ciphertext produced by an external crypto routine, and
// EncryptionSalt, EncryptionIV and PasswordHash carry the parameters that
// routine needs. When IsEncrypted is false all three are nil.
type Note struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category *string `json:"category,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	IsEncrypted    bool    `json:"isEncrypted"`
	EncryptionSalt *string `json:"encryptionSalt,omitempty"`
	EncryptionIV   *string `json:"encryptionIv,omitempty"`
	PasswordHash   *string `json:"passwordHash,omitempty"`

	// DeletedAt is set only on tombstones received from the remote source.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// RecordID implements [Record].
func (n Note) RecordID() string { return n.ID }

// RecordTime implements [Record].
func (n Note) RecordTime() time.Time { return n.UpdatedAt }

// IsDeleted implements [Record].
func (n Note) IsDeleted() bool { return n.DeletedAt != nil }

// NoteInput is the payload accepted when a new note is saved.
// Identity and timestamps are assigned by the store.
type NoteInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category *string `json:"category,omitempty"`

	IsEncrypted    bool    `json:"isEncrypted"`
	EncryptionSalt *string `json:"encryptionSalt,omitempty"`
	EncryptionIV   *string `json:"encryptionIv,omitempty"`
	PasswordHash   *string `json:"passwordHash,omitempty"`
}

// NoteUpdate is a partial update of a note.
// Nil fields are left untouched; only these fields of a note are mutable.
type NoteUpdate struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`

	IsEncrypted    *bool   `json:"isEncrypted,omitempty"`
	EncryptionSalt *string `json:"encryptionSalt,omitempty"`
	EncryptionIV   *string `json:"encryptionIv,omitempty"`
	PasswordHash   *string `json:"passwordHash,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil &&
		u.IsEncrypted == nil && u.EncryptionSalt == nil && u.EncryptionIV == nil && u.PasswordHash == nil
}

// TouchesEncryption reports whether the update changes any encryption field.
func (u NoteUpdate) TouchesEncryption() bool {
	return u.IsEncrypted != nil || u.EncryptionSalt != nil || u.EncryptionIV != nil || u.PasswordHash != nil
}
