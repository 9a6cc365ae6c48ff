// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/go-journal-keeper/models"
)

const (
	FieldID             = "id"
	FieldBody           = "body"
	FieldEncryption     = "encryption"
	FieldUpdate         = "update"
	FieldReflectionDate = "reflection_date"
)

type JournalValidator struct {
}

func NewJournalValidator() Validator {
	return &JournalValidator{}
}

func (v *JournalValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)

	case models.NoteInput:
		return v.validateNoteInput(ctx, value, fields...)
	case *models.NoteInput:
		return v.validateNoteInput(ctx, *value, fields...)

	case models.NoteUpdate:
		return v.validateNoteUpdate(ctx, value, fields...)
	case *models.NoteUpdate:
		return v.validateNoteUpdate(ctx, *value, fields...)

	case models.ReflectionInput:
		return v.validateReflectionInput(ctx, value, fields...)
	case *models.ReflectionInput:
		return v.validateReflectionInput(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *JournalValidator) validateNote(_ context.Context, note models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldBody, FieldEncryption}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if note.ID == "" {
				return ErrEmptyNoteID
			}
		case FieldBody:
			if note.Title == "" && note.Content == "" {
				return ErrEmptyNote
			}
		case FieldEncryption:
			if err := checkEncryption(note.IsEncrypted, note.EncryptionSalt, note.EncryptionIV, note.PasswordHash); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *JournalValidator) validateNoteInput(_ context.Context, input models.NoteInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBody, FieldEncryption}
	}

	for _, f := range fields {
		switch f {
		case FieldBody:
			if input.Title == "" && input.Content == "" {
				return ErrEmptyNote
			}
		case FieldEncryption:
			if err := checkEncryption(input.IsEncrypted, input.EncryptionSalt, input.EncryptionIV, input.PasswordHash); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateNoteUpdate checks the update on its own. The encryption invariant
// of the resulting note is checked on the merged [models.Note].
func (v *JournalValidator) validateNoteUpdate(_ context.Context, update models.NoteUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdate, FieldEncryption}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdate:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldEncryption:
			if update.IsEncrypted != nil && !*update.IsEncrypted &&
				(present(update.EncryptionSalt) || present(update.EncryptionIV) || present(update.PasswordHash)) {
				return ErrUnexpectedEncryption
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *JournalValidator) validateReflectionInput(_ context.Context, input models.ReflectionInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReflectionDate}
	}

	for _, f := range fields {
		switch f {
		case FieldReflectionDate:
			if input.Date.IsZero() {
				return ErrEmptyReflectionDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checkEncryption enforces that the three metadata blobs are all present
// when encrypted and all absent otherwise. An empty string counts as absent.
func checkEncryption(encrypted bool, salt, iv, hash *string) error {
	if encrypted {
		if !present(salt) || !present(iv) || !present(hash) {
			return ErrIncompleteEncryption
		}
		return nil
	}

	if present(salt) || present(iv) || present(hash) {
		return ErrUnexpectedEncryption
	}
	return nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}
