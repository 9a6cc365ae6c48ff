// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyNote            = errors.New("note needs a title or content")
	ErrEmptyNoteID          = errors.New("note id is required")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")
	ErrIncompleteEncryption = errors.New("encrypted note requires salt, iv and password hash")
	ErrUnexpectedEncryption = errors.New("unencrypted note must not carry encryption metadata")
	ErrEmptyReflectionDate  = errors.New("reflection date is required")
)
