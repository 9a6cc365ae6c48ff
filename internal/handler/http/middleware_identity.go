// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-journal-keeper/internal/logger"
	"github.com/MKhiriev/go-journal-keeper/internal/utils"
)

// withIdentity resolves the account handed over by the external auth process.
//
// Without an "Authorization" header the request continues as guest. A
// "Bearer <jwt>" header is parsed with [utils.ParseUserFromToken], which keeps
// the raw token on the user for the remote source. A malformed, expired or identity-less token is rejected with 401.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, err, "Handler.withIdentity")
			return
		}

		user, err := utils.ParseUserFromToken(token, time.Now())
		if err != nil {
			writeError(w, r, err, "Handler.withIdentity")
			return
		}

		logger.FromRequest(r).Debug().
			Str("func", "Handler.withIdentity").
			Str("user_id", user.ID).
			Msg("identity resolved from token")

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}
