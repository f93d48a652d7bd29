// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/foxvote/auth"
	"github.com/danielhkuo/foxvote/cliparse"
)

const voterCookieMaxAge = 365 * 24 * time.Hour

// maxUserAgentLen bounds what we store per vote record
const maxUserAgentLen = 512

// voterIdentity returns the voter ID carried by the request's signed cookie.
// When the cookie is missing or fails verification a new identity is
// issued on w and isNew is true.
func voterIdentity(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (voterID string, isNew bool) {
	if c, err := r.Cookie(auth.VoterCookieName); err == nil {
		id, err := auth.ParseVoterCookie(c.Value, cfg.CookieSecret)
		if err == nil {
			return id, false
		}
		slog.Warn("rejected voter cookie", "error", err, "remote", r.RemoteAddr)
	}

	voterID = auth.NewVoterID()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.VoterCookieName,
		Value:    auth.SignVoterID(voterID, cfg.CookieSecret),
		Path:     "/",
		MaxAge:   int(voterCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return voterID, true
}

func truncateUserAgent(ua string) string {
	if len(ua) > maxUserAgentLen {
		return ua[:maxUserAgentLen]
	}
	return ua
}
