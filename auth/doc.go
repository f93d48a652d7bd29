// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity and token utilities.

# Voter Identity

Each browser gets a random UUID the first time it votes or asks for its
vote status:

	voterID := auth.NewVoterID()

The ID travels in a long-lived cookie signed with HMAC-SHA256 so that
clients cannot mint identities of their own choosing:

	value := auth.SignVoterID(voterID, secret)
	voterID, err := auth.ParseVoterCookie(value, secret)

A client can still clear its cookies and receive a new identity. That is
an accepted limit of cookie-based voting, not something this package
tries to prevent.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving abuse analysis:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Hashes are stored
with vote records but never decide admission.
*/
package auth
