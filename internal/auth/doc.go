// Package auth implements account registration and token-based sessions
// for Climacore.
//
// It covers three concerns:
//   - Password hashing with Argon2id in PHC string format
//   - HS256 JWT access tokens carrying the user ID as subject
//   - SQLite persistence for the usuarios table
//
// Tokens are validated by signature and expiry alone; there is no
// server-side session store, so a token remains valid until it expires.
package auth
