// Copyright (c) 2026 CityInfo API. All rights reserved.

/*
Package auth implements user identity: signup, credential verification, and
bearer-token issuance.

Layers:

  - user.go: Entity definition and API shapes.
  - password.go: The password strength policy.
  - store.go / store_postgres.go: Persistence port and its PostgreSQL adapter.
  - service.go: Business workflows (Authenticate, Register).
  - http.go: Transport layer (login/signup endpoints).
*/
package auth

// User represents a registered account.
//
// # Security
//
// PasswordHash is excluded from JSON serialization. It only ever travels
// between the store and the bcrypt comparison in the service layer.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
}

// Credentials is the payload accepted by both the login and signup endpoints.
type Credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Session is the response body returned after a successful login or signup.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
