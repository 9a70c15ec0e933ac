package models

import "github.com/golang-jwt/jwt/v4"

// Role values stored on a user
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Membership values stored on a user
const (
	MembershipFree = "free"
	MembershipGold = "gold"
)

// User is a forum account. Email is unique, enforced by a store index.
type User struct {
	ID         string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
	Email      string `json:"email" bson:"email"`
	Photo      string `json:"photo,omitempty" bson:"photo,omitempty"`
	Role       string `json:"role" bson:"role"`
	Membership string `json:"membership" bson:"membership"`
}

type CreateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email" validate:"required"`
	Photo string `json:"photo,omitempty"`
}

// CreateUserResponse carries a nil InsertedID when the email was already registered
type CreateUserResponse struct {
	Message    string `json:"message"`
	InsertedID any    `json:"insertedId"`
}

// TokenRequest is the identity payload exchanged for a token on POST /jwt
type TokenRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
