package models

// Session is the authenticated identity of the current user. A nil
// *Session means signed out, which is a normal state rather than an error.
type Session struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
}

// Profile is the users/{uid} document in the document store.
type Profile struct {
	DisplayName string `json:"displayName" bson:"displayName"`
	Email       string `json:"email" bson:"email"`
	Verified    bool   `json:"verified" bson:"verified"`
	CreatedAt   string `json:"createdAt" bson:"createdAt"`
}
