package model

import "encoding/json"

// Host is a user that owns property listings.
//
// Username is unique. Password holds a bcrypt hash and is never serialized.
type Host struct {
	Base
	Username       string `json:"username" gorm:"size:100;uniqueIndex:hosts_username_key;not null"`
	Password       string `json:"-" gorm:"size:255;not null"`
	Name           string `json:"name" gorm:"size:255;not null"`
	Email          string `json:"email" gorm:"size:255;not null"`
	PhoneNumber    string `json:"phoneNumber" gorm:"size:50"`
	ProfilePicture string `json:"profilePicture" gorm:"size:2048"`
	AboutMe        string `json:"aboutMe" gorm:"type:text"`

	// Listings is only loaded by the read operations; nil means not loaded.
	Listings []Property `json:"listings" gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
}

// MarshalJSON leaves "listings" out when they were not loaded and renders
// an empty result as [].
func (h Host) MarshalJSON() ([]byte, error) {
	type plainHost Host
	out := struct {
		plainHost
		Listings *[]Property `json:"listings,omitempty"`
	}{plainHost: plainHost(h)}
	if h.Listings != nil {
		out.Listings = &h.Listings
	}
	return json.Marshal(out)
}
