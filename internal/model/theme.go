package model

// Theme is a bookable room.  Themes are created by administrators and
// referenced by reservations.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name.
//  Description – free text shown on the theme page.
//  Thumbnail   – image URL.
type Theme struct {
	ID          int64  // theme.id
	Name        string // theme.name
	Description string // theme.description
	Thumbnail   string // theme.thumbnail
}
