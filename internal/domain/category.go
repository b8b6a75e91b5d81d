package domain

// Category groups portfolio items and videos on the public site
type Category string

const (
	CategoryWeddings   Category = "weddings"
	CategoryPreWedding Category = "pre-wedding"
	CategoryEngagement Category = "engagement"
)

// AllCategories contains all valid categories in display order
var AllCategories = []Category{CategoryWeddings, CategoryPreWedding, CategoryEngagement}

// IsValid checks if a category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryWeddings, CategoryPreWedding, CategoryEngagement:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ContactStatus tracks how far an enquiry has progressed
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusBooked    ContactStatus = "booked"
	ContactStatusArchived  ContactStatus = "archived"
)

// IsValid checks if a status is one of the known values
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusContacted, ContactStatusBooked, ContactStatusArchived:
		return true
	}
	return false
}
