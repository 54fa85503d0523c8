package model

import "time"

// Item is an academic resource shared by a senior.
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	SeniorID    string      `json:"seniorId"`
	JuniorID    string      `json:"juniorId,omitempty"`
	Status      ItemStatus  `json:"status"`
	PickupPoint PickupPoint `json:"pickupPoint"`
	XPValue     int         `json:"xpValue"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`

	// Snapshot of the donating senior at creation time.
	Course string `json:"course"`
	Year   int    `json:"year"`
}

// ItemStatus is the exchange state of an item.
type ItemStatus string

// Item statuses, in the only order they may be reached.
const (
	StatusAvailable ItemStatus = "Available"
	StatusRequested ItemStatus = "Requested"
	StatusPickedUp  ItemStatus = "Picked Up"
)

// CanAdvanceTo reports whether an item may move from s to next.
// Transitions are one step forward only.
func (s ItemStatus) CanAdvanceTo(next ItemStatus) bool {
	switch s {
	case StatusAvailable:
		return next == StatusRequested
	case StatusRequested:
		return next == StatusPickedUp
	default:
		return false
	}
}

// Category is the closed set of item categories.
type Category string

// Categories.
const (
	CategoryBooks          Category = "Books"
	CategoryNotes          Category = "Notes"
	CategoryLabEssentials  Category = "Lab Essentials"
	CategoryInstruments    Category = "Instruments"
	CategoryQuestionPapers Category = "Question Papers"
	CategoryOther          Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBooks,
	CategoryNotes,
	CategoryLabEssentials,
	CategoryInstruments,
	CategoryQuestionPapers,
	CategoryOther,
}

var xpValues = map[Category]int{
	CategoryBooks:          100,
	CategoryNotes:          50,
	CategoryLabEssentials:  75,
	CategoryInstruments:    150,
	CategoryQuestionPapers: 60,
	CategoryOther:          40,
}

// XP returns the experience awarded for sharing an item of this category.
func (c Category) XP() int {
	return xpValues[c]
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := xpValues[c]
	return ok
}

// PickupPoint is the closed set of campus handover locations.
type PickupPoint string

// Pickup points.
const (
	PickupLibrary       PickupPoint = "University Library"
	PickupStudentUnion  PickupPoint = "Student Union Building"
	PickupChemistryLab  PickupPoint = "Chemistry Lab"
	PickupPhysicsDept   PickupPoint = "Physics Department"
	PickupAdminBuilding PickupPoint = "Administration Building"
	PickupLectureHallA  PickupPoint = "Lecture Hall A"
	PickupComputerLabC  PickupPoint = "Computer Lab C"
)

// PickupPoints lists every pickup point in display order.
var PickupPoints = []PickupPoint{
	PickupLibrary,
	PickupStudentUnion,
	PickupChemistryLab,
	PickupPhysicsDept,
	PickupAdminBuilding,
	PickupLectureHallA,
	PickupComputerLabC,
}

// Valid reports whether p is a known pickup point.
func (p PickupPoint) Valid() bool {
	for _, known := range PickupPoints {
		if p == known {
			return true
		}
	}
	return false
}

// FindItem returns the index of the item with the given ID, or -1.
func FindItem(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
