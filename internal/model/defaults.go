package model

import (
	"fmt"
	"time"
)

// Permission is the user's answer to the storage prompt.
type Permission string

// Permission states.
const (
	PermissionPrompt  Permission = "prompt"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// DefaultUsers returns the accounts a fresh store is seeded with.
func DefaultUsers() []User {
	return []User{
		{ID: "SENIOR001", Email: "senior1@college.edu", IsSenior: true, Course: "Computer Science", Year: 2024, XPPoints: 1200, ComputerYear: SeniorComputerYear},
		{ID: "SENIOR002", Email: "senior2@college.edu", IsSenior: true, Course: "Electrical Engineering", Year: 2024, XPPoints: 950, ComputerYear: SeniorComputerYear},
		{ID: "SENIOR003", Email: "senior3@college.edu", IsSenior: true, Course: "Computer Science", Year: 2025, XPPoints: 1500, ComputerYear: SeniorComputerYear},
		{ID: "JUNIOR001", Email: "junior1@college.edu", Course: "Computer Science", Year: 2025, ComputerYear: 1},
		{ID: "JUNIOR002", Email: "junior2@college.edu", Course: "Electrical Engineering", Year: 2025, ComputerYear: 1},
		{ID: "JUNIOR003", Email: "junior3@college.edu", Course: "Computer Science", Year: 2026, ComputerYear: 1},
		{ID: "SENIOR004", Email: "senior4@college.edu", IsSenior: true, Course: "Physics", Year: 2024, XPPoints: 800, ComputerYear: SeniorComputerYear},
		{ID: "SENIOR005", Email: "senior5@college.edu", IsSenior: true, Course: "Computer Science", Year: 2024, XPPoints: 1100, ComputerYear: SeniorComputerYear},
	}
}

// DefaultItems returns the listings a fresh store is seeded with. Creation
// times are relative to now.
func DefaultItems(now time.Time) []Item {
	daysAgo := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }
	image := func(n int) string { return fmt.Sprintf("https://picsum.photos/200/300?random=%d", n) }

	return []Item{
		{
			ID: "ITEM001", Name: "Introduction to Algorithms (Cormen)",
			Description: "Comprehensive textbook on algorithms. Slightly used.",
			Category:    CategoryBooks, SeniorID: "SENIOR001", Status: StatusAvailable,
			PickupPoint: PickupLibrary, XPValue: CategoryBooks.XP(), ImageURL: image(1),
			CreatedAt: daysAgo(5), Course: "Computer Science", Year: 2024,
		},
		{
			ID: "ITEM002", Name: "Digital Circuits Lab Manual",
			Description: "All experiments completed and annotated.",
			Category:    CategoryLabEssentials, SeniorID: "SENIOR002", Status: StatusAvailable,
			PickupPoint: PickupChemistryLab, XPValue: CategoryLabEssentials.XP(), ImageURL: image(2),
			CreatedAt: daysAgo(3), Course: "Electrical Engineering", Year: 2024,
		},
		{
			ID: "ITEM003", Name: "Data Structures & Algorithms Notes",
			Description: "Handwritten notes for CS201, very detailed.",
			Category:    CategoryNotes, SeniorID: "SENIOR003", Status: StatusAvailable,
			PickupPoint: PickupStudentUnion, XPValue: CategoryNotes.XP(), ImageURL: image(3),
			CreatedAt: daysAgo(1), Course: "Computer Science", Year: 2025,
		},
		{
			ID: "ITEM004", Name: "Oscilloscope (Basic Model)",
			Description: "Functional basic oscilloscope, good for first-year EE labs.",
			Category:    CategoryInstruments, SeniorID: "SENIOR002", Status: StatusAvailable,
			PickupPoint: PickupPhysicsDept, XPValue: CategoryInstruments.XP(), ImageURL: image(4),
			CreatedAt: daysAgo(7), Course: "Electrical Engineering", Year: 2024,
		},
		{
			ID: "ITEM005", Name: "Calculus III Question Papers (2020-2023)",
			Description: "Collection of past exam papers with solutions.",
			Category:    CategoryQuestionPapers, SeniorID: "SENIOR001", JuniorID: "JUNIOR001",
			Status: StatusPickedUp, PickupPoint: PickupLibrary, XPValue: CategoryQuestionPapers.XP(),
			ImageURL: image(5), CreatedAt: daysAgo(10), Course: "Computer Science", Year: 2024,
		},
		{
			ID: "ITEM006", Name: "Operating Systems Textbook (Silberschatz)",
			Description: "Key concepts highlighted. CS course material.",
			Category:    CategoryBooks, SeniorID: "SENIOR003", Status: StatusAvailable,
			PickupPoint: PickupLibrary, XPValue: CategoryBooks.XP(), ImageURL: image(6),
			CreatedAt: daysAgo(2), Course: "Computer Science", Year: 2025,
		},
	}
}
