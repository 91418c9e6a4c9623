package domain

import (
	"fmt"
	"strings"
)

// Category selects the minimum-area rule for a room.
type Category string

const (
	CategoryRoom       Category = "room"
	CategoryBathroom   Category = "bathroom"
	CategoryKitchen    Category = "kitchen"
	CategoryStaircase  Category = "staircase"
	CategoryDining     Category = "dining"
	CategoryDecorative Category = "decorative"
	CategoryEntrance   Category = "entrance"
)

// Room vocabulary.
const (
	RoomParking        = "Parking"
	RoomCorridor       = "Corridor"
	RoomEntranceGate   = "Entrance Gate"
	RoomFoyer          = "Entrance/Foyer"
	RoomDecorative     = "Decorative Area"
	RoomKitchen        = "Kitchen"
	RoomUtilityStorage = "Utility/Storage"
	RoomCommonToilet   = "Common Toilet"
	RoomLiving         = "Living Area"
	RoomDining         = "Dining Area"
	RoomLivingDining   = "Living/Dining"
	RoomStaircase      = "Staircase"
	RoomUtilitySpace   = "Utility Space"

	prefixMasterBedroom  = "Master Bedroom"
	prefixMasterBathroom = "Master Bathroom"
	prefixGuestRoom      = "Guest Room"
	prefixGuestBathroom  = "Guest Bathroom"
	prefixBathroom       = "Bathroom"

	// legacy split-v1 names
	prefixMasterRoom       = "Master Room"
	legacyAttachedBathroom = "Attached Bathroom"
)

func MasterBedroomName(n int) string  { return fmt.Sprintf("%s %d", prefixMasterBedroom, n) }
func MasterBathroomName(n int) string { return fmt.Sprintf("%s %d", prefixMasterBathroom, n) }
func GuestRoomName(n int) string      { return fmt.Sprintf("%s %d", prefixGuestRoom, n) }
func GuestBathroomName(n int) string  { return fmt.Sprintf("%s %d", prefixGuestBathroom, n) }
func BathroomName(n int) string       { return fmt.Sprintf("%s %d", prefixBathroom, n) }

// Classify maps a room name to its category by substring match.
func Classify(name string) Category {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "bathroom"), strings.Contains(n, "toilet"):
		return CategoryBathroom
	case strings.Contains(n, "kitchen"):
		return CategoryKitchen
	case strings.Contains(n, "staircase"):
		return CategoryStaircase
	case strings.Contains(n, "dining"):
		return CategoryDining
	case strings.Contains(n, "decorative"):
		return CategoryDecorative
	case strings.Contains(n, "entrance"):
		return CategoryEntrance
	}
	return CategoryRoom
}

// IsKitchen reports whether the room name denotes a kitchen.
func IsKitchen(name string) bool {
	return strings.Contains(strings.ToLower(name), "kitchen")
}

// IsAttachedBathroom reports whether a bathroom belongs to a bedroom.
func IsAttachedBathroom(name string) bool {
	return strings.HasPrefix(name, prefixMasterBathroom) ||
		strings.HasPrefix(name, prefixGuestBathroom) ||
		strings.HasPrefix(name, legacyAttachedBathroom)
}

// MasterPrefix is the primary-bedroom naming pattern for a variant.
func MasterPrefix(variant string) string {
	if variant == VariantSplit {
		return prefixMasterRoom
	}
	return prefixMasterBedroom
}
