package entity

// SlotFilter is a domain-level filter for querying available slots.
// Used by repository layer to avoid coupling with delivery DTOs.
type SlotFilter struct {
	Date      string // Format: YYYY-MM-DD, limits to a single calendar day
	Specialty string // Filter by doctor specialty (exact match)
}
