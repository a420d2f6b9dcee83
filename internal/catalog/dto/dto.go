package dto

// VariantFilters narrows the variant list. The zero value lists the
// whole catalog, newest first.
type VariantFilters struct {
	Search string
}
