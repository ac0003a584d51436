package order

import "github.com/onzacore/distri-api/internal/models"

// Lifecycle order of the selectable statuses. Archival is a separate
// operation, not a dropdown choice.
var adminStatuses = []string{
	models.StatusPending,
	models.StatusSeen,
	models.StatusInPreparation,
	models.StatusInvoiced,
	models.StatusReadyForDelivery,
	models.StatusDelivered,
	models.StatusCancelled,
}

// Non-administrative roles never see facturado or cancelado.
var restrictedStatuses = []string{
	models.StatusPending,
	models.StatusSeen,
	models.StatusInPreparation,
	models.StatusReadyForDelivery,
	models.StatusDelivered,
}

// StatusChoices returns the status values the role may set, in lifecycle
// order. Restricted statuses are hidden from non-admin roles here and
// additionally rejected by CanSetStatus if attempted anyway.
func StatusChoices(role string) []string {
	if role == models.RoleAdmin {
		return append([]string(nil), adminStatuses...)
	}
	return append([]string(nil), restrictedStatuses...)
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	if s == models.StatusArchived {
		return true
	}
	for _, known := range adminStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanSetStatus reports whether the role may set the given status through the
// status operation.
func CanSetStatus(role, status string) bool {
	for _, allowed := range StatusChoices(role) {
		if status == allowed {
			return true
		}
	}
	return false
}

// CanArchive reports whether an order in the given status can be archived.
func CanArchive(status string) bool {
	return status != models.StatusArchived
}
