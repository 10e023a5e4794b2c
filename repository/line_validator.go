package repository

import "ventas-backoffice/models"

// Rejection reasons reported back to the caller.
const (
	ReasonMissingCatalogItem = "missing catalogItemId"
	ReasonMissingQuantity    = "missing or zero quantity"
)

// ValidateAssociatedItems filters the submitted item set of a composite
// product. An item is accepted only when both its catalog reference and its
// quantity are present; everything else lands in the rejection report with a
// reason, so the caller always knows how many submitted items were persisted.
func ValidateAssociatedItems(items []models.AssociatedItemInput) ([]models.AssociatedItemInput, []models.RejectedItem) {
	var accepted []models.AssociatedItemInput
	var rejected []models.RejectedItem

	for i, item := range items {
		if item.CatalogItemID == 0 {
			rejected = append(rejected, models.RejectedItem{Index: i, Reason: ReasonMissingCatalogItem})
			continue
		}
		if item.Quantity == 0 {
			rejected = append(rejected, models.RejectedItem{
				Index:         i,
				CatalogItemID: item.CatalogItemID,
				Reason:        ReasonMissingQuantity,
			})
			continue
		}
		accepted = append(accepted, item)
	}

	return accepted, rejected
}

// ValidateOrderLines filters submitted order lines under the same policy:
// catalog reference and quantity must both be present. The unit price is not
// part of the accept/drop decision here; price checking happens against the
// catalog before the transaction opens.
func ValidateOrderLines(lines []models.OrderLineInput) ([]models.OrderLineInput, []models.RejectedItem) {
	var accepted []models.OrderLineInput
	var rejected []models.RejectedItem

	for i, line := range lines {
		if line.CatalogItemID == 0 {
			rejected = append(rejected, models.RejectedItem{Index: i, Reason: ReasonMissingCatalogItem})
			continue
		}
		if line.Quantity == 0 {
			rejected = append(rejected, models.RejectedItem{
				Index:         i,
				CatalogItemID: line.CatalogItemID,
				Reason:        ReasonMissingQuantity,
			})
			continue
		}
		accepted = append(accepted, line)
	}

	return accepted, rejected
}
