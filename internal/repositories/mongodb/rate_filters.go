package mongodb

import (
	"regexp"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
)

// ConflictFilter translates a conflict query into a mongo filter. Two rates
// conflict when they share courier (case-insensitive), origin, destination and
// mode (plus sub-mode, plus container type for FCL) and their date intervals
// overlap: NOT (existing.to < new.from OR existing.from > new.to). Intervals
// that touch at a boundary overlap.
func ConflictFilter(q *interfaces.RateConflictQuery) bson.M {
	filter := bson.M{
		"courier_name":   exactCaseInsensitive(q.CourierName),
		"origin_id":      q.OriginID,
		"destination_id": q.DestinationID,
		"shipping_mode":  q.ShippingMode,
		"effective_from": bson.M{"$lte": q.EffectiveTo},
		"effective_to":   bson.M{"$gte": q.EffectiveFrom},
	}

	if q.SeaFreightMode != "" {
		filter["sea_freight_mode"] = q.SeaFreightMode
	}
	if q.ContainerTypeID != nil {
		filter[fclLineItemKey(q.ContainerTypeID.Hex())] = bson.M{"$exists": true}
	}

	return filter
}

// QuoteFilter translates a shipping requirement into a mongo filter. Each
// present criterion adds one condition; absent criteria match everything.
// Active rates only, always.
func QuoteFilter(req *models.ShippingRequirement) bson.M {
	conditions := []bson.M{{"is_active": true}}

	if req.OriginID != nil {
		conditions = append(conditions, bson.M{"origin_id": *req.OriginID})
	}
	if req.DestinationID != nil {
		conditions = append(conditions, bson.M{"destination_id": *req.DestinationID})
	}
	if req.ShippingDate != nil {
		conditions = append(conditions, bson.M{
			"effective_from": bson.M{"$lte": *req.ShippingDate},
			"effective_to":   bson.M{"$gte": *req.ShippingDate},
		})
	}
	if req.ShippingMode != nil {
		conditions = append(conditions, bson.M{"shipping_mode": *req.ShippingMode})

		if *req.ShippingMode == models.ShippingModeWater && req.SeaFreightMode != nil {
			conditions = append(conditions, bson.M{"sea_freight_mode": *req.SeaFreightMode})

			// An FCL rate is a candidate when it prices at least one of the
			// requested container types.
			if *req.SeaFreightMode == models.SeaFreightModeFCL && req.WantsFCLContainers() {
				conditions = append(conditions, anyContainerTypeCondition(req.ContainerCount))
			}
		}
	}

	return bson.M{"$and": conditions}
}

// SearchFilter translates admin search criteria into a mongo filter.
func SearchFilter(criteria *models.RateSearchCriteria) bson.M {
	conditions := []bson.M{}

	if criteria.CourierName != "" {
		conditions = append(conditions, bson.M{
			"courier_name": bson.M{"$regex": regexp.QuoteMeta(criteria.CourierName), "$options": "i"},
		})
	}
	if criteria.ShippingMode != nil {
		conditions = append(conditions, bson.M{"shipping_mode": *criteria.ShippingMode})
	}
	if criteria.SeaFreightMode != nil {
		conditions = append(conditions, bson.M{"sea_freight_mode": *criteria.SeaFreightMode})
	}
	if criteria.OriginID != nil {
		conditions = append(conditions, bson.M{"origin_id": *criteria.OriginID})
	}
	if criteria.DestinationID != nil {
		conditions = append(conditions, bson.M{"destination_id": *criteria.DestinationID})
	}
	if criteria.ActiveOnDate != nil {
		conditions = append(conditions, bson.M{
			"effective_from": bson.M{"$lte": *criteria.ActiveOnDate},
			"effective_to":   bson.M{"$gte": *criteria.ActiveOnDate},
		})
	}
	if criteria.ContainerTypeID != nil {
		conditions = append(conditions, bson.M{
			fclLineItemKey(criteria.ContainerTypeID.Hex()): bson.M{"$exists": true},
		})
	}
	if criteria.MaxTransitDays != nil {
		conditions = append(conditions, bson.M{"transit_days": bson.M{"$lte": *criteria.MaxTransitDays}})
	}
	if criteria.IsActive != nil {
		conditions = append(conditions, bson.M{"is_active": *criteria.IsActive})
	}

	if len(conditions) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conditions}
}

// anyContainerTypeCondition builds the OR across requested container types: a
// rate qualifies when it carries a line item for any key of the count map.
func anyContainerTypeCondition(containerCount map[string]int) bson.M {
	or := make([]bson.M, 0, len(containerCount))
	for containerTypeID := range containerCount {
		or = append(or, bson.M{fclLineItemKey(containerTypeID): bson.M{"$exists": true}})
	}
	return bson.M{"$or": or}
}

// fclLineItemKey addresses a single line item in the container-type-keyed
// fcl_freight map.
func fclLineItemKey(containerTypeID string) string {
	return "fcl_freight." + containerTypeID
}

// exactCaseInsensitive matches the whole value ignoring case.
func exactCaseInsensitive(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}
