package models

import (
	"github.com/shopspring/decimal"

	"freightquote/internal/utils"
)

// Quotation computes the monetary amount this rate would charge for the given
// requirement, dispatching on the shipping mode tags. It returns nil when the
// rate is not applicable: FCL rates whose line items all price to zero, and
// rates whose tags disagree with their populated freight details (stored-data
// integrity violations are never guessed around).
func (r *Rate) Quotation(req *ShippingRequirement) *decimal.Decimal {
	switch {
	case r.ShippingMode == ShippingModeAir && r.AirFreight != nil:
		amount := r.AirFreight.Quotation(req)
		return &amount
	case r.ShippingMode == ShippingModeWater && r.SeaFreightMode == SeaFreightModeLCL && r.LCLFreight != nil:
		amount := r.LCLFreight.Quotation(req)
		return &amount
	case r.ShippingMode == ShippingModeWater && r.SeaFreightMode == SeaFreightModeFCL && len(r.FCLFreight) > 0:
		return r.fclQuotation(req)
	}
	return nil
}

// Quotation prices air freight: rate per kg times W/M chargeable weight,
// raised to the minimum charge, plus fuel surcharge (percentage) and security
// surcharge (flat).
func (a *AirFreightDetail) Quotation(req *ShippingRequirement) decimal.Decimal {
	if a == nil || a.RatePerKG <= 0 || req == nil {
		return decimal.Zero
	}

	chargeableWeight := utils.AirChargeableWeight(req.GrossWeight(), req.Volume())
	amount := decimal.NewFromFloat(a.RatePerKG).Mul(chargeableWeight)

	minimumCharge := decimal.NewFromFloat(a.MinimumCharge)
	if amount.LessThan(minimumCharge) {
		amount = minimumCharge
	}

	if a.FuelSurchargeRate > 0 {
		amount = amount.Add(amount.Mul(decimal.NewFromFloat(a.FuelSurchargeRate)))
	}

	return amount.Add(decimal.NewFromFloat(a.SecuritySurcharge))
}

// Quotation prices LCL sea freight: rate per CBM times W/M chargeable volume,
// plus documentation fee and service charge, with the bunker adjustment
// applied to the running total.
func (l *LCLFreightDetail) Quotation(req *ShippingRequirement) decimal.Decimal {
	if l == nil || l.RatePerCBM <= 0 || req == nil {
		return decimal.Zero
	}

	chargeableVolume := utils.LCLChargeableVolume(req.Volume(), req.GrossWeight())
	amount := decimal.NewFromFloat(l.RatePerCBM).Mul(chargeableVolume)

	amount = amount.Add(decimal.NewFromFloat(l.DocumentationFee))
	amount = amount.Add(decimal.NewFromFloat(l.ServiceCharge))

	if l.BunkerAdjustmentRate > 0 {
		amount = amount.Add(amount.Mul(decimal.NewFromFloat(l.BunkerAdjustmentRate)))
	}

	return amount
}

// Quotation prices one FCL line item for the requested count of its container
// type: base rate per container times count, plus documentation fee (once per
// line item), terminal handling charge per container, and bunker adjustment as
// a percentage of the base rate per container. Zero when the container type
// was not requested.
func (f *FCLLineItem) Quotation(req *ShippingRequirement) decimal.Decimal {
	if f == nil || f.RatePerContainer <= 0 || req == nil {
		return decimal.Zero
	}

	containerCount := req.CountFor(f.ContainerTypeID)
	if containerCount <= 0 {
		return decimal.Zero
	}

	count := decimal.NewFromInt(int64(containerCount))
	baseRate := decimal.NewFromFloat(f.RatePerContainer)

	amount := baseRate.Mul(count)
	amount = amount.Add(decimal.NewFromFloat(f.DocumentationFee))
	amount = amount.Add(decimal.NewFromFloat(f.TerminalHandlingCharge).Mul(count))

	if f.BunkerAdjustmentRate > 0 {
		amount = amount.Add(baseRate.Mul(decimal.NewFromFloat(f.BunkerAdjustmentRate)).Mul(count))
	}

	return amount
}

// fclQuotation sums the per-container-type line items. A total of exactly zero
// means no requested container type matched, so the rate is not applicable
// (nil) rather than free.
func (r *Rate) fclQuotation(req *ShippingRequirement) *decimal.Decimal {
	if req == nil || !req.WantsFCLContainers() {
		return nil
	}

	total := decimal.Zero
	for _, item := range r.FCLFreight {
		total = total.Add(item.Quotation(req))
	}

	if total.IsZero() {
		return nil
	}
	return &total
}
