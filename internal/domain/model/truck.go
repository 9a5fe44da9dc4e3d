package model

import "strings"

// TruckType is the vehicle category a load requires.
type TruckType string

const (
	TruckOpen             TruckType = "Open Truck"
	TruckClosedContainer  TruckType = "Closed Container"
	TruckTrailer          TruckType = "Trailer"
	TruckFlatbed          TruckType = "Flatbed"
	TruckRefrigerated     TruckType = "Refrigerated Truck"
	TruckTanker           TruckType = "Tanker"
	TruckTipper           TruckType = "Tipper"
	TruckMini             TruckType = "Mini Truck"
	TruckLCV              TruckType = "LCV"
	TruckPickup           TruckType = "Pickup"
	TruckContainer20ft    TruckType = "Container 20ft"
	TruckContainer32ft    TruckType = "Container 32ft"
	TruckMultiAxle        TruckType = "Multi-Axle"
	TruckLowBed           TruckType = "Low Bed"
	TruckCarCarrier       TruckType = "Car Carrier"
	TruckBulker           TruckType = "Bulker"
	TruckTataAce          TruckType = "Tata Ace"
	TruckTempo            TruckType = "Tempo"
	TruckHydraulicTrailer TruckType = "Hydraulic Trailer"
)

// TruckTypes lists the known categories.
var TruckTypes = []TruckType{
	TruckOpen, TruckClosedContainer, TruckTrailer, TruckFlatbed, TruckRefrigerated,
	TruckTanker, TruckTipper, TruckMini, TruckLCV, TruckPickup, TruckContainer20ft,
	TruckContainer32ft, TruckMultiAxle, TruckLowBed, TruckCarCarrier, TruckBulker,
	TruckTataAce, TruckTempo, TruckHydraulicTrailer,
}

// ParseTruckType resolves a category name ignoring case and surrounding spaces.
// Unknown names are returned verbatim with ok=false; pricing treats them with the default rate.
func ParseTruckType(raw string) (TruckType, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, t := range TruckTypes {
		if strings.EqualFold(string(t), trimmed) {
			return t, true
		}
	}
	return TruckType(trimmed), false
}
